package utils

import "github.com/rivo/uniseg"

// StringWidth returns the number of terminal cells the string occupies.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// WrapToWidth hard-wraps text into display lines of at most width cells,
// breaking only between grapheme clusters so multi-cell clusters are never
// split across lines. A non-positive width returns no lines.
func WrapToWidth(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var (
		lines     []string
		lineLen   int
		lineWidth int
	)
	rest := text
	state := -1
	for len(rest) > 0 {
		var cluster string
		var boundaries int
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)

		w := boundaries >> uniseg.ShiftWidth
		if lineWidth+w > width && lineLen > 0 {
			lines = append(lines, text[:lineLen])
			text = text[lineLen:]
			lineLen, lineWidth = 0, 0
		}
		lineLen += len(cluster)
		lineWidth += w
	}
	lines = append(lines, text)

	return lines
}

// TruncateToWidth cuts text down to at most width cells, appending an
// ellipsis when anything was cut.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(text) <= width {
		return text
	}

	var (
		length    int
		lineWidth int
	)
	rest := text
	state := -1
	for len(rest) > 0 {
		var cluster string
		var boundaries int
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)

		w := boundaries >> uniseg.ShiftWidth
		if lineWidth+w > width-1 {
			break
		}
		length += len(cluster)
		lineWidth += w
	}
	return text[:length] + "…"
}
