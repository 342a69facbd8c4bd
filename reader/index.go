package reader

// span mirrors the cursor's shape: the half-open byte range of one line's
// content, terminator bytes excluded.
type span struct {
	start, end int64
}

// lineIndex holds every line's span in file order plus a reverse lookup
// from start offset to table position. It is built by one forward pass over
// the whole source and is immutable afterwards: neighbors resolve by
// stepping a table position, random sampling draws a position directly.
type lineIndex struct {
	spans   []span
	byStart map[int64]int
}

// buildLineIndex resolves every line span in one forward pass from offset 0.
// Cost is O(source size) time and O(line count) memory.
func buildLineIndex(s *boundaryScanner) (*lineIndex, error) {
	ix := &lineIndex{byStart: make(map[int64]int)}

	start := int64(0)
	for {
		end, err := s.lineEnd(start)
		if err != nil {
			return nil, err
		}
		ix.byStart[start] = len(ix.spans)
		ix.spans = append(ix.spans, span{start: start, end: end})

		next, ok, err := s.lineStartForward(end)
		if err != nil {
			return nil, err
		}
		if !ok {
			return ix, nil
		}
		start = next
	}
}

// prevOf returns the span preceding the line that starts at cursorStart. A
// degenerate cursor at EOF precedes nothing, so it resolves to the final
// line. ok is false when no predecessor exists.
func (ix *lineIndex) prevOf(cursorStart int64, atEOF bool) (span, bool) {
	if atEOF {
		return ix.spans[len(ix.spans)-1], true
	}

	pos, ok := ix.byStart[cursorStart]
	if !ok || pos == 0 {
		return span{}, false
	}
	return ix.spans[pos-1], true
}

// nextOf returns the span following the line that starts at cursorStart. A
// degenerate cursor at BOF follows nothing, so it resolves to the first
// line. ok is false when no successor exists.
func (ix *lineIndex) nextOf(cursorStart int64, atBOF bool) (span, bool) {
	if atBOF {
		return ix.spans[0], true
	}

	pos, ok := ix.byStart[cursorStart]
	if !ok || pos == len(ix.spans)-1 {
		return span{}, false
	}
	return ix.spans[pos+1], true
}

// currentOf returns the span of the line starting at cursorStart. ok is
// false for offsets that start no line, which for a well-formed cursor only
// happens at EOF.
func (ix *lineIndex) currentOf(cursorStart int64) (span, bool) {
	pos, ok := ix.byStart[cursorStart]
	if !ok {
		return span{}, false
	}
	return ix.spans[pos], true
}
