package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/YLivay/seekline/log"
	"github.com/YLivay/seekline/reader"
	"github.com/YLivay/seekline/utils"
)

type Application struct {
	reader *reader.Reader
	format *lineFormatter

	// The currently displayed line. Nil until the first draw resolves it.
	line   *reader.Line
	status string

	// The size of the terminal.
	width  int
	height int
}

func NewApplication(r *reader.Reader, format *lineFormatter) *Application {
	return &Application{reader: r, format: format}
}

func (a *Application) Run(ctx context.Context, cancelCtx context.CancelFunc) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}

	quit := func() {
		// You have to catch panics in a defer, clean up, and
		// re-raise them - otherwise your application can
		// die without leaving any diagnostic trace.
		maybePanic := recover()
		screen.Fini()
		if maybePanic != nil {
			panic(maybePanic)
		}
	}
	defer quit()

	a.width, a.height = screen.Size()

	// Show the first line straight away.
	a.move("current", a.reader.CurrentLine)
	a.draw(screen)

	go func() {
		for {
			ev := screen.PollEvent()

			switch ev := ev.(type) {
			case *tcell.EventResize:
				a.width, a.height = screen.Size()
				screen.Sync()
			case *tcell.EventKey:
				if !a.handleKey(ev) {
					cancelCtx()
					return
				}
			}

			a.draw(screen)
		}
	}()

	<-ctx.Done()
	return ctx.Err()
}

// handleKey dispatches a single key press. It returns false when the
// application should quit.
func (a *Application) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
		return false
	case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
		a.move("next", a.reader.NextLine)
	case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
		a.move("prev", a.reader.PrevLine)
	case ev.Rune() == 'r':
		a.move("random", a.reader.RandomLine)
	case ev.Rune() == 'g':
		a.reader.ToBOF()
		a.move("first", a.reader.CurrentLine)
	case ev.Rune() == 'G':
		a.reader.ToEOF()
		a.move("last", a.reader.CurrentLine)
	case ev.Rune() == 'i':
		if err := a.reader.BuildIndex(); err != nil {
			log.Println("Failed to build index:", err)
			a.status = "index failed: " + err.Error()
			break
		}
		count, _ := a.reader.LineCount()
		a.status = fmt.Sprintf("indexed %d lines", count)
	}
	return true
}

// move runs one navigation call and updates the displayed line and status.
// Boundary results keep the previous line on screen so the user sees where
// navigation stopped.
func (a *Application) move(what string, nav func() (*reader.Line, error)) {
	line, err := nav()
	if err != nil {
		log.Println("Navigation failed:", err)
		a.status = what + " failed: " + err.Error()
		return
	}
	if line == nil {
		a.status = "no " + what + " line"
		return
	}

	a.line = line
	a.status = fmt.Sprintf("bytes [%d, %d) of %d", line.Start, line.End, a.reader.Size())
	if count, ok := a.reader.LineCount(); ok {
		a.status += fmt.Sprintf(" | %d lines indexed", count)
	}
}

func (a *Application) draw(screen tcell.Screen) {
	screen.Clear()

	if a.line != nil {
		text := a.format.Format(a.line.Text)
		for row, wrapped := range utils.WrapToWidth(text, a.width) {
			if row >= a.height-1 {
				break
			}
			drawText(screen, 0, row, wrapped, tcell.StyleDefault)
		}
	}

	if a.height > 0 {
		status := utils.TruncateToWidth(a.status, a.width)
		drawText(screen, 0, a.height-1, status, tcell.StyleDefault.Reverse(true))
	}

	screen.Show()
}

// drawText renders text one grapheme cluster at a time so wide clusters
// advance by their real cell width.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		screen.SetContent(col, y, runes[0], runes[1:], style)
		col += g.Width()
	}
}
