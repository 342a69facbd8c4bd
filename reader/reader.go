// Package reader provides random-access, bidirectional, line-granularity
// navigation over large byte sources without buffering them in memory and
// without the consuming-iterator model of typical line readers.
//
// A Reader keeps a cursor on the line it last returned and can move it
// forward, backward or to a random line, repeatedly and in any order. Line
// boundaries are resolved on demand by chunked scans around the cursor; an
// optional index trades one linear pre-scan for O(1) lookups and unbiased
// random sampling.
package reader

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"
	"unicode/utf8"
)

// ErrEmptyFile is returned when constructing a Reader over a zero length
// source. An empty source has no lines to navigate.
var ErrEmptyFile = errors.New("cannot read lines of an empty source")

// DecodeError reports a resolved line whose bytes are not valid UTF-8.
type DecodeError struct {
	// Start and End delimit the offending byte range within the source.
	Start, End int64
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("the line starting at byte %d and ending at byte %d is not valid UTF-8", e.Start, e.End)
}

// Line is a single resolved line. Start and End delimit the half-open byte
// range [Start, End) of its content within the source; LF and CR terminator
// bytes are never part of the range.
type Line struct {
	Text  string
	Start int64
	End   int64
}

// Reader navigates the lines of a Source in any direction. Navigation calls
// return a nil Line with a nil error when no line exists in the requested
// direction, which makes loops terminate naturally at both ends of the
// source.
//
// A Reader is not safe for concurrent use: the cursor and the optional
// index are mutated in place by every call. Callers that need concurrent
// access must open independent Readers over independent sources, or
// serialize calls externally.
type Reader struct {
	src     Source
	scanner *boundaryScanner
	size    int64

	// The cursor is the half-open byte range of the currently selected
	// line. start == end == 0 is BOF and start == end == size is EOF, with
	// atBOF disambiguating BOF from a blank first line, which occupies the
	// same degenerate range.
	start, end int64
	atBOF      bool

	rng    *rand.Rand
	index  *lineIndex
	closed bool
}

// New creates a Reader over src with its cursor at BOF. The source's size
// is captured once; an empty source fails with ErrEmptyFile.
func New(src Source) (*Reader, error) {
	size := src.Size()
	if size == 0 {
		return nil, ErrEmptyFile
	}

	return &Reader{
		src:     src,
		scanner: newBoundaryScanner(src, DefaultChunkSize),
		size:    size,
		atBOF:   true,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Open opens the file at path and creates a Reader over it. Closing the
// Reader closes the file.
func Open(path string) (*Reader, error) {
	src, err := OpenFile(path)
	if err != nil {
		return nil, err
	}

	r, err := New(src)
	if err != nil {
		src.Close()
		return nil, err
	}
	return r, nil
}

// OpenMapped is like Open but memory-maps the file instead of reading it
// through file I/O.
func OpenMapped(path string) (*Reader, error) {
	src, err := OpenMappedSource(path)
	if err != nil {
		return nil, err
	}

	r, err := New(src)
	if err != nil {
		src.Close()
		return nil, err
	}
	return r, nil
}

// Close releases the underlying source when it holds releasable resources.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// SetChunkSize sets how many bytes boundary scans fetch per read. It only
// affects scan granularity, never which boundaries are found. Values below
// one are ignored.
func (r *Reader) SetChunkSize(n int) {
	if n < 1 {
		return
	}
	r.scanner.chunkSize = n
}

// SetRand injects the randomness source used by RandomLine, making random
// navigation deterministic under a fixed seed. Nil is ignored.
func (r *Reader) SetRand(rng *rand.Rand) {
	if rng != nil {
		r.rng = rng
	}
}

// ToBOF moves the cursor to the zero width position before the first line.
// The move performs no I/O.
func (r *Reader) ToBOF() {
	r.start, r.end = 0, 0
	r.atBOF = true
}

// ToEOF moves the cursor to the zero width position after the last line.
// The move performs no I/O.
func (r *Reader) ToEOF() {
	r.start, r.end = r.size, r.size
	r.atBOF = false
}

// Cursor returns the byte range of the currently selected line. Both
// offsets are 0 at BOF and equal to the source size at EOF.
func (r *Reader) Cursor() (start, end int64) {
	return r.start, r.end
}

// Size returns the total size of the source in bytes, as captured at
// construction.
func (r *Reader) Size() int64 {
	return r.size
}

// Indexed reports whether BuildIndex has run.
func (r *Reader) Indexed() bool {
	return r.index != nil
}

// LineCount returns the number of lines in the source. The count is only
// known once an index was built.
func (r *Reader) LineCount() (int, bool) {
	if r.index == nil {
		return 0, false
	}
	return len(r.index.spans), true
}

// BuildIndex scans the whole source once and materializes every line span,
// turning PrevLine and NextLine into O(1) table steps and making RandomLine
// sample uniformly per line instead of per byte. The scan always runs from
// the start of the source regardless of where the cursor sits, it does not
// move the cursor, and calling it again after a successful build is a
// no-op.
func (r *Reader) BuildIndex() error {
	if r.index != nil {
		return nil
	}

	ix, err := buildLineIndex(r.scanner)
	if err != nil {
		return fmt.Errorf("failed to build line index: %w", err)
	}
	r.index = ix
	return nil
}

// PrevLine moves the cursor to the line preceding the current one and
// returns it. When no predecessor exists the cursor stays put and the
// result is nil, nil.
func (r *Reader) PrevLine() (*Line, error) {
	if r.start == 0 {
		return nil, nil
	}

	if r.index != nil {
		sp, ok := r.index.prevOf(r.start, r.start == r.size)
		if !ok {
			return nil, nil
		}
		return r.commit(sp)
	}

	start, err := r.scanner.lineStartBackward(r.start, true)
	if err != nil {
		return nil, err
	}
	end, err := r.scanner.lineEnd(start)
	if err != nil {
		return nil, err
	}
	return r.commit(span{start: start, end: end})
}

// NextLine moves the cursor to the line following the current one and
// returns it. When no successor exists the cursor stays put and the result
// is nil, nil.
func (r *Reader) NextLine() (*Line, error) {
	if r.end == r.size {
		return nil, nil
	}

	if r.index != nil {
		sp, ok := r.index.nextOf(r.start, r.atBOF)
		if !ok {
			return nil, nil
		}
		return r.commit(sp)
	}

	// From BOF the first line needs no start scan: offset 0 begins it.
	var start int64
	if !r.atBOF {
		s, ok, err := r.scanner.lineStartForward(r.end)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Only the final line's terminator remains past the cursor.
			return nil, nil
		}
		start = s
	}

	end, err := r.scanner.lineEnd(start)
	if err != nil {
		return nil, err
	}
	return r.commit(span{start: start, end: end})
}

// CurrentLine returns the line the cursor sits on without moving it, so
// repeated calls are idempotent. A degenerate cursor at BOF or EOF resolves
// to the first or final line respectively; anywhere else the existing span
// is returned as is, without scanning.
func (r *Reader) CurrentLine() (*Line, error) {
	if r.index != nil {
		if sp, ok := r.index.currentOf(r.start); ok {
			return r.commit(sp)
		}
		// Only a degenerate EOF cursor misses the reverse lookup.
		return r.commit(r.index.spans[len(r.index.spans)-1])
	}

	sp := span{start: r.start, end: r.end}
	if sp.start == sp.end {
		var err error
		switch {
		case sp.start == r.size:
			// EOF: the current line is the final one.
			if sp.start, err = r.scanner.lineStartBackward(r.size, true); err != nil {
				return nil, err
			}
			if sp.end, err = r.scanner.lineEnd(sp.start); err != nil {
				return nil, err
			}
		case sp.end == 0:
			// BOF: the current line is the first one.
			if sp.end, err = r.scanner.lineEnd(0); err != nil {
				return nil, err
			}
		}
		// A degenerate cursor anywhere else is a blank line; its span is
		// already exact.
	}
	return r.commit(sp)
}

// RandomLine moves the cursor to a randomly selected line and returns it.
//
// Without an index the draw is a uniform byte offset, so the chance of
// landing on a line is proportional to its length. That bias is inherent to
// sampling without a pre-scan; build an index first to sample uniformly per
// line instead.
func (r *Reader) RandomLine() (*Line, error) {
	if r.index != nil {
		return r.commit(r.index.spans[r.rng.Intn(len(r.index.spans))])
	}

	origin := r.rng.Int63n(r.size)
	start, err := r.scanner.lineStartBackward(origin, false)
	if err != nil {
		return nil, err
	}
	end, err := r.scanner.lineEnd(start)
	if err != nil {
		return nil, err
	}
	return r.commit(span{start: start, end: end})
}

// commit moves the cursor to the resolved span, then decodes its bytes. The
// cursor moves even when decoding fails, mirroring how scan results always
// land before the content is interpreted.
func (r *Reader) commit(sp span) (*Line, error) {
	r.start, r.end = sp.start, sp.end
	r.atBOF = false

	buf, err := r.scanner.readRange(sp.start, sp.end)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(buf) {
		return nil, &DecodeError{Start: sp.start, End: sp.end}
	}
	return &Line{Text: string(buf), Start: sp.start, End: sp.end}, nil
}
