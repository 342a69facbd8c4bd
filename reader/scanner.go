package reader

import (
	"bytes"
	"fmt"
)

// DefaultChunkSize is the number of bytes fetched per read while resolving
// line boundaries. Any positive chunk size yields the same boundaries; the
// value only trades read calls against wasted bytes.
const DefaultChunkSize = 200

// boundaryScanner locates line boundaries around arbitrary byte offsets by
// reading fixed-size chunks from a Source. It keeps no cursor of its own;
// every method takes the offset to scan from, so the same scanner serves
// both cursor navigation and index building.
type boundaryScanner struct {
	src       Source
	size      int64
	chunkSize int
}

func newBoundaryScanner(src Source, chunkSize int) *boundaryScanner {
	return &boundaryScanner{src: src, size: src.Size(), chunkSize: chunkSize}
}

// readRange reads the bytes in [from, to). The range must lie within the
// source.
func (s *boundaryScanner) readRange(from, to int64) ([]byte, error) {
	buf := make([]byte, to-from)
	if len(buf) == 0 {
		return buf, nil
	}

	// ReadAt may legitimately return io.EOF alongside a full read when the
	// range ends exactly at the end of the source.
	if n, err := s.src.ReadAt(buf, from); err != nil && n < len(buf) {
		return nil, fmt.Errorf("failed to read bytes [%d, %d): %w", from, to, err)
	}
	return buf, nil
}

// lineStartBackward finds the start offset of the line containing origin.
// With skipCurrent set it instead finds the start of the line ending
// immediately before origin: the byte right before a boundary the probe has
// not moved off yet is that boundary's own terminator, and testing it would
// re-find the line the scan started on.
//
// The scan walks backward one chunk at a time looking for the closest LF;
// the line starts right after it. Offset 0 is itself a valid start.
func (s *boundaryScanner) lineStartBackward(origin int64, skipCurrent bool) (int64, error) {
	probe := origin
	if skipCurrent && probe > 0 {
		probe--
	}

	for probe > 0 {
		from := probe - int64(s.chunkSize)
		if from < 0 {
			from = 0
		}

		chunk, err := s.readRange(from, probe)
		if err != nil {
			return 0, err
		}
		if idx := bytes.LastIndexByte(chunk, '\n'); idx >= 0 {
			return from + int64(idx) + 1, nil
		}
		probe = from
	}

	return 0, nil
}

// lineStartForward finds the start offset of the line following the one
// whose content begins at or before origin: the byte right after the next
// LF. The scan never considers the last byte of the source, because an LF
// there terminates the final line instead of opening a new one; ok is false
// when no successor exists.
func (s *boundaryScanner) lineStartForward(origin int64) (start int64, ok bool, err error) {
	limit := s.size - 1
	for probe := origin; probe < limit; {
		to := probe + int64(s.chunkSize)
		if to > limit {
			to = limit
		}

		chunk, err := s.readRange(probe, to)
		if err != nil {
			return 0, false, err
		}
		if idx := bytes.IndexByte(chunk, '\n'); idx >= 0 {
			return probe + int64(idx) + 1, true, nil
		}
		probe = to
	}

	return 0, false, nil
}

// lineEnd finds the end offset of the line starting at start: the offset of
// its LF terminator, minus one when a CR precedes the LF so that CRLF files
// never leak a CR into line content. Reaching the end of the source without
// an LF treats it as an implicit terminator.
func (s *boundaryScanner) lineEnd(start int64) (int64, error) {
	for probe := start; probe < s.size; {
		to := probe + int64(s.chunkSize)
		if to > s.size {
			to = s.size
		}

		chunk, err := s.readRange(probe, to)
		if err != nil {
			return 0, err
		}
		idx := bytes.IndexByte(chunk, '\n')
		if idx < 0 {
			probe = to
			continue
		}

		end := probe + int64(idx)
		switch {
		case idx > 0:
			if chunk[idx-1] == '\r' {
				end--
			}
		case end > 0:
			// The LF landed on the first byte of this chunk, so its
			// predecessor has to be fetched with a one byte read.
			prev, err := s.readRange(end-1, end)
			if err != nil {
				return 0, err
			}
			if prev[0] == '\r' {
				end--
			}
		}
		return end, nil
	}

	return s.size, nil
}
