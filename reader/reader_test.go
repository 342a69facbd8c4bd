package reader

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YLivay/seekline/utils"
)

// newTestReader creates a Reader over a real file on disk, which is how the
// package is used outside of tests.
func newTestReader(t *testing.T, contents string) *Reader {
	t.Helper()

	f, _ := utils.CreateTestFile(t, contents)
	src, err := NewFileSource(f)
	require.NoError(t, err)

	r, err := New(src)
	require.NoError(t, err)
	return r
}

// collectForward drains NextLine until the boundary and returns the texts.
func collectForward(t *testing.T, r *Reader) []string {
	t.Helper()

	var texts []string
	for {
		line, err := r.NextLine()
		require.NoError(t, err)
		if line == nil {
			return texts
		}
		texts = append(texts, line.Text)
	}
}

// collectBackward drains PrevLine until the boundary and returns the texts.
func collectBackward(t *testing.T, r *Reader) []string {
	t.Helper()

	var texts []string
	for {
		line, err := r.PrevLine()
		require.NoError(t, err)
		if line == nil {
			return texts
		}
		texts = append(texts, line.Text)
	}
}

func TestNew_EmptyFileFails(t *testing.T) {
	_, err := New(NewBytesSource(nil))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestOpen_EmptyFileFails(t *testing.T) {
	_, filepath := utils.CreateTestFile(t, "")

	_, err := Open(filepath)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestReader_ForwardIteration(t *testing.T) {
	r := newTestReader(t, "AAAA AAAA\nB B BB BBB\nCCCC  CCCCC\n")

	assert.EqualValues(t, []string{"AAAA AAAA", "B B BB BBB", "CCCC  CCCCC"}, collectForward(t, r))

	// The cursor stays on the final line, so navigation backward from here
	// still works.
	line, err := r.CurrentLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "CCCC  CCCCC", line.Text)

	line, err = r.PrevLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "B B BB BBB", line.Text)
}

func TestReader_BackwardIteration(t *testing.T) {
	r := newTestReader(t, "AAAA AAAA\nB B BB BBB\nCCCC  CCCCC\n")
	r.ToEOF()

	assert.EqualValues(t, []string{"CCCC  CCCCC", "B B BB BBB", "AAAA AAAA"}, collectBackward(t, r))

	start, _ := r.Cursor()
	assert.EqualValues(t, 0, start)

	line, err := r.CurrentLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "AAAA AAAA", line.Text)
}

func TestReader_ForwardIteration_CRLF(t *testing.T) {
	r := newTestReader(t, "AAAA AAAA\r\nB B BB BBB\r\nCCCC  CCCCC\r\n")

	assert.EqualValues(t, []string{"AAAA AAAA", "B B BB BBB", "CCCC  CCCCC"}, collectForward(t, r))
}

func TestReader_BackwardIteration_CRLF(t *testing.T) {
	r := newTestReader(t, "AAAA AAAA\r\nB B BB BBB\r\nCCCC  CCCCC\r\n")
	r.ToEOF()

	assert.EqualValues(t, []string{"CCCC  CCCCC", "B B BB BBB", "AAAA AAAA"}, collectBackward(t, r))
}

func TestReader_TerminatorsNeverLeak(t *testing.T) {
	for _, contents := range []string{"a\nbb\nccc\n", "a\r\nbb\r\nccc\r\n", "a\nbb\r\nccc"} {
		r := newTestReader(t, contents)
		for _, text := range collectForward(t, r) {
			assert.NotContains(t, text, "\n", "contents %q", contents)
			assert.NotContains(t, text, "\r", "contents %q", contents)
		}
	}
}

func TestReader_CurrentLineIsIdempotent(t *testing.T) {
	r := newTestReader(t, "hi\nhello\nbye")

	_, err := r.NextLine()
	require.NoError(t, err)
	line, err := r.NextLine()
	require.NoError(t, err)
	require.NotNil(t, line)

	for i := 0; i < 3; i++ {
		cur, err := r.CurrentLine()
		assert.NoError(t, err)
		require.NotNil(t, cur)
		assert.EqualValues(t, line.Text, cur.Text)
		assert.EqualValues(t, line.Start, cur.Start)
		assert.EqualValues(t, line.End, cur.End)
	}
}

func TestReader_NextThenPrevReturns(t *testing.T) {
	r := newTestReader(t, "hi\nhello\nbye")

	line, err := r.NextLine()
	require.NoError(t, err)
	require.NotNil(t, line)

	_, err = r.NextLine()
	require.NoError(t, err)

	back, err := r.PrevLine()
	assert.NoError(t, err)
	require.NotNil(t, back)
	assert.EqualValues(t, line.Text, back.Text)
	assert.EqualValues(t, line.Start, back.Start)
	assert.EqualValues(t, line.End, back.End)
}

func TestReader_BlankFirstLine(t *testing.T) {
	r := newTestReader(t, "\nBlank line above!\n")
	r.ToEOF()

	line, err := r.PrevLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "Blank line above!", line.Text)

	// The blank line is returned as an empty string, not skipped.
	line, err = r.PrevLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "", line.Text)

	line, err = r.PrevLine()
	assert.NoError(t, err)
	assert.Nil(t, line)
}

func TestReader_BlankFirstLine_Forward(t *testing.T) {
	r := newTestReader(t, "\nBlank line above!\n")

	assert.EqualValues(t, []string{"", "Blank line above!"}, collectForward(t, r))
}

func TestReader_BlankLinesPreserved(t *testing.T) {
	r := newTestReader(t, "x\n\ny")

	assert.EqualValues(t, []string{"x", "", "y"}, collectForward(t, r))

	r.ToEOF()
	assert.EqualValues(t, []string{"y", "", "x"}, collectBackward(t, r))
}

func TestReader_SingleLineNoTerminator(t *testing.T) {
	r := newTestReader(t, "A")

	line, err := r.NextLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "A", line.Text)

	line, err = r.NextLine()
	assert.NoError(t, err)
	assert.Nil(t, line)

	line, err = r.PrevLine()
	assert.NoError(t, err)
	assert.Nil(t, line)

	line, err = r.CurrentLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "A", line.Text)

	r.ToBOF()
	line, err = r.NextLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "A", line.Text)

	r.ToEOF()
	line, err = r.PrevLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "A", line.Text)

	for i := 0; i < 10; i++ {
		line, err = r.RandomLine()
		assert.NoError(t, err)
		require.NotNil(t, line)
		assert.EqualValues(t, "A", line.Text)
	}
}

func TestReader_CurrentAtBOFAndEOF(t *testing.T) {
	r := newTestReader(t, "hi\nhello\n")

	line, err := r.CurrentLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "hi", line.Text)

	r.ToEOF()
	line, err = r.CurrentLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "hello", line.Text)
}

func TestReader_CursorSpans(t *testing.T) {
	r := newTestReader(t, "hi\r\nhello\nbye")

	line, err := r.NextLine()
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, 0, line.Start)
	assert.EqualValues(t, 2, line.End)

	line, err = r.NextLine()
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, 4, line.Start)
	assert.EqualValues(t, 9, line.End)

	line, err = r.NextLine()
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, 10, line.Start)
	assert.EqualValues(t, 13, line.End)
}

func TestReader_TinyChunkSizes(t *testing.T) {
	contents := "first line\r\nsecond\n\nlast one"
	want := []string{"first line", "second", "", "last one"}
	reversed := []string{"last one", "", "second", "first line"}

	for chunkSize := 1; chunkSize <= 5; chunkSize++ {
		r := newTestReader(t, contents)
		r.SetChunkSize(chunkSize)

		assert.EqualValues(t, want, collectForward(t, r), "chunk size %d", chunkSize)

		r.ToEOF()
		assert.EqualValues(t, reversed, collectBackward(t, r), "chunk size %d", chunkSize)
	}
}

func TestReader_SetChunkSize_IgnoresInvalid(t *testing.T) {
	r := newTestReader(t, "hi\nhello")
	r.SetChunkSize(0)
	r.SetChunkSize(-5)

	assert.EqualValues(t, []string{"hi", "hello"}, collectForward(t, r))
}

func TestReader_DecodeError(t *testing.T) {
	r, err := New(NewBytesSource([]byte{0xff, 0xfe, '\n', 'o', 'k'}))
	require.NoError(t, err)

	_, err = r.NextLine()
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.EqualValues(t, 0, decodeErr.Start)
	assert.EqualValues(t, 2, decodeErr.End)

	// The cursor still moved onto the undecodable line, so navigation can
	// step over it.
	line, err := r.NextLine()
	assert.NoError(t, err)
	require.NotNil(t, line)
	assert.EqualValues(t, "ok", line.Text)
}

func TestReader_RandomLine_Deterministic(t *testing.T) {
	r := newTestReader(t, "hi\nhello\nbye\n")
	r.SetRand(rand.New(rand.NewSource(42)))

	first := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		line, err := r.RandomLine()
		require.NoError(t, err)
		require.NotNil(t, line)
		first = append(first, line.Text)
	}

	r.SetRand(rand.New(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		line, err := r.RandomLine()
		require.NoError(t, err)
		require.NotNil(t, line)
		assert.EqualValues(t, first[i], line.Text)
	}
}

func TestReader_RandomLine_UnindexedIsLengthBiased(t *testing.T) {
	// One 30 byte line and one 1 byte line: byte-offset sampling should
	// pick the long line roughly 30 times as often.
	long := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	r := newTestReader(t, "a\n"+long+"\n")
	r.SetRand(rand.New(rand.NewSource(1)))

	counts := make(map[string]int)
	for i := 0; i < 300; i++ {
		line, err := r.RandomLine()
		require.NoError(t, err)
		require.NotNil(t, line)
		counts[line.Text]++
	}

	assert.Greater(t, counts[long], 250)
	assert.Less(t, counts["a"], 50)
}
