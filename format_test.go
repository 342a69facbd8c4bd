package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineFormatter_NoProgramPassesThrough(t *testing.T) {
	f, err := newLineFormatter("")
	require.NoError(t, err)

	assert.EqualValues(t, `{"msg":"hi"}`, f.Format(`{"msg":"hi"}`))
}

func TestLineFormatter_ExtractsField(t *testing.T) {
	f, err := newLineFormatter(".msg")
	require.NoError(t, err)

	assert.EqualValues(t, "hi", f.Format(`{"msg":"hi","level":"info"}`))
}

func TestLineFormatter_MarshalsNonStrings(t *testing.T) {
	f, err := newLineFormatter(".count")
	require.NoError(t, err)

	assert.EqualValues(t, "3", f.Format(`{"count":3}`))
}

func TestLineFormatter_NonJSONPassesThrough(t *testing.T) {
	f, err := newLineFormatter(".msg")
	require.NoError(t, err)

	assert.EqualValues(t, "plain text line", f.Format("plain text line"))
}

func TestLineFormatter_MultipleOutputsAreJoined(t *testing.T) {
	f, err := newLineFormatter(".a, .b")
	require.NoError(t, err)

	assert.EqualValues(t, "x y", f.Format(`{"a":"x","b":"y"}`))
}

func TestLineFormatter_BadProgramFails(t *testing.T) {
	_, err := newLineFormatter(".msg |")
	assert.Error(t, err)
}
