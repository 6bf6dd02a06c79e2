package solver

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecorderStreams(t *testing.T) {
	var plain, annotated bytes.Buffer
	s := New(ParseSlice(condCNF))
	rec := NewRecorder(&plain, &annotated)
	s.AttachRecorder(rec)

	probeOne(t, s, 1)
	require.True(t, s.leastConditionalPart(nil))
	require.NoError(t, rec.Close())

	require.Equal(t, "4 \n", plain.String())
	require.Equal(t, "4 4 2 3 \n", annotated.String())
}

func TestRecorderBlockedClause(t *testing.T) {
	cnf := [][]int{
		{-1, 2},
		{-1, 3},
		{-3, -2, 4},
		{-3, 5, 11},
		{4, 3},
		{-2, 7, 8},
		{-1, 6},
		{-6, 9, 10},
	}
	var plain, annotated bytes.Buffer
	s := New(ParseSlice(cnf))
	rec := NewRecorder(&plain, &annotated)
	s.AttachRecorder(rec)

	probeOne(t, s, 1)
	require.True(t, s.leastConditionalPart(nil))
	require.NoError(t, rec.Close())

	require.Equal(t, "4 -6 \n", plain.String())
	require.Equal(t, "4 -6 4 2 3 6 \n", annotated.String())
}

func TestOpenRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "derived")
	rec, err := OpenRecorder(path)
	require.NoError(t, err)

	s := New(ParseSlice(condCNF))
	s.AttachRecorder(rec)
	probeOne(t, s, 1)
	require.True(t, s.leastConditionalPart(nil))
	require.NoError(t, rec.Close())

	plain, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "4 \n", string(plain))
	annotated, err := os.ReadFile(path + "_pr")
	require.NoError(t, err)
	require.Equal(t, "4 4 2 3 \n", string(annotated))
}
