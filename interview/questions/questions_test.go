package questions

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSkipsBlankAndDuplicateLines(t *testing.T) {
	input := "What is a goroutine?\r\n\n   \nWhat is a channel?  \nWhat is a goroutine?\n"
	list, dups, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"What is a goroutine?", "What is a channel?"}, list.Items())
	assert.Equal(t, 1, dups)
	assert.Equal(t, 2, list.Len())
}

func TestReadEmpty(t *testing.T) {
	_, _, err := Read(strings.NewReader("\n\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoQuestions))
}

func TestItemsReturnsCopy(t *testing.T) {
	list := New([]string{"Q1", "Q2"})
	items := list.Items()
	items[0] = "changed"

	assert.Equal(t, []string{"Q1", "Q2"}, list.Items())
	assert.True(t, list.Contains("Q1"))
	assert.False(t, list.Contains("changed"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	require.NoError(t, os.WriteFile(path, []byte("Q1\nQ2\nQ3\n"), 0o644))

	list, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Len())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
