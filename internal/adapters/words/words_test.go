package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	src := Builtin()

	require.Greater(t, src.Len(), 100)
	for i := range src.Len() {
		w := src.Word(i)
		assert.NotEmpty(t, w)
		assert.NotContains(t, w, " ")
		assert.False(t, strings.HasPrefix(w, "#"))
	}
	assert.Same(t, src, Builtin())
}

func TestParse(t *testing.T) {
	l, err := Parse(strings.NewReader("# comment\n alpha \n\nbeta\r\n#gamma\ndelta"))

	require.NoError(t, err)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "alpha", l.Word(0))
	assert.Equal(t, "beta", l.Word(1))
	assert.Equal(t, "delta", l.Word(2))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, l.Len())

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.ErrorContains(t, err, "failed to open word list")
}

func TestNew_CopiesInput(t *testing.T) {
	in := []string{"x", "y"}
	l := New(in)
	in[0] = "changed"

	assert.Equal(t, "x", l.Word(0))
	assert.Equal(t, 2, l.Len())
}
