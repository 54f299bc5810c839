package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{5 << 20, "5.0 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanSize(tt.in))
	}
}

func TestTemplatesParsed(t *testing.T) {
	for _, name := range []string{"widget.html", "history.html", "head", "nav"} {
		assert.NotNil(t, Templates.Lookup(name), name)
	}

	f, err := StaticFS.Open("style.css")
	require.NoError(t, err)
	f.Close()
}

func TestHistoryTemplate_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := Templates.ExecuteTemplate(&buf, "history.html", map[string]any{"Submissions": nil})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No submissions yet.")
}
