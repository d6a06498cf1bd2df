package common

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"small", "Small"},
		{"medium", "Medium"},
		{"extra_large", "Extra Large"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SizeLabel(tt.in))
		})
	}
}

func TestLayout(t *testing.T) {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<main>hello</main>")
		return err
	})

	var buf bytes.Buffer
	require.NoError(t, Layout(PageMeta{Title: "A & B", IsDev: true}).Render(templ.WithChildren(context.Background(), body), &buf))

	out := buf.String()
	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, "<title>A &amp; B - samplechart</title>")
	assert.Contains(t, out, `href="/static/style.css"`)
	assert.Contains(t, out, "<body>")
	assert.Contains(t, out, "datastar.js")
	assert.Contains(t, out, "@get('/reload')")
	assert.Contains(t, out, "<main>hello</main></body></html>")
}
