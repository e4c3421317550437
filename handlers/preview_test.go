package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectPreloadLinks(t *testing.T) {
	page := `<head><link rel="stylesheet" href="/static/css/site.css"></head>`

	out := InjectPreloadLinks(page)
	assert.Equal(t, `<head><link rel="preload" href="/static/css/site.css" as="style">`+"\n"+
		`<link rel="stylesheet" href="/static/css/site.css"></head>`, out)
	assert.Equal(t, out, InjectPreloadLinks(out))

	assert.Equal(t, "<p>no styles</p>", InjectPreloadLinks("<p>no styles</p>"))
}

func TestPreviewHandler(t *testing.T) {
	out := t.TempDir()
	files := map[string]string{
		"index.html":          "home",
		"about.html":          "about",
		"blog/launch.html":    "post",
		"404.html":            "missing",
		"static/css/site.css": "body{}",
	}
	for name, body := range files {
		path := filepath.Join(out, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}

	handler := PreviewHandler(out)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/", http.StatusOK, "home"},
		{"/about", http.StatusOK, "about"},
		{"/about/", http.StatusOK, "about"},
		{"/blog/launch", http.StatusOK, "post"},
		{"/static/css/site.css", http.StatusOK, "body{}"},
		{"/nope", http.StatusNotFound, "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}
