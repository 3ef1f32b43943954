package docs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// indexShell wraps rendered markdown in a minimal standalone page.
const indexShell = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%s</title></head>
<body>
%s</body>
</html>
`

// EnsureIndex guarantees the rendered site has an index.html. Build tools
// normally produce one; when they do not, the package README is rendered
// as a landing page so the target folder never serves a bare listing.
func EnsureIndex(siteDir, readmePath, title string) error {
	index := filepath.Join(siteDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		return nil
	}
	source, err := os.ReadFile(readmePath)
	if err != nil {
		return fmt.Errorf("read landing page source: %w", err)
	}
	body, err := RenderMarkdown(source)
	if err != nil {
		return err
	}
	page := fmt.Sprintf(indexShell, title, body)
	if err := os.WriteFile(index, []byte(page), 0o644); err != nil {
		return fmt.Errorf("write index page: %w", err)
	}
	return nil
}

// RenderMarkdown converts GitHub-flavored markdown to an HTML fragment.
func RenderMarkdown(source []byte) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
