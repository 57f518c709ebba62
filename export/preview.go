package export

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/tsawler/refinery/model"
)

// HTMLPreview renders refined markdown as a standalone HTML page, for
// eyeballing refinement output before chunking. Tables and strikethrough
// render through the GFM extension since refined text uses pipe tables.
func HTMLPreview(refined *model.RefinedContent, w io.Writer) error {
	if refined == nil {
		return fmt.Errorf("export: refined content is nil")
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(refined.Text), &body); err != nil {
		return fmt.Errorf("export: render markdown: %w", err)
	}

	title := refined.Title()
	if title == "" {
		title = refined.Metadata.FileName
	}

	if _, err := fmt.Fprintf(w, previewHeader, html.EscapeString(title)); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	_, err := io.WriteString(w, previewFooter)
	return err
}

// HTMLPreviewFile writes the preview page to a file.
func HTMLPreviewFile(refined *model.RefinedContent, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", filename, err)
	}
	defer f.Close()
	return HTMLPreview(refined, f)
}

const previewHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 0.3rem 0.6rem; }
pre { background: #f4f4f4; padding: 0.8rem; overflow-x: auto; }
blockquote { border-left: 3px solid #ccc; margin-left: 0; padding-left: 1rem; color: #555; }
</style>
</head>
<body>
`

const previewFooter = `</body>
</html>
`
