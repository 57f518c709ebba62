// Package convert turns HTML content into markdown for refinement.
package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/tsawler/refinery/model"
)

// HTMLConverter converts HTML raw content to markdown. It satisfies the
// refine.Converter collaborator interface. Non-HTML content passes through
// unchanged so the converter can be wired unconditionally.
type HTMLConverter struct {
	conv *converter.Converter
}

// NewHTML creates an HTML-to-markdown converter with commonmark and table
// support.
func NewHTML() *HTMLConverter {
	return &HTMLConverter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Name identifies this converter in refinement info.
func (c *HTMLConverter) Name() string { return "html-to-markdown" }

// Convert produces markdown from raw content. Content that does not look
// like HTML is returned as-is; an empty conversion result is an error so
// the refiner falls back to the raw text.
func (c *HTMLConverter) Convert(ctx context.Context, raw *model.RawContent) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if raw == nil || strings.TrimSpace(raw.Text) == "" {
		return "", fmt.Errorf("convert: no text to convert")
	}
	if !LooksLikeHTML(raw.Text) {
		return raw.Text, nil
	}

	md, err := c.conv.ConvertString(raw.Text)
	if err != nil {
		return "", fmt.Errorf("convert: html to markdown: %w", err)
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return "", fmt.Errorf("convert: html conversion produced no output")
	}
	return md, nil
}

// LooksLikeHTML reports whether text appears to be an HTML document or
// fragment rather than plain text or markdown.
func LooksLikeHTML(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(t, "<!doctype html") || strings.HasPrefix(t, "<html") {
		return true
	}
	for _, tag := range []string{"<p>", "<p ", "<div", "<body", "<table", "<h1", "<h2", "<article", "<span", "<br"} {
		if strings.Contains(t, tag) {
			return true
		}
	}
	return false
}
