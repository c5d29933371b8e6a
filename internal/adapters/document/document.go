// Package document renders a compiled journal into downloadable files.
// Renderers only read block kinds and texts; they never reorder blocks.
package document

import (
	"lessonbook/internal/domain/journal"
)

// Document is a rendered journal ready to be served or attached.
type Document struct {
	Format      string
	ContentType string
	Body        []byte
}

type renderFunc func(j journal.Journal) ([]byte, error)

type renderer struct {
	contentType string
	render      renderFunc
}

var renderers = map[string]renderer{
	journal.FormatJSON:     {contentType: "application/json", render: renderJSON},
	journal.FormatMarkdown: {contentType: "text/markdown; charset=utf-8", render: Markdown},
	journal.FormatHTML:     {contentType: "text/html; charset=utf-8", render: HTML},
	journal.FormatPDF:      {contentType: "application/pdf", render: PDF},
	journal.FormatXLSX:     {contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", render: XLSX},
}

// Render produces the journal in the requested format.
// PRE: format is one of journal.ValidFormats
// POST: Returns the document or journal.ErrInvalidFormat
func Render(format string, j journal.Journal) (Document, error) {
	r, ok := renderers[format]
	if !ok {
		return Document{}, journal.ErrInvalidFormat
	}
	body, err := r.render(j)
	if err != nil {
		return Document{}, err
	}
	return Document{Format: format, ContentType: r.contentType, Body: body}, nil
}

// Renderer adapts Render to the interface orchestrators depend on.
type Renderer struct{}

// Render implements the orchestrators' journal renderer.
func (Renderer) Render(format string, j journal.Journal) (Document, error) {
	return Render(format, j)
}

func renderJSON(j journal.Journal) ([]byte, error) {
	return j.ToJSON()
}
