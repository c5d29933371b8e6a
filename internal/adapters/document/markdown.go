package document

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"lessonbook/internal/domain/journal"
)

// mdRenderer converts journal markdown to HTML.
// Raw HTML in lesson outcomes is omitted (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// mdEscaper neutralises inline characters that would turn outcome text into markup.
// "&" is escaped so entity references such as "&copy;" stay literal.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"&", `\&`,
)

// orderedMarker matches an ordered list marker at the start of a line.
var orderedMarker = regexp.MustCompile(`^(\s*\d{1,9})([.)])(\s|$)`)

// escapeMarkdown escapes text so every line renders as written.
// Line-leading block markers (lists, quotes, rules, setext underlines, tables) are escaped
// in addition to the inline characters.
func escapeMarkdown(text string) string {
	lines := strings.Split(mdEscaper.Replace(text), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(trimmed)]
		if trimmed != "" && strings.ContainsRune("-+>=|~", rune(trimmed[0])) {
			lines[i] = indent + `\` + trimmed
			continue
		}
		lines[i] = orderedMarker.ReplaceAllString(line, `$1\$2$3`)
	}
	return strings.Join(lines, "\n")
}

// Markdown renders the journal as a markdown document.
// Title blocks become "#" headings, heading blocks "##", body blocks paragraphs.
func Markdown(j journal.Journal) ([]byte, error) {
	var b strings.Builder
	for _, block := range j.Blocks {
		text := escapeMarkdown(block.Text)
		switch block.Kind {
		case journal.KindTitle:
			fmt.Fprintf(&b, "# %s\n\n", text)
		case journal.KindHeading:
			fmt.Fprintf(&b, "## %s\n\n", text)
		default:
			// Blank lines inside an outcome would split the paragraph.
			for strings.Contains(text, "\n\n") {
				text = strings.ReplaceAll(text, "\n\n", "\n")
			}
			fmt.Fprintf(&b, "%s\n\n", text)
		}
	}
	return []byte(b.String()), nil
}

// HTML renders the journal as a standalone HTML page.
func HTML(j journal.Journal) ([]byte, error) {
	md, err := Markdown(j)
	if err != nil {
		return nil, err
	}
	var body bytes.Buffer
	if err := mdRenderer.Convert(md, &body); err != nil {
		return nil, fmt.Errorf("render journal html: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(journalTitle(j)))
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// journalTitle returns the text of the first title block.
func journalTitle(j journal.Journal) string {
	for _, b := range j.Blocks {
		if b.Kind == journal.KindTitle {
			return b.Text
		}
	}
	return j.Title
}
