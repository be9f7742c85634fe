// Package htmlmeta edits <title>, <meta> and JSON-LD tags in a static HTML
// document in place. Every edit is idempotent: a tag that already exists is
// rewritten where it stands, a missing one is inserted once before </head>.
package htmlmeta

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	titleRe   = regexp.MustCompile(`(?is)(<title>)(.*?)(</title>)`)
	headEndRe = regexp.MustCompile(`(?i)</head>`)
)

func metaRe(attr, name string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`(?i)(<meta\s+[^>]*%s="%s"[^>]*content=")([^"]*)(")`,
		regexp.QuoteMeta(attr), regexp.QuoteMeta(name),
	))
}

func scriptRe(id string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`(?is)(<script\s+[^>]*id="%s"[^>]*>)(.*?)(</script>)`,
		regexp.QuoteMeta(id),
	))
}

// MetaContent returns the unescaped content of the first <meta attr="name"> tag.
func MetaContent(doc, attr, name string) (string, bool) {
	m := metaRe(attr, name).FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}
	return html.UnescapeString(m[2]), true
}

// SetMeta sets the content of <meta attr="name">, inserting the tag if absent.
func SetMeta(doc, attr, name, content string) string {
	escaped := html.EscapeString(content)
	re := metaRe(attr, name)
	if re.MatchString(doc) {
		return replaceGroup(doc, re, escaped)
	}
	tag := fmt.Sprintf(`    <meta %s="%s" content="%s">`+"\n", attr, html.EscapeString(name), escaped)
	return insertBeforeHeadEnd(doc, tag)
}

// SetTitle rewrites the text of an existing <title>. Documents without one
// are returned unchanged.
func SetTitle(doc, title string) string {
	if !titleRe.MatchString(doc) {
		return doc
	}
	return replaceGroup(doc, titleRe, html.EscapeString(title))
}

// SetScript replaces the body of <script id="id">, or inserts
// <script type="typ" id="id"> when absent. body is written verbatim.
func SetScript(doc, id, typ, body string) string {
	re := scriptRe(id)
	if re.MatchString(doc) {
		return replaceGroup(doc, re, body)
	}
	tag := fmt.Sprintf(`    <script type="%s" id="%s">%s</script>`+"\n", html.EscapeString(typ), html.EscapeString(id), body)
	return insertBeforeHeadEnd(doc, tag)
}

// Truncate shortens text to at most max runes, ending with an ellipsis. The
// cut never leaves a partial word at the end.
func Truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := runes[:max-1]

	if !unicode.IsSpace(runes[max-1]) && !unicode.IsSpace(cut[len(cut)-1]) {
		for i := len(cut) - 1; i > 0; i-- {
			if unicode.IsSpace(cut[i]) {
				cut = cut[:i]
				break
			}
		}
	}
	return strings.TrimRightFunc(string(cut), unicode.IsSpace) + "…"
}

// replaceGroup swaps the second capture group of every match for repl.
// The replacement is literal; no $-expansion.
func replaceGroup(doc string, re *regexp.Regexp, repl string) string {
	matches := re.FindAllStringSubmatchIndex(doc, -1)
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(doc[last:m[4]])
		b.WriteString(repl)
		last = m[5]
	}
	b.WriteString(doc[last:])
	return b.String()
}

func insertBeforeHeadEnd(doc, tag string) string {
	loc := headEndRe.FindStringIndex(doc)
	if loc == nil {
		return doc
	}
	return doc[:loc[0]] + tag + doc[loc[0]:]
}
