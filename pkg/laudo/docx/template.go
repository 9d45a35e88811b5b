package docx

import (
	"bytes"
	"fmt"
	"html"
	"io/fs"
	"regexp"
	"strings"
	"text/template"
)

var (
	splitOpen   = regexp.MustCompile(`\{(?:<[^>]+>)+\{`)
	splitClose  = regexp.MustCompile(`\}(?:<[^>]+>)+\}`)
	action      = regexp.MustCompile(`(?s)\{\{.*?\}\}`)
	markup      = regexp.MustCompile(`<[^>]+>`)
	blockAction = regexp.MustCompile(`\{\{-?\s*(tr|p)\s+(.*?)\s*-?\}\}`)
)

// control words whose actions produce no output and are left unescaped.
var controlWords = map[string]bool{
	"range": true, "if": true, "else": true, "end": true, "with": true,
	"define": true, "template": true, "block": true, "break": true, "continue": true,
}

// PrepareTemplate turns a Word document part into Go template source.
// Tags that Word split across runs are joined, {{tr ...}} and {{p ...}}
// replace their enclosing table row or paragraph, and every output action is
// piped through xmlesc.
func PrepareTemplate(part string) (string, error) {
	s := splitOpen.ReplaceAllString(part, "{{")
	s = splitClose.ReplaceAllString(s, "}}")
	s = action.ReplaceAllStringFunc(s, cleanAction)

	s, err := expandBlocks(s)
	if err != nil {
		return "", err
	}
	return action.ReplaceAllStringFunc(s, escapeAction), nil
}

func cleanAction(a string) string {
	a = markup.ReplaceAllString(a, "")
	a = html.UnescapeString(a)
	return strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'").Replace(a)
}

func expandBlocks(s string) (string, error) {
	for {
		loc := blockAction.FindStringSubmatchIndex(s)
		if loc == nil {
			return s, nil
		}
		tag := "w:" + s[loc[2]:loc[3]]
		body := s[loc[4]:loc[5]]

		start := lastOpenTag(s[:loc[0]], tag)
		closeTag := "</" + tag + ">"
		end := strings.Index(s[loc[1]:], closeTag)
		if start < 0 || end < 0 {
			return "", fmt.Errorf("%q is not inside a %s element", s[loc[0]:loc[1]], tag)
		}
		end += loc[1] + len(closeTag)
		s = s[:start] + "{{" + body + "}}" + s[end:]
	}
}

// lastOpenTag finds the last start tag of name, so "w:p" never matches "w:pPr".
func lastOpenTag(s, name string) int {
	return max(strings.LastIndex(s, "<"+name+">"), strings.LastIndex(s, "<"+name+" "))
}

func escapeAction(a string) string {
	inner := a[2 : len(a)-2]
	left, right := "", ""
	if strings.HasPrefix(inner, "- ") {
		left, inner = "- ", inner[2:]
	}
	if strings.HasSuffix(inner, " -") {
		right, inner = " -", inner[:len(inner)-2]
	}

	trimmed := strings.TrimSpace(inner)
	if trimmed == "" || strings.HasPrefix(trimmed, "/*") {
		return a
	}
	fields := strings.Fields(trimmed)
	if controlWords[fields[0]] {
		return a
	}
	if strings.HasPrefix(fields[0], "$") && len(fields) > 1 && (fields[1] == ":=" || fields[1] == "=") {
		return a
	}
	return "{{" + left + inner + " | xmlesc" + right + "}}"
}

// Render executes the main document part of doc as a template over data.
// Images referenced by the data are read from fsys and embedded.
func Render(doc *Document, data any, fsys fs.FS) error {
	part, ok := doc.Part(DocumentPart)
	if !ok {
		return ErrNotDocument
	}

	src, err := PrepareTemplate(string(part))
	if err != nil {
		return fmt.Errorf("failed to prepare template: %w", err)
	}

	m := newMedia(doc, fsys, part)
	tmpl, err := template.New(DocumentPart).
		Option("missingkey=zero").
		Funcs(template.FuncMap{"xmlesc": m.escape}).
		Parse(src)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	doc.SetPart(DocumentPart, out.Bytes())
	return m.flush()
}
