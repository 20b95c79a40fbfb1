package report

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"
)

// pictoStyle is the inline style applied to one pictograph token.
type pictoStyle struct {
	Color  string
	Weight string
	Size   string
}

// pictoStyles is the static token-to-style map. Styling is a single
// lookup-and-wrap pass over the text, so no substitution can feed into
// a later one.
var pictoStyles = map[rune]pictoStyle{
	'☔': {Color: "#1565c0", Weight: "bold", Size: "1.3em"},
	'☀': {Color: "#ef6c00", Weight: "bold", Size: "1.3em"},
	'🌥': {Color: "#607d8b", Weight: "bold", Size: "1.3em"},
	'✅': {Color: "#2e7d32", Weight: "bold", Size: "1.3em"},
}

var pageTemplate = template.Must(template.New("advisory").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:Helvetica,Arial,sans-serif;">
  <div style="max-width:600px;margin:0 auto;">
    <div style="background:#1565c0;color:#ffffff;padding:16px 24px;font-size:1.2em;font-weight:bold;">{{.Title}}</div>
    <div style="background:#ffffff;padding:24px;line-height:1.6;color:#333333;">{{.Body}}</div>
    <div style="padding:12px 24px;color:#999999;font-size:0.8em;">Generated at {{.GeneratedAt}}</div>
  </div>
</body>
</html>
`))

type pageData struct {
	Title       string
	Body        template.HTML
	GeneratedAt string
}

// renderHTML wraps the plain-text advisory in the styled page shell.
// Pictograph tokens get their inline style span, newlines become line
// breaks, and everything else is escaped verbatim.
func renderHTML(text, title string, now time.Time, offset time.Duration) (string, error) {
	var body strings.Builder
	for _, r := range text {
		if style, ok := pictoStyles[r]; ok {
			fmt.Fprintf(&body, `<span style="color:%s;font-weight:%s;font-size:%s;">%c</span>`,
				style.Color, style.Weight, style.Size, r)
			continue
		}
		if r == '\n' {
			body.WriteString("<br>\n")
			continue
		}
		body.WriteString(html.EscapeString(string(r)))
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Title:       "Weather Advisory - " + title,
		Body:        template.HTML(body.String()),
		GeneratedAt: FormatFooterTime(now, offset),
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
