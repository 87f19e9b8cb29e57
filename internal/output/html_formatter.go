package output

import (
	"bytes"
	"html/template"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter produces a standalone HTML page from the markdown report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 960px; margin: 2rem auto; color: #222; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.35rem 0.7rem; }
td[style*="right"] { font-variant-numeric: tabular-nums; }
blockquote { border-left: 4px solid #d9822b; margin: 0.5rem 0; padding: 0.25rem 1rem; background: #fff7ec; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

func (h HTMLFormatter) Format(report *domain.ComputationReport) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(report)
	if err != nil {
		return nil, err
	}
	var body bytes.Buffer
	if err := markdownRenderer.Convert(md, &body); err != nil {
		return nil, err
	}

	title := "Income Tax Computation " + report.AssessmentYear
	data := struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
