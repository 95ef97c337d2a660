// Package report renders processing results for machines (JSON) and humans
// (HTML), leaving terminal output to the cmd layer.
package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"github.com/asciidoc-dita/adfix/pkg/schema"
)

// JSON returns the machine-readable run summary.
func JSON(result *schema.ProcessingResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>adfix report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
.written { color: #2a7d2a; }
.failed, .interrupted { color: #b22; }
.skipped { color: #986801; }
code { background: #f4f4f4; padding: 1px 4px; }
</style>
</head>
<body>
<h1>adfix report</h1>
<p>{{.Summary}}</p>
<table>
<tr><th>File</th><th>Status</th><th>Applied</th><th>Skipped</th><th>Detail</th></tr>
{{range .Files}}<tr>
<td><code>{{.Path}}</code></td>
<td class="{{.Status}}">{{.Status}}</td>
<td>{{len .Applied}}</td>
<td>{{len .Skipped}}</td>
<td>{{.Reason}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

// WriteHTML writes an HTML rendering of the result to path.
func WriteHTML(result *schema.ProcessingResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create report file: %w", err)
	}
	defer f.Close()

	if err := htmlTemplate.Execute(f, result); err != nil {
		return fmt.Errorf("cannot render report: %w", err)
	}
	return nil
}
