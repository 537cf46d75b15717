package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/KaramelBytes/quickeda/internal/dataset"
)

// TableOptions controls HTML table rendering.
type TableOptions struct {
	// Classes are appended to the "dataframe" class.
	Classes []string
	// HideIndex drops the row-label column even when the frame has one.
	HideIndex bool
}

type tableView struct {
	Class     string
	ShowIndex bool
	IndexName string
	Columns   []string
	Rows      []rowView
}

type rowView struct {
	Label string
	Cells []string
}

var tableTmpl = template.Must(template.New("table").Parse(
	`<table border="1" class="{{.Class}}">
  <thead>
    <tr style="text-align: right;">
{{- if .ShowIndex}}
      <th></th>
{{- end}}
{{- range .Columns}}
      <th>{{.}}</th>
{{- end}}
    </tr>
{{- if and .ShowIndex .IndexName}}
    <tr>
      <th>{{.IndexName}}</th>
{{- range .Columns}}
      <th></th>
{{- end}}
    </tr>
{{- end}}
  </thead>
  <tbody>
{{- range .Rows}}
    <tr>
{{- if $.ShowIndex}}
      <th>{{.Label}}</th>
{{- end}}
{{- range .Cells}}
      <td>{{.}}</td>
{{- end}}
    </tr>
{{- end}}
  </tbody>
</table>
`))

// TableHTML renders a frame as an HTML table. Every row and column is written;
// text is escaped.
func TableHTML(f *dataset.Frame, opt TableOptions) (string, error) {
	v := tableView{
		Class:     strings.Join(append([]string{"dataframe"}, opt.Classes...), " "),
		ShowIndex: f.HasIndex() && !opt.HideIndex,
		IndexName: f.IndexName,
		Columns:   f.Columns,
		Rows:      make([]rowView, len(f.Cells)),
	}
	for i, cells := range f.Cells {
		v.Rows[i].Cells = cells
		if f.HasIndex() {
			v.Rows[i].Label = f.Index[i]
		}
	}
	var buf bytes.Buffer
	if err := tableTmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}
	return buf.String(), nil
}

var statsTmpl = template.Must(template.New("stats").Parse(
	`<h1>{{.Title}}</h1>
{{.Stats}}<br><hr><br>
<h2>{{.SummaryTitle}}</h2>
{{.Summary}}`))

// StatisticsHTML assembles the combined report: heading, statistics table,
// separator, second heading and the variable summary without row labels.
func StatisticsHTML(stats, summary *dataset.Frame) (string, error) {
	st, err := TableHTML(stats, TableOptions{Classes: []string{"stats-table"}})
	if err != nil {
		return "", err
	}
	sm, err := TableHTML(summary, TableOptions{Classes: []string{"summary-table"}, HideIndex: true})
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err = statsTmpl.Execute(&buf, map[string]any{
		"Title":        "Resumen Estadistico Avanzado",
		"SummaryTitle": "Resumen de Variables",
		// both fragments were produced by TableHTML and are already escaped
		"Stats":   template.HTML(st),
		"Summary": template.HTML(sm),
	})
	if err != nil {
		return "", fmt.Errorf("render statistics report: %w", err)
	}
	return buf.String(), nil
}
