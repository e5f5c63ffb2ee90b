package htmltable

import "html/template"

var (
	HeaderTemplate = template.Must(template.New("header").Parse(
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>\n" +
			"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}",
	))

	RowTemplate = template.Must(template.New("row").Parse("" +
		`{{define "cell"}}` +
		`{{if .Header}}{{if .Attrs}}<th {{.Attrs}}>{{else}}<th>{{end}}{{.Content}}</th>` +
		`{{else}}{{if .Attrs}}<td {{.Attrs}}>{{else}}<td>{{end}}{{.Content}}</td>{{end}}` +
		`{{end}}` +
		`  {{if .Attrs}}<tr {{.Attrs}}>{{else}}<tr>{{end}}{{range .Cells}}{{template "cell" .}}{{end}}</tr>` + "\n",
	))

	FooterTemplate = template.Must(template.New("footer").Parse(
		"</table>\n",
	))
)

type TemplateContext struct {
	TableClass string
	Caption    string
}

type RowTemplateContext struct {
	TemplateContext

	// Section is "thead", "tbody", "tfoot"
	// or empty for rows outside of a section
	Section  string
	RowIndex int
	Attrs    template.HTMLAttr
	Cells    []CellTemplateContext
}

type CellTemplateContext struct {
	Header  bool
	Attrs   template.HTMLAttr
	Content template.HTML
}
