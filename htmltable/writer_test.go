package htmltable

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/domonda/go-regrid"
	"github.com/domonda/go-regrid/datatype"
	"github.com/domonda/go-regrid/grid"
	"github.com/domonda/go-regrid/gridcore"
	"github.com/domonda/go-regrid/table"
)

func ExampleWriter() {
	type Row struct {
		Status        json.RawMessage `col:"Status"`
		CompanyName   string          `col:"Company"`
		InternalNames []string        `col:"-"`
		CompanyID     uint64          `col:"Company ID"`
	}
	rows := []Row{
		{Status: nil, CompanyName: "Company 1", InternalNames: []string{"Company 1a"}, CompanyID: 1},
		{Status: json.RawMessage(`{"ok":true}`), CompanyName: "Company 2", InternalNames: nil, CompanyID: 2},
	}

	ctx := context.Background()
	stack, err := regrid.NewStack(ctx,
		grid.New(rows).Plugin(),
		datatype.New("Status").WithFormatter(JSONFormatter("")).Plugin(),
		table.New().Plugin(),
		table.HeaderRowPlugin(nil),
	)
	if err != nil {
		panic(err)
	}
	err = NewWriter().WithCaption("Table Title").Render(ctx, os.Stdout, stack)
	if err != nil {
		panic(err)
	}

	// Output:
	// <table>
	//   <caption>Table Title</caption>
	//   <thead>
	//   <tr><th>Status</th><th>Company</th><th>Company ID</th></tr>
	//   </thead>
	//   <tbody>
	//   <tr><td></td><td>Company 1</td><td>1</td></tr>
	//   <tr><td><pre>{&#34;ok&#34;:true}</pre></td><td>Company 2</td><td>2</td></tr>
	//   </tbody>
	// </table>
}

func renderHTML(t *testing.T, writer *Writer, plugins ...*regrid.Plugin) string {
	t.Helper()
	ctx := context.Background()
	stack, err := regrid.NewStack(ctx, plugins...)
	require.NoError(t, err)
	var b strings.Builder
	require.NoError(t, writer.Render(ctx, &b, stack))
	return b.String()
}

func TestWriter_Components(t *testing.T) {
	html := renderHTML(t, NewWriter(),
		grid.New([]map[string]any{}, gridcore.Column{Name: "a"}, gridcore.Column{Name: "b"}).Plugin(),
		table.New().WithComponents(Components(DefaultClasses)).Plugin(),
	)
	require.Equal(t, ""+
		"<table class='grid-table'>\n"+
		"  <tbody>\n"+
		`  <tr class="grid-nodata-row"><td class="grid-nodata" colspan="2">No data</td></tr>`+"\n"+
		"  </tbody>\n"+
		"</table>\n",
		html,
	)
}

func TestWriter_Escaping(t *testing.T) {
	rows := []map[string]any{{"text": `<b>"Fish" & Chips</b>`}}
	html := renderHTML(t, NewWriter().WithTableClass("x'y").WithCaption("<caption>"),
		grid.New(rows).Plugin(),
		table.New().Plugin(),
	)
	require.Contains(t, html, `<table class='x&#39;y'>`)
	require.Contains(t, html, `<caption>&lt;caption&gt;</caption>`)
	require.Contains(t, html, `<td>&lt;b&gt;&#34;Fish&#34; &amp; Chips&lt;/b&gt;</td>`)
}

func TestWriter_RawAndElements(t *testing.T) {
	node := regrid.Element("table", nil,
		regrid.Element("tr", map[string]string{"data-id": `"1"`},
			regrid.Element("td", nil, regrid.RawText("<i>raw</i>")),
			regrid.Fragment(regrid.Element("td", nil, regrid.Element("code", map[string]string{"class": "v"}, regrid.Text("a<b")))),
		),
	)
	var b strings.Builder
	require.NoError(t, NewWriter().Write(context.Background(), &b, regrid.Fragment(node)))
	require.Equal(t, ""+
		"<table>\n"+
		`  <tr data-id="&#34;1&#34;"><td><i>raw</i></td><td><code class="v">a&lt;b</code></td></tr>`+"\n"+
		"</table>\n",
		b.String(),
	)
}

func TestWriter_VoidAndInvalidElements(t *testing.T) {
	ctx := context.Background()
	cell := func(children ...*regrid.Node) *regrid.Node {
		return regrid.Element("table", nil, regrid.Element("tr", nil, regrid.Element("td", nil, children...)))
	}

	var b strings.Builder
	require.NoError(t, NewWriter().Write(ctx, &b, cell(regrid.Text("a"), regrid.Element("br", nil), regrid.Text("b"))))
	require.Contains(t, b.String(), "<td>a<br>b</td>")
	require.NotContains(t, b.String(), "</br>")

	for _, typ := range []string{"td onclick=x", "<script>", "1a", ""} {
		b.Reset()
		err := NewWriter().Write(ctx, &b, cell(regrid.Element(typ, nil)))
		require.ErrorContains(t, err, "invalid HTML tag name", typ)
	}

	b.Reset()
	require.Error(t, NewWriter().Write(ctx, &b, cell(regrid.Element("img", nil, regrid.Text("x")))))
}

func TestWriter_Errors(t *testing.T) {
	ctx := context.Background()
	var b strings.Builder

	require.ErrorIs(t, NewWriter().Write(ctx, &b, regrid.Text("x")), ErrNoTable)

	err := NewWriter().Write(ctx, &b, regrid.Element("table", nil, regrid.Element("div", nil)))
	require.ErrorContains(t, err, `unexpected "div" node`)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, NewWriter().Write(canceled, &b, regrid.Element("table", nil)), context.Canceled)
}
