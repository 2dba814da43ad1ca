package catalog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/sevy33/permissions-in-go/pkg/export"
)

func strPtr(s string) *string {
	return &s
}

func billing() export.Project {
	return export.Project{
		ID:          1,
		Name:        "Billing",
		Description: strPtr("Invoices and payments"),
		APIKey:      "k",
		PermissionGroups: []export.Group{
			{ID: 1, Name: "Admins", Permissions: []export.Permission{
				{Key: "invoice.read", Description: strPtr("Read invoices")},
				{Key: "invoice.write", Description: strPtr("Create | edit")},
			}},
			{ID: 2, Name: "Auditors", Permissions: []export.Permission{}},
		},
	}
}

// headings collects heading texts by walking the goldmark AST
func headings(t *testing.T, md string) map[int][]string {
	t.Helper()
	source := []byte(md)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	found := map[int][]string{}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			var buf bytes.Buffer
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					buf.Write(txt.Segment.Value(source))
				}
			}
			found[h.Level] = append(found[h.Level], buf.String())
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return found
}

func TestMarkdown(t *testing.T) {
	md := Markdown(billing())

	h := headings(t, md)
	assert.Equal(t, []string{"Billing"}, h[1])
	assert.Equal(t, []string{"Admins", "Auditors"}, h[2])

	assert.Contains(t, md, "| `invoice.read` | Read invoices |")
	assert.Contains(t, md, `| `+"`invoice.write`"+` | Create \| edit |`)
	assert.Contains(t, md, "_No permissions enabled._")
}

func TestMarkdown_NoGroups(t *testing.T) {
	md := Markdown(export.Project{Name: "Empty", PermissionGroups: []export.Group{}})

	assert.Contains(t, md, "# Empty")
	assert.Contains(t, md, "_No permission groups._")
}

func TestHTML(t *testing.T) {
	html, err := HTML(billing())
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Billing</h1>")
	assert.Contains(t, html, "<h2>Admins</h2>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<code>invoice.read</code>")
	assert.Contains(t, html, "Create | edit")
}

func TestHTML_EscapesMarkup(t *testing.T) {
	html, err := HTML(export.Project{Name: "<script>alert(1)</script>"})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
}
