// Package catalog renders an exported project as a human readable
// permission catalog, in Markdown or in HTML through goldmark.
package catalog

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sevy33/permissions-in-go/pkg/export"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders the project with one section per group. Each section
// lists the group's enabled permissions in a table.
func Markdown(p export.Project) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", escapeInline(p.Name))
	if p.Description != nil && *p.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", escapeInline(*p.Description))
	}

	if len(p.PermissionGroups) == 0 {
		sb.WriteString("_No permission groups._\n")
		return sb.String()
	}

	for _, g := range p.PermissionGroups {
		fmt.Fprintf(&sb, "## %s\n\n", escapeInline(g.Name))
		if len(g.Permissions) == 0 {
			sb.WriteString("_No permissions enabled._\n\n")
			continue
		}

		sb.WriteString("| Key | Description |\n")
		sb.WriteString("| --- | --- |\n")
		for _, perm := range g.Permissions {
			desc := ""
			if perm.Description != nil {
				desc = *perm.Description
			}
			fmt.Fprintf(&sb, "| `%s` | %s |\n", strings.ReplaceAll(perm.Key, "`", "'"), escapeCell(desc))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// HTML renders Markdown(p) to an HTML fragment
func HTML(p export.Project) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(p)), &buf); err != nil {
		return "", fmt.Errorf("rendering catalog for %s: %w", p.Name, err)
	}
	return buf.String(), nil
}

func escapeInline(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "#", `\#`, "<", "&lt;", "\n", " ")
	return r.Replace(s)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(escapeInline(s), "|", `\|`)
}
