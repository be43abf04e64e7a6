package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/libdoc"
)

// Run executes the presets command.
func (c *PresetsCmd) Run(deps *Dependencies) error {
	if c.Name != "" {
		return c.show(deps)
	}

	presets := libdoc.Presets()
	if c.JSON {
		return writeJSON(deps.Stdout, map[string]any{
			"presets": presets,
			"count":   len(presets),
		})
	}

	fmt.Fprintf(deps.Stdout, "Available presets (%d):\n\n", len(presets))
	const columns = 4
	for i := 0; i < len(presets); i += columns {
		var row strings.Builder
		for _, p := range presets[i:min(i+columns, len(presets))] {
			fmt.Fprintf(&row, "  %-18s", p.Name)
		}
		fmt.Fprintln(deps.Stdout, strings.TrimRight(row.String(), " "))
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, "Index a checkout with 'libdoc index <library> --preset <name> <checkout>'.")
	return nil
}

func (c *PresetsCmd) show(deps *Dependencies) error {
	p, err := libdoc.FindPreset(c.Name)
	if err != nil {
		return fail(deps, err)
	}

	if c.JSON {
		return writeJSON(deps.Stdout, p)
	}

	fmt.Fprintf(deps.Stdout, "Preset: %s\n", p.Name)
	fmt.Fprintf(deps.Stdout, "  repo:       %s\n", p.RepoURL())
	fmt.Fprintf(deps.Stdout, "  branch:     %s\n", p.Branch)
	fmt.Fprintf(deps.Stdout, "  docs path:  %s\n", p.DocsPath)
	fmt.Fprintf(deps.Stdout, "  base URL:   %s\n", p.BaseURL)
	fmt.Fprintf(deps.Stdout, "  extensions: %s\n", strings.Join(p.Extensions, ", "))
	return nil
}
