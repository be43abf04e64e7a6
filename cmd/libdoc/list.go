package main

import (
	"fmt"
	"time"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	libs, err := deps.Libraries.FindLibraries(deps.Ctx)
	if err != nil {
		return fail(deps, err)
	}

	if c.JSON {
		return writeJSON(deps.Stdout, map[string]any{
			"libraries": libs,
			"count":     len(libs),
		})
	}

	if len(libs) == 0 {
		fmt.Fprintln(deps.Stdout, "No libraries indexed yet. Use 'libdoc index' to add one.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, "Indexed libraries:")
	fmt.Fprintln(deps.Stdout)
	for _, lib := range libs {
		fmt.Fprintf(deps.Stdout, "  %s: %d docs (indexed: %s)\n",
			lib.Name, lib.DocumentCount, lib.IndexedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintf(deps.Stdout, "\nTotal: %d %s\n", len(libs), plural(len(libs), "library", "libraries"))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
