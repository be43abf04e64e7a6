package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/libdoc"
)

// Run executes the rebuild command.
func (c *RebuildCmd) Run(deps *Dependencies) error {
	if c.Index {
		before, err := deps.Statistics.Statistics(deps.Ctx)
		if err != nil {
			return fail(deps, err)
		}
		n, err := deps.Statistics.RebuildIndex(deps.Ctx)
		if err != nil {
			return fail(deps, err)
		}
		after, err := deps.Statistics.Statistics(deps.Ctx)
		if err != nil {
			return fail(deps, err)
		}

		if c.JSON {
			return writeJSON(deps.Stdout, map[string]any{
				"reindexed": n,
				"before":    before,
				"after":     after,
			})
		}
		fmt.Fprintf(deps.Stdout, "Reindexed %d documents\n", n)
		printStatistics(deps.Stdout, *after)
		return nil
	}

	repair, err := deps.Statistics.RebuildStatistics(deps.Ctx)
	if err != nil {
		return fail(deps, err)
	}

	if c.JSON {
		return writeJSON(deps.Stdout, repair)
	}
	if repair.Drifted {
		fmt.Fprintf(deps.Stdout, "Statistics had drifted; corrected %d term frequencies\n", repair.TermsCorrected)
	} else {
		fmt.Fprintln(deps.Stdout, "Statistics were consistent")
	}
	printStatistics(deps.Stdout, repair.After)
	return nil
}

func printStatistics(w io.Writer, s libdoc.Statistics) {
	fmt.Fprintf(w, "  documents:  %d\n", s.Documents)
	fmt.Fprintf(w, "  terms:      %d\n", s.Terms)
	fmt.Fprintf(w, "  avg title:  %.2f tokens\n", s.AvgFieldLen(libdoc.FieldTitle))
	fmt.Fprintf(w, "  avg body:   %.2f tokens\n", s.AvgFieldLen(libdoc.FieldBody))
}
