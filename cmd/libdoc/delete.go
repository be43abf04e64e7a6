package main

import (
	"fmt"

	"github.com/fwojciec/libdoc"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		return fail(deps, libdoc.Errorf(libdoc.EINVALID, "use --force to confirm deletion"))
	}

	n, err := deps.Libraries.DeleteLibrary(deps.Ctx, c.Library)
	if err != nil {
		return fail(deps, err)
	}

	if n == 0 {
		fmt.Fprintf(deps.Stdout, "Library %q had no documents\n", c.Library)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Deleted library %q (%d documents)\n", c.Library, n)
	return nil
}
