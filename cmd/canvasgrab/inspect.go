package main

import (
	"fmt"

	"github.com/fwojciec/canvasgrab"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	html, err := deps.Document.HTML(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	inv, err := deps.Inspector.Inventory(html, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if inv.Total > 0 {
		fmt.Fprintf(deps.Stdout, "Total pages: %d\n", inv.Total)
	} else {
		fmt.Fprintln(deps.Stdout, "Total pages: not found")
	}
	fmt.Fprintf(deps.Stdout, "Rendered pages: %s\n", listOrNone(inv.Surfaces))
	fmt.Fprintf(deps.Stdout, "Page containers: %s\n", listOrNone(inv.Containers))

	if inv.Total > 0 {
		rendered := make(map[int]bool, len(inv.Surfaces))
		for _, page := range inv.Surfaces {
			rendered[page] = true
		}
		var pending []int
		for page := 1; page <= inv.Total; page++ {
			if !rendered[page] {
				pending = append(pending, page)
			}
		}
		fmt.Fprintf(deps.Stdout, "Not yet rendered: %s\n", listOrNone(pending))
	}
	return nil
}

func listOrNone(pages []int) string {
	if len(pages) == 0 {
		return "none"
	}
	return canvasgrab.FormatSelection(pages)
}
