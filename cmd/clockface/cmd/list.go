package cmd

import (
	"fmt"
)

func init() {
	RegisterCommand(&Command{
		Name:  "list",
		Short: "List clocks in the collection",
		Long: `List the clocks stored in the project's state file, in display order.

Each line shows the position, the clock ID, the division count and the
redraw interval.`,
		Usage: "clockface list",
		Run:   runList,
	})
}

func runList(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown flag: %s", args[0])
	}

	p, err := openProject()
	if err != nil {
		return err
	}

	entries := p.clocks.Entries()
	fmt.Fprintf(stdout, "Project: %s (%s)\n", p.cfg.App.Name, p.cfg.App.StateFile)
	fmt.Fprintln(stdout)
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "No clocks")
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(stdout, "  %-3d %s  divisions=%-3d interval=%s\n",
			i, e.ID, e.Style.DivisionCount(), e.Style.RedrawInterval())
	}
	return nil
}
