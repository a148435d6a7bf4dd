package cmd

import (
	"fmt"
)

func init() {
	RegisterCommand(&Command{
		Name:  "remove",
		Short: "Remove the current clock",
		Long: `Remove the clock at position --at (default 0).

Removing from an empty collection does nothing.

Flags:
  --at N       Position of the clock to remove (default 0)`,
		Usage: "clockface remove [--at N]",
		Run:   runRemove,
	})
}

func runRemove(args []string) error {
	at := 0
	for i := 0; i < len(args); {
		switch flagName(args[i]) {
		case "--at":
			v, n, err := intFlag(args, i, "--at")
			if err != nil {
				return err
			}
			at = v
			i += n
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	p, err := openProject()
	if err != nil {
		return err
	}

	if p.clocks.Len() == 0 {
		fmt.Fprintln(stdout, "No clocks to remove")
		return nil
	}

	removed, err := p.clocks.RemoveAt(at)
	if err != nil {
		return err
	}
	if err := p.save(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Removed clock %s (%d left)\n", removed.ID, p.clocks.Len())
	return nil
}
