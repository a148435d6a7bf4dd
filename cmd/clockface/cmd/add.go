package cmd

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/snitron/clockface/pkg/clock"
)

func init() {
	RegisterCommand(&Command{
		Name:  "add",
		Short: "Insert a random clock",
		Long: `Insert a clock with randomly drawn options after the current one.

The current clock is the one at position --at (default 0). When the
collection is empty the new clock becomes the only one.

Flags:
  --at N       Position of the current clock (default 0)
  --seed S     Seed for the random options (default: time based)`,
		Usage: "clockface add [--at N] [--seed S]",
		Run:   runAdd,
	})
}

type addOptions struct {
	at      int
	seed    uint64
	hasSeed bool
}

func parseAddArgs(args []string) (addOptions, error) {
	var opts addOptions
	for i := 0; i < len(args); {
		switch flagName(args[i]) {
		case "--at":
			v, n, err := intFlag(args, i, "--at")
			if err != nil {
				return opts, err
			}
			opts.at = v
			i += n
		case "--seed":
			v, n, err := intFlag(args, i, "--seed")
			if err != nil {
				return opts, err
			}
			opts.seed = uint64(v)
			opts.hasSeed = true
			i += n
		default:
			return opts, fmt.Errorf("unknown flag: %s", args[i])
		}
	}
	return opts, nil
}

func runAdd(args []string) error {
	opts, err := parseAddArgs(args)
	if err != nil {
		return err
	}
	if !opts.hasSeed {
		opts.seed = uint64(time.Now().UnixNano())
	}

	p, err := openProject()
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9E3779B97F4A7C15))
	style, err := clock.NewStyle(clock.RandomOptions(rng))
	if err != nil {
		return err
	}

	pos, err := p.clocks.InsertAt(opts.at, style)
	if err != nil {
		return err
	}
	if err := p.save(); err != nil {
		return err
	}

	entry, _ := p.clocks.At(pos)
	fmt.Fprintf(stdout, "Inserted clock %s at position %d (%d total)\n", entry.ID, pos, p.clocks.Len())
	return nil
}
