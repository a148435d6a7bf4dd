package cmd

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/snitron/clockface/cmd/clockface/internal/config"
	"github.com/snitron/clockface/cmd/clockface/internal/observability"
	"github.com/snitron/clockface/pkg/collection"
)

// project is the loaded configuration and clock collection of one directory.
type project struct {
	cfg    *config.Config
	clocks *collection.Collection
	logger *slog.Logger
}

// openProject loads the configuration and state file of the project
// directory. A missing state file starts a collection with one clock using
// the configured default options.
func openProject() (*project, error) {
	dir := projectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	logger := observability.InitLogger(stderr, observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.App.Name,
	})

	var clocks *collection.Collection
	if _, err := os.Stat(cfg.App.StateFile); stderrors.Is(err, fs.ErrNotExist) {
		style, err := cfg.ClockStyle()
		if err != nil {
			return nil, err
		}
		clocks = collection.New(style)
	} else {
		clocks = collection.New()
		if err := clocks.LoadFile(cfg.App.StateFile); err != nil {
			return nil, err
		}
	}

	p := &project{cfg: cfg, clocks: clocks, logger: logger}
	clocks.AddListener(collection.ListenerFuncs{
		Inserted: func(index int) {
			logger.Info("clock inserted", "index", index)
		},
		RangeChanged: func(start, count int) {
			logger.Info("clocks changed", "start", start, "count", count)
		},
		Removed: func(index int) {
			logger.Info("clock removed", "index", index)
		},
	})
	return p, nil
}

func (p *project) save() error {
	if err := p.clocks.SaveFile(p.cfg.App.StateFile); err != nil {
		return err
	}
	p.logger.Debug("state saved", "path", p.cfg.App.StateFile, "clocks", p.clocks.Len())
	return nil
}

// intFlag parses the value of an integer flag given as "--name N" or
// "--name=N". It returns the number of arguments consumed.
func intFlag(args []string, i int, name string) (int, int, error) {
	raw, consumed, err := stringFlag(args, i, name)
	if err != nil {
		return 0, 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: invalid number %q", name, raw)
	}
	return v, consumed, nil
}

func stringFlag(args []string, i int, name string) (string, int, error) {
	if v, ok := strings.CutPrefix(args[i], name+"="); ok {
		return v, 1, nil
	}
	if i+1 < len(args) {
		return args[i+1], 2, nil
	}
	return "", 0, fmt.Errorf("%s requires a value", name)
}

// flagName returns the flag name of arg without any "=value" suffix.
func flagName(arg string) string {
	name, _, _ := strings.Cut(arg, "=")
	return name
}
