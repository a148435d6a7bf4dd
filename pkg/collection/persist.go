package collection

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/snitron/clockface/pkg/clock"
	"github.com/snitron/clockface/pkg/errors"
	"gopkg.in/yaml.v3"
)

// state is the persisted form of a collection.
type state struct {
	Clocks []yaml.Node `yaml:"clocks"`
}

type savedEntry struct {
	ID            string `yaml:"id"`
	clock.Options `yaml:",inline"`
}

// Save writes the collection as YAML.
func (c *Collection) Save(w io.Writer) error {
	entries := c.Entries()
	out := struct {
		Clocks []savedEntry `yaml:"clocks"`
	}{Clocks: make([]savedEntry, 0, len(entries))}
	for _, e := range entries {
		out.Clocks = append(out.Clocks, savedEntry{ID: e.ID, Options: e.Style.Options()})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return errors.Wrap("collection.Save", errors.KindPersist, err)
	}
	return errors.Wrap("collection.Save", errors.KindPersist, enc.Close())
}

// Restore replaces the contents with clocks read from r. Fields missing
// from an entry take their default values and entries without an ID get a
// fresh one. An empty input or an empty list restores one default clock.
// On error the collection is left unchanged.
func (c *Collection) Restore(r io.Reader) error {
	var st state
	if err := yaml.NewDecoder(r).Decode(&st); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.Wrap("collection.Restore", errors.KindPersist, err)
	}

	entries := make([]Entry, 0, len(st.Clocks))
	for i := range st.Clocks {
		saved := savedEntry{Options: clock.DefaultOptions()}
		if err := st.Clocks[i].Decode(&saved); err != nil {
			return errors.Wrap("collection.Restore", errors.KindPersist, fmt.Errorf("clock %d: %w", i, err))
		}
		style, err := clock.NewStyle(saved.Options)
		if err != nil {
			return errors.Wrap("collection.Restore", errors.KindPersist, fmt.Errorf("clock %d: %w", i, err))
		}
		if saved.ID == "" {
			saved.ID = uuid.NewString()
		}
		entries = append(entries, Entry{ID: saved.ID, Style: style})
	}
	if len(entries) == 0 {
		entries = append(entries, newEntry(clock.DefaultStyle()))
	}
	c.replace(entries)
	return nil
}

// SaveFile writes the collection to path, replacing it atomically.
func (c *Collection) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap("collection.SaveFile", errors.KindPersist, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap("collection.SaveFile", errors.KindPersist, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrap("collection.SaveFile", errors.KindPersist, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap("collection.SaveFile", errors.KindPersist, err)
	}
	return errors.Wrap("collection.SaveFile", errors.KindPersist, os.Rename(tmp.Name(), path))
}

// LoadFile restores the collection from path. A missing file restores one
// default clock.
func (c *Collection) LoadFile(path string) error {
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return c.Restore(bytes.NewReader(nil))
	}
	if err != nil {
		return errors.Wrap("collection.LoadFile", errors.KindPersist, err)
	}
	defer f.Close()
	return c.Restore(f)
}
