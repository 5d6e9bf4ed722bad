// Package catalog holds the growth table: which plant types exist and how long
// each one takes to mature.
//
// A Catalog is built once and never mutated afterwards, so a single value can
// be shared across request handlers without locking.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrEmptyCatalog  = errors.New("catalog: no plant types")
	ErrInvalidName   = errors.New("catalog: invalid plant type name")
	ErrInvalidGrowth = errors.New("catalog: grow time must be positive whole seconds")
)

// Catalog maps plant-type names to their required growth duration.
type Catalog struct {
	growTimes map[string]time.Duration
	names     []string
}

// Entry is one row of the catalog listing.
type Entry struct {
	Name     string        `json:"name"`
	GrowTime time.Duration `json:"-"`
}

// New copies entries into an immutable catalog.
func New(entries map[string]time.Duration) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	growTimes := make(map[string]time.Duration, len(entries))
	names := make([]string, 0, len(entries))
	for name, growTime := range entries {
		if strings.TrimSpace(name) == "" || name != strings.TrimSpace(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		if growTime <= 0 || growTime%time.Second != 0 {
			return nil, fmt.Errorf("%w: %s=%s", ErrInvalidGrowth, name, growTime)
		}
		growTimes[name] = growTime
		names = append(names, name)
	}
	sort.Strings(names)
	return &Catalog{growTimes: growTimes, names: names}, nil
}

// Default returns the built-in plant table.
func Default() *Catalog {
	c, err := New(map[string]time.Duration{
		"carrot": 24 * time.Hour,
		"potato": time.Minute,
		"onion":  time.Hour,
	})
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Lookup(name string) (time.Duration, bool) {
	if c == nil {
		return 0, false
	}
	d, ok := c.growTimes[name]
	return d, ok
}

func (c *Catalog) Contains(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Names returns the valid plant types in lexical order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Entries returns the catalog rows in lexical order.
func (c *Catalog) Entries() []Entry {
	names := c.Names()
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		out = append(out, Entry{Name: name, GrowTime: c.growTimes[name]})
	}
	return out
}
