// Package lookup provides immutable code-to-label tables used to attach
// human-readable names to decoded enumeration fields.
package lookup

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Table maps integer codes to labels. Codes without an entry resolve to
// the fallback label. A Table is built once and never modified, so it can
// be shared by concurrent decoders.
type Table[K constraints.Integer] struct {
	name     string
	fallback string
	labels   map[K]string
	codes    []K
}

// Row is one table entry in a form independent of the code type.
type Row struct {
	Code  int64  `json:"code"`
	Label string `json:"label"`
}

// Lister is the non-generic read view of a Table.
type Lister interface {
	Name() string
	Fallback() string
	Rows() []Row
	Len() int
}

// New builds a table from a map literal. The entries are copied.
func New[K constraints.Integer](name, fallback string, entries map[K]string) *Table[K] {
	labels := make(map[K]string, len(entries))
	for code, label := range entries {
		labels[code] = label
	}
	codes := maps.Keys(labels)
	slices.Sort(codes)
	return &Table[K]{
		name:     name,
		fallback: fallback,
		labels:   labels,
		codes:    codes,
	}
}

// Name identifies the table.
func (t *Table[K]) Name() string { return t.name }

// Fallback is the label for codes without an entry.
func (t *Table[K]) Fallback() string { return t.fallback }

// Len is the number of explicit entries.
func (t *Table[K]) Len() int { return len(t.codes) }

// Get returns the label for code, or the fallback.
func (t *Table[K]) Get(code K) string {
	if label, ok := t.labels[code]; ok {
		return label
	}
	return t.fallback
}

// Lookup returns the label for code and whether the table has an entry.
func (t *Table[K]) Lookup(code K) (string, bool) {
	label, ok := t.labels[code]
	return label, ok
}

// Codes returns the mapped codes in ascending order.
func (t *Table[K]) Codes() []K {
	return slices.Clone(t.codes)
}

// Rows returns the entries in ascending code order.
func (t *Table[K]) Rows() []Row {
	rows := make([]Row, 0, len(t.codes))
	for _, code := range t.codes {
		rows = append(rows, Row{Code: int64(code), Label: t.labels[code]})
	}
	return rows
}

func (t *Table[K]) String() string {
	return fmt.Sprintf("lookup.Table{%s, %d entries}", t.name, len(t.codes))
}

// Find returns the table with the given name.
func Find(name string, tables ...Lister) (Lister, bool) {
	for _, t := range tables {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}
