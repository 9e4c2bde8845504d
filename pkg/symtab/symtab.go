package symtab

import (
	"sort"
	"strconv"
	"strings"
)

// Table maps variable names to their last-assigned integer value.
// Dendron has one flat global scope, so a single map is enough.
// The compiler and the machine each own a separate Table.
type Table struct {
	vars map[string]int64
}

func New() *Table {
	return &Table{vars: make(map[string]int64)}
}

// Declare creates name or overwrites its value.
func (t *Table) Declare(name string, v int64) {
	if t.vars == nil {
		t.vars = make(map[string]int64)
	}
	t.vars[name] = v
}

// Lookup returns the value bound to name.
func (t *Table) Lookup(name string) (int64, bool) {
	v, ok := t.vars[name]
	return v, ok
}

// Has reports whether name has been declared.
func (t *Table) Has(name string) bool {
	_, ok := t.vars[name]
	return ok
}

func (t *Table) Len() int {
	return len(t.vars)
}

// Names returns the declared names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.vars))
	for name := range t.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the table into a plain map.
func (t *Table) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(t.vars))
	for k, v := range t.vars {
		out[k] = v
	}
	return out
}

func (t *Table) Clone() *Table {
	return &Table{vars: t.Snapshot()}
}

// Reset drops every entry.
func (t *Table) Reset() {
	clear(t.vars)
}

// String renders the table as {a=1, b=2} with names sorted.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range t.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatInt(t.vars[name], 10))
	}
	b.WriteByte('}')
	return b.String()
}
