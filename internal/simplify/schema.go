package simplify

import (
	"github.com/kevinushey/jsonlite/internal/wire"
	"github.com/kevinushey/jsonlite/value"
)

// unifyKeys returns the union of keys across record objects in first-seen
// order: the first record's keys first, then keys introduced by later
// records in encounter order. Repeated keys within one record count once.
func unifyKeys(records []*wire.Value) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, m := range rec.Members() {
			if !seen[m.Key] {
				seen[m.Key] = true
				keys = append(keys, m.Key)
			}
		}
	}
	return keys
}

// Flatten replaces every nested-table column with one column per leaf
// field, named parent.child with a dot separator, recursively until no
// nested table columns remain. Column order follows a depth-first walk of
// the original order.
func Flatten(t *value.Table) *value.Table {
	var cols []value.Column
	var walk func(prefix string, t *value.Table)
	walk = func(prefix string, t *value.Table) {
		for _, c := range t.Cols() {
			name := c.Name
			if prefix != "" {
				name = prefix + "." + c.Name
			}
			if nested, ok := c.Value.(*value.Table); ok {
				walk(name, nested)
				continue
			}
			cols = append(cols, value.Col(name, c.Value))
		}
	}
	walk("", t)
	out, err := value.NewTableSized(t.Rows(), cols...)
	if err != nil {
		// Leaf columns inherit the outer row count, so this is unreachable;
		// keep the original table rather than fail.
		return t
	}
	return out
}
