// Package table implements the in-memory tabular value store the pipeline
// operates on: ordered, named, typed columns of equal length.
//
// Tables are immutable once constructed. Every transform (Select, Rename,
// FilterRows, ...) returns a new Table; constructors copy the slices they are
// given. This is what lets the statistics engine hand the same unified table
// to several queries in sequence and have each observe identical input.
package table

import (
	"fmt"

	"emistat/internal/errs"
)

// Kind identifies the value type of a column.
type Kind int

const (
	// KindString is a free-text column.
	KindString Kind = iota
	// KindInt is a 64-bit integer column.
	KindInt
	// KindFloat is a 64-bit float column.
	KindFloat
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Column is a single named, typed column. Exactly one of the value slices is
// populated, matching Kind.
type Column struct {
	name   string
	kind   Kind
	strs   []string
	ints   []int64
	floats []float64
}

// StringColumn creates a text column. The input slice is copied.
func StringColumn(name string, values []string) Column {
	vs := make([]string, len(values))
	copy(vs, values)
	return Column{name: name, kind: KindString, strs: vs}
}

// IntColumn creates an integer column. The input slice is copied.
func IntColumn(name string, values []int64) Column {
	vs := make([]int64, len(values))
	copy(vs, values)
	return Column{name: name, kind: KindInt, ints: vs}
}

// FloatColumn creates a float column. The input slice is copied.
func FloatColumn(name string, values []float64) Column {
	vs := make([]float64, len(values))
	copy(vs, values)
	return Column{name: name, kind: KindFloat, floats: vs}
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Kind returns the column kind.
func (c Column) Kind() Kind { return c.kind }

// Len returns the number of values in the column.
func (c Column) Len() int {
	switch c.kind {
	case KindString:
		return len(c.strs)
	case KindInt:
		return len(c.ints)
	default:
		return len(c.floats)
	}
}

func (c Column) slice(indexes []int) Column {
	out := Column{name: c.name, kind: c.kind}
	switch c.kind {
	case KindString:
		out.strs = make([]string, 0, len(indexes))
		for _, i := range indexes {
			out.strs = append(out.strs, c.strs[i])
		}
	case KindInt:
		out.ints = make([]int64, 0, len(indexes))
		for _, i := range indexes {
			out.ints = append(out.ints, c.ints[i])
		}
	case KindFloat:
		out.floats = make([]float64, 0, len(indexes))
		for _, i := range indexes {
			out.floats = append(out.floats, c.floats[i])
		}
	}
	return out
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	cols  []Column
	index map[string]int
	nrows int
}

// New builds a table from the given columns. All columns must have the same
// length and distinct names.
func New(cols ...Column) (*Table, error) {
	t := &Table{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if _, dup := t.index[c.name]; dup {
			return nil, fmt.Errorf("table: duplicate column %q", c.name)
		}
		if i == 0 {
			t.nrows = c.Len()
		} else if c.Len() != t.nrows {
			return nil, fmt.Errorf("table: column %q has %d rows, want %d",
				c.name, c.Len(), t.nrows)
		}
		t.index[c.name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.nrows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	names := make([]string, 0, len(t.cols))
	for _, c := range t.cols {
		names = append(names, c.name)
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnKind returns the kind of the named column.
func (t *Table) ColumnKind(name string) (Kind, bool) {
	i, ok := t.index[name]
	if !ok {
		return 0, false
	}
	return t.cols[i].kind, true
}

func (t *Table) column(name string, kind Kind, op string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, errs.NewSchemaError(op, "required column is absent", name)
	}
	c := t.cols[i]
	if c.kind != kind {
		return Column{}, errs.NewSchemaError(op,
			fmt.Sprintf("column has kind %s, want %s", c.kind, kind), name)
	}
	return c, nil
}

// Strings returns a copy of the values of a text column.
func (t *Table) Strings(name string) ([]string, error) {
	c, err := t.column(name, KindString, "table.Strings")
	if err != nil {
		return nil, err
	}
	out := make([]string, len(c.strs))
	copy(out, c.strs)
	return out, nil
}

// Ints returns a copy of the values of an integer column.
func (t *Table) Ints(name string) ([]int64, error) {
	c, err := t.column(name, KindInt, "table.Ints")
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(c.ints))
	copy(out, c.ints)
	return out, nil
}

// Floats returns a copy of the values of a float column.
func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.column(name, KindFloat, "table.Floats")
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(c.floats))
	copy(out, c.floats)
	return out, nil
}

// Select returns a new table holding only the named columns, in the given
// order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		i, ok := t.index[name]
		if !ok {
			return nil, errs.NewSchemaError("table.Select", "required column is absent", name)
		}
		cols = append(cols, t.cols[i])
	}
	return New(cols...)
}

// Drop returns a new table without the named columns. Dropping a column that
// does not exist is an error.
func (t *Table) Drop(names ...string) (*Table, error) {
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		if !t.HasColumn(name) {
			return nil, errs.NewSchemaError("table.Drop", "required column is absent", name)
		}
		drop[name] = struct{}{}
	}
	cols := make([]Column, 0, len(t.cols))
	for _, c := range t.cols {
		if _, skip := drop[c.name]; !skip {
			cols = append(cols, c)
		}
	}
	return New(cols...)
}

// Rename returns a new table with column old renamed to new.
func (t *Table) Rename(old, new string) (*Table, error) {
	if !t.HasColumn(old) {
		return nil, errs.NewSchemaError("table.Rename", "required column is absent", old)
	}
	cols := make([]Column, len(t.cols))
	copy(cols, t.cols)
	c := cols[t.index[old]]
	c.name = new
	cols[t.index[old]] = c
	return New(cols...)
}

// WithColumn returns a new table with the given column appended. The column
// must match the table's row count and must not collide with an existing
// name.
func (t *Table) WithColumn(c Column) (*Table, error) {
	cols := make([]Column, len(t.cols), len(t.cols)+1)
	copy(cols, t.cols)
	return New(append(cols, c)...)
}

// FilterRows returns a new table keeping only the rows for which keep
// returns true.
func (t *Table) FilterRows(keep func(row int) bool) *Table {
	indexes := make([]int, 0, t.nrows)
	for i := 0; i < t.nrows; i++ {
		if keep(i) {
			indexes = append(indexes, i)
		}
	}
	return t.takeRows(indexes)
}

// TakeRows returns a new table holding the given rows, in the given order.
// Indexes may repeat.
func (t *Table) TakeRows(indexes []int) *Table {
	return t.takeRows(indexes)
}

func (t *Table) takeRows(indexes []int) *Table {
	cols := make([]Column, 0, len(t.cols))
	for _, c := range t.cols {
		cols = append(cols, c.slice(indexes))
	}
	out, _ := New(cols...)
	return out
}

// Concat returns a new table holding a's columns followed by b's columns.
// Both tables must have the same row count and no overlapping column names.
func Concat(a, b *Table) (*Table, error) {
	if a.nrows != b.nrows {
		return nil, fmt.Errorf("table: cannot concat %d rows with %d rows", a.nrows, b.nrows)
	}
	cols := make([]Column, 0, len(a.cols)+len(b.cols))
	cols = append(cols, a.cols...)
	cols = append(cols, b.cols...)
	return New(cols...)
}

// MapFloats returns a new table with fn applied to every value of the named
// float column.
func (t *Table) MapFloats(name string, fn func(float64) float64) (*Table, error) {
	c, err := t.column(name, KindFloat, "table.MapFloats")
	if err != nil {
		return nil, err
	}
	mapped := make([]float64, len(c.floats))
	for i, v := range c.floats {
		mapped[i] = fn(v)
	}
	cols := make([]Column, len(t.cols))
	copy(cols, t.cols)
	cols[t.index[name]] = Column{name: name, kind: KindFloat, floats: mapped}
	return New(cols...)
}

// MapStrings returns a new table with fn applied to every value of the named
// text column.
func (t *Table) MapStrings(name string, fn func(string) string) (*Table, error) {
	c, err := t.column(name, KindString, "table.MapStrings")
	if err != nil {
		return nil, err
	}
	mapped := make([]string, len(c.strs))
	for i, v := range c.strs {
		mapped[i] = fn(v)
	}
	cols := make([]Column, len(t.cols))
	copy(cols, t.cols)
	cols[t.index[name]] = Column{name: name, kind: KindString, strs: mapped}
	return New(cols...)
}

// DistinctStrings returns the set of distinct values of a text column.
func (t *Table) DistinctStrings(name string) (map[string]struct{}, error) {
	c, err := t.column(name, KindString, "table.DistinctStrings")
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(c.strs))
	for _, v := range c.strs {
		set[v] = struct{}{}
	}
	return set, nil
}

// DistinctInts returns the set of distinct values of an integer column.
func (t *Table) DistinctInts(name string) (map[int64]struct{}, error) {
	c, err := t.column(name, KindInt, "table.DistinctInts")
	if err != nil {
		return nil, err
	}
	set := make(map[int64]struct{}, len(c.ints))
	for _, v := range c.ints {
		set[v] = struct{}{}
	}
	return set, nil
}

// RestrictStrings returns a new table keeping only rows whose value in the
// named text column is in allowed.
func (t *Table) RestrictStrings(name string, allowed map[string]struct{}) (*Table, error) {
	c, err := t.column(name, KindString, "table.RestrictStrings")
	if err != nil {
		return nil, err
	}
	return t.FilterRows(func(row int) bool {
		_, ok := allowed[c.strs[row]]
		return ok
	}), nil
}

// RestrictInts returns a new table keeping only rows whose value in the named
// integer column is in allowed.
func (t *Table) RestrictInts(name string, allowed map[int64]struct{}) (*Table, error) {
	c, err := t.column(name, KindInt, "table.RestrictInts")
	if err != nil {
		return nil, err
	}
	return t.FilterRows(func(row int) bool {
		_, ok := allowed[c.ints[row]]
		return ok
	}), nil
}
