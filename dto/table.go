package dto

// Row is one spreadsheet row keyed by column name.
// A missing key and an empty string both mean the cell is empty (null).
type Row map[string]string

// Get returns the cell value for col, or "" when the row has no such cell.
func (r Row) Get(col string) string {
	if r == nil {
		return ""
	}
	return r[col]
}

// Table is an ordered collection of rows read from one sheet.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable creates an empty table with the given columns
func NewTable(name string, columns ...string) *Table {
	return &Table{
		Name:    name,
		Columns: append([]string(nil), columns...),
		Rows:    []Row{},
	}
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Has reports whether the table exposes every named column.
func (t *Table) Has(cols ...string) bool {
	return len(t.Missing(cols...)) == 0
}

// Missing returns the subset of cols the table does not expose.
func (t *Table) Missing(cols ...string) []string {
	present := make(map[string]bool)
	if t != nil {
		for _, c := range t.Columns {
			present[c] = true
		}
	}

	var missing []string
	for _, c := range cols {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Append adds a row to the table
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// AddColumn registers a derived column if it is not already present.
func (t *Table) AddColumn(col string) {
	if t.Has(col) {
		return
	}
	t.Columns = append(t.Columns, col)
}

// Rename renames columns (and the matching row keys) according to mapping.
func (t *Table) Rename(mapping map[string]string) {
	if t == nil {
		return
	}
	for i, c := range t.Columns {
		if to, ok := mapping[c]; ok {
			t.Columns[i] = to
		}
	}
	for _, row := range t.Rows {
		for from, to := range mapping {
			if v, ok := row[from]; ok {
				delete(row, from)
				row[to] = v
			}
		}
	}
}

// Drop removes the named columns; names the table does not have are ignored.
func (t *Table) Drop(cols ...string) {
	if t == nil {
		return
	}
	drop := make(map[string]bool, len(cols))
	for _, c := range cols {
		drop[c] = true
	}

	kept := t.Columns[:0]
	for _, c := range t.Columns {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	t.Columns = kept

	for _, row := range t.Rows {
		for c := range drop {
			delete(row, c)
		}
	}
}

// Filter returns a new table sharing the column set and holding the rows keep accepts.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := NewTable(t.nameOrEmpty(), t.columnsOrNil()...)
	if t == nil {
		return out
	}
	for _, row := range t.Rows {
		if keep(row) {
			out.Append(row)
		}
	}
	return out
}

// DropDuplicates removes rows equal to an earlier row on every column, keeping the first.
func (t *Table) DropDuplicates() {
	if t == nil {
		return
	}
	seen := make(map[string]bool, len(t.Rows))
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		key := t.rowKey(row, t.Columns)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}
	t.Rows = kept
}

// FirstBy returns a new table holding the first row for each distinct value
// of col, in first-seen order.
func (t *Table) FirstBy(col string) *Table {
	out := NewTable(t.nameOrEmpty(), t.columnsOrNil()...)
	if t == nil {
		return out
	}
	seen := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		v := row.Get(col)
		if seen[v] {
			continue
		}
		seen[v] = true
		out.Append(row)
	}
	return out
}

func (t *Table) rowKey(row Row, cols []string) string {
	key := make([]byte, 0, 64)
	for _, c := range cols {
		key = append(key, row.Get(c)...)
		key = append(key, 0x1f)
	}
	return string(key)
}

func (t *Table) nameOrEmpty() string {
	if t == nil {
		return ""
	}
	return t.Name
}

func (t *Table) columnsOrNil() []string {
	if t == nil {
		return nil
	}
	return t.Columns
}
