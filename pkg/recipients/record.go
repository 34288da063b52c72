package recipients

// Record is one recipient's row, keyed by header column name.
// Column order follows the header. Records are read-only after loading.
type Record struct {
	values  map[string]string
	columns []string
}

// NewRecord builds a record from a plain map, for callers that assemble
// recipients programmatically rather than loading them from a file.
// Column order is unspecified.
func NewRecord(values map[string]string) Record {
	r := Record{
		values:  make(map[string]string, len(values)),
		columns: make([]string, 0, len(values)),
	}
	for k, v := range values {
		r.values[k] = v
		r.columns = append(r.columns, k)
	}
	return r
}

// Get returns the value of the named column, or the empty string if the
// column is not present in the record.
func (r Record) Get(column string) string {
	return r.values[column]
}

// Has reports whether the record carries the named column.
func (r Record) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Columns returns the column names in header order.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Fields returns a copy of the record as a plain map, suitable as template
// data. Mutating the returned map does not affect the record.
func (r Record) Fields() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// List is an ordered, immutable sequence of records sharing one header.
type List struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (l *List) Len() int {
	return len(l.Records)
}
