// Package logtable loads CSV logs written by the rig recorder and host oscilloscope
// into an in-memory table of named float64 columns.
//
// The recorder writes a header row followed by one fixed-point row per sample
// (timestamp_ns first, then input and output signals). Host oscilloscope exports use
// "t" as their first column. Column sets otherwise depend on the rig configuration,
// so the table keeps whatever the header names and callers ask for columns by name.
package logtable

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrMissingColumn is returned (wrapped) when a requested column is not in the table.
var ErrMissingColumn = errors.New("missing column")

// Table is a CSV log loaded wholesale. Rows share an implicit index; every column is float64.
type Table struct {
	source string
	names  []string
	index  map[string]int
	rows   int
	data   *mat.Dense // rows x len(names); nil when rows == 0
}

// Load reads the CSV file at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	t.source = path
	return t, nil
}

// Read parses CSV with a header row. Empty cells become NaN.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("no header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	names := headerNames(header)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read rows")
	}

	t := &Table{names: names, index: make(map[string]int, len(names)), rows: len(records)}
	for i, n := range names {
		t.index[n] = i
	}
	if len(records) == 0 {
		return t, nil
	}
	values := make([]float64, 0, len(records)*len(names))
	for i, rec := range records {
		for j, cell := range rec {
			v, err := parseCell(cell)
			if err != nil {
				// +2: one for the header, one for 1-based line numbers
				return nil, errors.Errorf("line %d column %q: %v", i+2, names[j], err)
			}
			values = append(values, v)
		}
	}
	t.data = mat.NewDense(len(records), len(names), values)
	return t, nil
}

// headerNames trims names, labels blank ones and de-duplicates repeats with a numeric
// suffix ("x", "x.1", ...) so every column stays addressable.
func headerNames(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		out[i] = name
	}
	return out
}

func parseCell(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Errorf("not a number: %q", cell)
	}
	return v, nil
}

// Source is the path the table was loaded from ("" for Read).
func (t *Table) Source() string { return t.source }

// Len returns the number of data rows.
func (t *Table) Len() int { return t.rows }

// Names returns the column names in header order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, errors.Wrapf(ErrMissingColumn, "%q in %s", name, t.describe())
	}
	if t.data == nil {
		return []float64{}, nil
	}
	return mat.Col(nil, j, t.data), nil
}

// Set adds a column, or replaces it if the name exists. values must have Len() entries.
func (t *Table) Set(name string, values []float64) error {
	if len(values) != t.rows {
		return errors.Errorf("column %q has %d values, table %s has %d rows", name, len(values), t.describe(), t.rows)
	}
	if j, ok := t.index[name]; ok {
		if t.data != nil {
			t.data.SetCol(j, values)
		}
		return nil
	}
	j := len(t.names)
	t.names = append(t.names, name)
	t.index[name] = j
	if t.rows == 0 {
		return nil
	}
	grown := mat.NewDense(t.rows, j+1, nil)
	grown.Slice(0, t.rows, 0, j).(*mat.Dense).Copy(t.data)
	grown.SetCol(j, values)
	t.data = grown
	return nil
}

func (t *Table) describe() string {
	if t.source == "" {
		return "<input>"
	}
	return t.source
}

// Glob expands prefix into the sorted list of matching "<prefix>*.csv" paths.
// No matches is not an error.
func Glob(prefix string) ([]string, error) {
	matches, err := filepath.Glob(prefix + "*.csv")
	if err != nil {
		return nil, errors.Wrapf(err, "glob %q", prefix)
	}
	sort.Strings(matches)
	return matches, nil
}

// LoadAll loads each path in order, stopping at the first failure.
func LoadAll(paths []string) ([]*Table, error) {
	tables := make([]*Table, 0, len(paths))
	for _, p := range paths {
		t, err := Load(p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
