package recipients

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffSize is how much of the file the delimiter detection samples.
const sniffSize = 1024

// delimiterCandidates are tried in priority order; ties keep the earlier one.
var delimiterCandidates = []rune{',', ';', '\t'}

// Load reads a delimited recipient file and returns its records in file
// order. The first row is the header; a column name repeated in the header
// keeps its first position but takes the value of the last occurrence.
func Load(path string) (*List, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("recipients: reading %s: %w", path, err)
	}

	data, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1 // rows may be ragged; cells align by position

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	columns, index := buildHeader(header)
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: header row has no column names", ErrEmptyFile)
	}

	list := &List{Columns: columns}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		rec, ok := buildRecord(columns, index, row)
		if !ok {
			continue // every cell empty after trimming
		}
		list.Records = append(list.Records, rec)
	}

	if len(list.Records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecipients, path)
	}

	return list, nil
}

// decodeText strips a leading byte-order mark (converting UTF-16 input to
// UTF-8 along the way) and verifies the result is valid UTF-8.
func decodeText(raw []byte) ([]byte, error) {
	dec := unicode.BOMOverride(encoding.Nop.NewDecoder())
	data, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if !utf8.Valid(data) {
		return nil, ErrEncoding
	}
	return data, nil
}

// sniffDelimiter counts candidate delimiters in the first line of the
// sample and picks the most frequent one. Falls back to comma when the
// sample contains none of the candidates.
func sniffDelimiter(data []byte) rune {
	sample := data
	if len(sample) > sniffSize {
		sample = sample[:sniffSize]
	}
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		sample = sample[:i]
	}

	best := ','
	bestCount := 0
	for _, cand := range delimiterCandidates {
		if n := bytes.Count(sample, []byte(string(cand))); n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}

// buildHeader trims header cells and resolves duplicate column names:
// the column keeps the position of its first occurrence, while the value
// index points at the last occurrence.
func buildHeader(header []string) ([]string, map[string]int) {
	columns := make([]string, 0, len(header))
	index := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		if _, seen := index[name]; !seen {
			columns = append(columns, name)
		}
		index[name] = i
	}
	return columns, index
}

// buildRecord trims the row's cells and maps them by column. Returns false
// when every cell is empty, which callers treat as a skippable row.
func buildRecord(columns []string, index map[string]int, row []string) (Record, bool) {
	values := make(map[string]string, len(columns))
	nonEmpty := false
	for _, col := range columns {
		var v string
		if i := index[col]; i < len(row) {
			v = strings.TrimSpace(row[i])
		}
		if v != "" {
			nonEmpty = true
		}
		values[col] = v
	}
	if !nonEmpty {
		return Record{}, false
	}
	return Record{values: values, columns: columns}, true
}
