// Package fetcher reads tabular sources (local files, HTTP and FTP URLs) in
// XLSX, CSV and ZIP form into raw string records.
package fetcher

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVOptions configures the CSV parser.
type CSVOptions struct {
	Delimiter rune   // 0 auto-detects among ',', ';' and '\t' from the first line
	Encoding  string // WHATWG label, default "utf-8"; a byte-order mark always wins
}

// ParseCSV decodes r with the configured charset and returns every record,
// header included. Records may have differing lengths.
func ParseCSV(r io.Reader, opts CSVOptions) ([][]string, error) {
	label := opts.Encoding
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: unsupported encoding %q", label)
	}

	br := bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())))

	delim := opts.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(br)
	}

	reader := csv.NewReader(br)
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "csv: read records")
	}
	return records, nil
}

// sniffDelimiter peeks at the first line and picks the most frequent of the
// candidate delimiters, defaulting to a comma.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(4096)
	line := string(peek)
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}

	best, bestCount := ',', 0
	for _, c := range []rune{',', ';', '\t'} {
		if n := strings.Count(line, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}
