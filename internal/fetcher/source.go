package fetcher

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// SourceOptions selects what to read from a tabular source.
type SourceOptions struct {
	Sheet    string // XLSX sheet name; empty reads the first sheet
	Encoding string // CSV charset label
	ZIPHint  string // preferred entry name fragment inside a ZIP
}

// SourceReader loads tabular sources from local paths or remote URLs.
type SourceReader struct {
	http Fetcher
	ftp  Fetcher
}

// NewSourceReader creates a SourceReader using the given fetchers for
// http(s):// and ftp:// sources. Either may be nil to disable that scheme.
func NewSourceReader(httpFetcher, ftpFetcher Fetcher) *SourceReader {
	return &SourceReader{http: httpFetcher, ftp: ftpFetcher}
}

// IsRemote reports whether src is an HTTP(S) or FTP URL rather than a path.
func IsRemote(src string) bool {
	l := strings.ToLower(strings.TrimSpace(src))
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") || strings.HasPrefix(l, "ftp://")
}

// Read returns the raw bytes of src and the file name used to choose a parser.
func (s *SourceReader) Read(ctx context.Context, src string) ([]byte, string, error) {
	src = strings.TrimSpace(src)
	if !IsRemote(src) {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, "", eris.Wrapf(err, "source: read file %s", src)
		}
		return data, filepath.Base(src), nil
	}

	f := s.http
	if strings.HasPrefix(strings.ToLower(src), "ftp://") {
		f = s.ftp
	}
	if f == nil {
		return nil, "", eris.Errorf("source: no fetcher configured for %s", src)
	}

	zap.L().Info("downloading source", zap.String("url", src))
	body, err := f.Download(ctx, src)
	if err != nil {
		return nil, "", eris.Wrapf(err, "source: download %s", src)
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", eris.Wrapf(err, "source: read body %s", src)
	}

	name := src
	if u, err := url.Parse(src); err == nil {
		name = path.Base(u.Path)
	}
	return data, name, nil
}

// ReadRecords loads src and parses it into raw records, header row first.
// The format follows the file extension: .csv/.tsv/.txt are delimited text,
// .zip is unpacked to its tabular entry, anything else is read as XLSX.
func (s *SourceReader) ReadRecords(ctx context.Context, src string, opts SourceOptions) ([][]string, error) {
	data, name, err := s.Read(ctx, src)
	if err != nil {
		return nil, err
	}
	return parseRecords(data, name, opts)
}

func parseRecords(data []byte, name string, opts SourceOptions) ([][]string, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".zip":
		entry, content, err := ReadZIPEntry(data, opts.ZIPHint)
		if err != nil {
			return nil, err
		}
		zap.L().Debug("reading zip entry", zap.String("archive", name), zap.String("entry", entry))
		return parseRecords(content, entry, opts)
	case ".csv", ".txt":
		return ParseCSV(bytes.NewReader(data), CSVOptions{Encoding: opts.Encoding})
	case ".tsv":
		return ParseCSV(bytes.NewReader(data), CSVOptions{Delimiter: '\t', Encoding: opts.Encoding})
	default:
		return ParseXLSX(data, XLSXOptions{SheetName: opts.Sheet})
	}
}
