package fetcher

import (
	"archive/zip"
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadZIPEntry returns the name and content of the tabular entry to load from
// an in-memory archive. Among .xlsx, .csv, .tsv and .txt entries, the first
// whose base name contains hint (case-insensitive) wins, else the first one.
func ReadZIPEntry(data []byte, hint string) (string, []byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, eris.Wrap(err, "zip: open archive")
	}

	hint = strings.ToLower(hint)
	var pick *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !isTabular(f.Name) {
			continue
		}
		if pick == nil {
			pick = f
		}
		if hint != "" && strings.Contains(strings.ToLower(path.Base(f.Name)), hint) {
			pick = f
			break
		}
	}
	if pick == nil {
		return "", nil, eris.New("zip: no xlsx or csv entry in archive")
	}

	rc, err := pick.Open()
	if err != nil {
		return "", nil, eris.Wrapf(err, "zip: open entry %s", pick.Name)
	}
	defer rc.Close() //nolint:errcheck

	content, err := io.ReadAll(rc)
	if err != nil {
		return "", nil, eris.Wrapf(err, "zip: read entry %s", pick.Name)
	}
	return pick.Name, content, nil
}

func isTabular(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".xlsx", ".csv", ".tsv", ".txt":
		return true
	}
	return false
}
