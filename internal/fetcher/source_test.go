package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	body string
	err  error
	got  string
}

func (s *stubFetcher) Download(_ context.Context, url string) (io.ReadCloser, error) {
	s.got = url
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://raw.githubusercontent.com/x/Work%20Values.xlsx"))
	assert.True(t, IsRemote("HTTP://example.com/a.csv"))
	assert.True(t, IsRemote(" ftp://example.com/a.csv"))
	assert.False(t, IsRemote(`C:\data\Work Values.xlsx`))
	assert.False(t, IsRemote("data/http.xlsx"))
}

func TestSourceReader_LocalCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.csv")
	require.NoError(t, os.WriteFile(path, []byte("SOC Code,Achievement\n13-1081,4.5\n"), 0o644))

	rows, err := NewSourceReader(nil, nil).ReadRecords(context.Background(), path, SourceOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"13-1081", "4.5"}, rows[1])
}

func TestSourceReader_LocalXLSX(t *testing.T) {
	data := buildXLSX(t, []string{"Sheet1", "Values"}, map[string][][]string{
		"Sheet1": {{"ignored"}},
		"Values": {{"SOC Code"}, {"13-1081"}},
	})
	path := filepath.Join(t.TempDir(), "Work Values.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	rows, err := NewSourceReader(nil, nil).ReadRecords(context.Background(), path, SourceOptions{Sheet: "Values"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"SOC Code"}, {"13-1081"}}, rows)
}

func TestSourceReader_MissingFile(t *testing.T) {
	_, err := NewSourceReader(nil, nil).ReadRecords(context.Background(), "/nonexistent/values.xlsx", SourceOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source: read file")
}

func TestSourceReader_HTTPZip(t *testing.T) {
	archive := buildZIP(t,
		zipEntry{"db/Abilities.csv", "x\n1\n"},
		zipEntry{"db/Work Values.csv", "O*NET-SOC Code,Element Name\n11-1011.00,Achievement\n"},
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive) //nolint:errcheck
	}))
	defer srv.Close()

	httpF := NewHTTPFetcher(HTTPOptions{Timeout: 5 * time.Second, RetryBackoff: time.Millisecond})
	rows, err := NewSourceReader(httpF, nil).ReadRecords(context.Background(), srv.URL+"/db_29_0_text.zip", SourceOptions{ZIPHint: "work values"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"11-1011.00", "Achievement"}, rows[1])
}

func TestSourceReader_RoutesFTP(t *testing.T) {
	httpF := &stubFetcher{body: "unused"}
	ftpF := &stubFetcher{body: "a,b\n1,2\n"}

	rows, err := NewSourceReader(httpF, ftpF).ReadRecords(context.Background(), "ftp://example.com/pub/values.csv", SourceOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ftp://example.com/pub/values.csv", ftpF.got)
	assert.Empty(t, httpF.got)
	assert.Equal(t, []string{"1", "2"}, rows[1])
}

func TestSourceReader_DownloadError(t *testing.T) {
	httpF := &stubFetcher{err: io.ErrUnexpectedEOF}

	_, _, err := NewSourceReader(httpF, nil).Read(context.Background(), "https://example.com/values.xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source: download")
}

func TestSourceReader_NoFetcherForScheme(t *testing.T) {
	_, _, err := NewSourceReader(nil, nil).Read(context.Background(), "ftp://example.com/values.xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fetcher configured")
}
