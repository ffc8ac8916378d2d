package main

import (
	"time"

	"github.com/sells-group/workvalues-cli/internal/config"
	"github.com/sells-group/workvalues-cli/internal/fetcher"
)

// newSourceReader wires the HTTP and FTP fetchers from configuration.
func newSourceReader(c *config.Config) *fetcher.SourceReader {
	httpF := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  c.HTTP.UserAgent,
		Timeout:    time.Duration(c.HTTP.TimeoutSecs) * time.Second,
		MaxRetries: c.HTTP.MaxRetries,
	})
	ftpF := fetcher.NewFTPFetcher(fetcher.FTPOptions{
		Timeout:     time.Duration(c.FTP.TimeoutSecs) * time.Second,
		DisableEPSV: c.FTP.DisableEPSV,
	})
	return fetcher.NewSourceReader(httpF, ftpF)
}
