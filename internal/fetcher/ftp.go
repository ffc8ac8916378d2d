package fetcher

import (
	"context"
	"io"
	"net"
	"net/url"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	anonymousUser     = "anonymous"
	anonymousPassword = "anonymous@"
)

// FTPOptions configures the FTP fetcher.
type FTPOptions struct {
	Timeout     time.Duration
	DisableEPSV bool // some older servers only answer PASV
}

// FTPFetcher downloads files over FTP. Credentials come from the URL's
// userinfo; without it the login is anonymous.
type FTPFetcher struct {
	opts FTPOptions
}

// NewFTPFetcher creates a new FTPFetcher with the given options.
func NewFTPFetcher(opts FTPOptions) *FTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &FTPFetcher{opts: opts}
}

// ftpTarget is a parsed ftp:// URL.
type ftpTarget struct {
	addr     string // host:port, port 21 when omitted
	path     string
	user     string
	password string
}

func parseFTPURL(rawURL string) (ftpTarget, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ftpTarget{}, eris.Wrap(err, "parse ftp url")
	}
	if u.Scheme != "ftp" {
		return ftpTarget{}, eris.Errorf("expected ftp scheme, got %q", u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		return ftpTarget{}, eris.New("empty path in ftp url")
	}

	t := ftpTarget{addr: u.Host, path: u.Path, user: anonymousUser, password: anonymousPassword}
	if _, _, splitErr := net.SplitHostPort(t.addr); splitErr != nil {
		t.addr = net.JoinHostPort(u.Host, "21")
	}
	if u.User != nil && u.User.Username() != "" {
		t.user = u.User.Username()
		t.password, _ = u.User.Password()
	}
	return t, nil
}

// ftpFile is an open retrieval. Close ends the transfer and the session.
type ftpFile struct {
	*ftp.Response
	conn *ftp.ServerConn
}

func (f *ftpFile) Close() error {
	respErr := f.Response.Close()
	quitErr := f.conn.Quit()
	if respErr != nil {
		return eris.Wrap(respErr, "close ftp response")
	}
	if quitErr != nil {
		return eris.Wrap(quitErr, "quit ftp connection")
	}
	return nil
}

// Download logs in and returns a reader over the file at ftpURL. The caller
// must close it to release the connection.
func (f *FTPFetcher) Download(ctx context.Context, ftpURL string) (io.ReadCloser, error) {
	target, err := parseFTPURL(ftpURL)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("ftp: connecting",
		zap.String("addr", target.addr),
		zap.String("path", target.path),
		zap.Bool("anonymous", target.user == anonymousUser),
	)

	dialOpts := []ftp.DialOption{ftp.DialWithTimeout(f.opts.Timeout), ftp.DialWithContext(ctx)}
	if f.opts.DisableEPSV {
		dialOpts = append(dialOpts, ftp.DialWithDisabledEPSV(true))
	}
	conn, err := ftp.Dial(target.addr, dialOpts...)
	if err != nil {
		return nil, eris.Wrapf(err, "ftp dial %s", target.addr)
	}

	if err := conn.Login(target.user, target.password); err != nil {
		_ = conn.Quit()
		return nil, eris.Wrapf(err, "ftp login as %s", target.user)
	}

	resp, err := conn.Retr(target.path)
	if err != nil {
		_ = conn.Quit()
		return nil, eris.Wrapf(err, "ftp retrieve %s", target.path)
	}
	return &ftpFile{Response: resp, conn: conn}, nil
}
