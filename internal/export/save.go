package export

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultMaxAttempts is how many alternate names SaveWithRetry tries.
const DefaultMaxAttempts = 10

// ErrOutputLocked means every candidate output path was not writable.
var ErrOutputLocked = eris.New("could not write output after multiple attempts (file locked?)")

// SaveWithRetry calls save with path. While save fails with a permission
// error it retries with "base (N).ext" for N = 1..maxAttempts. It returns the
// path that was written. Other errors are returned immediately. save must
// return permission failures unwrapped, as os.OpenFile does.
func SaveWithRetry(path string, maxAttempts int, save func(string) error) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	candidate := path
	for attempt := 0; ; attempt++ {
		err := save(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrPermission) {
			return "", eris.Wrapf(err, "export: save %s", candidate)
		}
		if attempt >= maxAttempts {
			return "", eris.Wrapf(ErrOutputLocked, "last tried %s", candidate)
		}
		zap.L().Warn("export: output not writable, trying another name",
			zap.String("path", candidate),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		candidate = fmt.Sprintf("%s (%d)%s", base, attempt+1, ext)
	}
}
