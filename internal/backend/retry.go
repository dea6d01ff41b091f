package backend

import (
	"io"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/rtsoliday/sddsTest-sub000/internal/logging"
)

// Defaults for positional seeks on unreliable (network) filesystems.
const (
	DefaultSeekAttempts = 10
	DefaultSeekDelay    = time.Second
)

// sleep is swapped out by tests.
var sleep = time.Sleep

// RetryPolicy bounds how hard SeekRetry tries.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
	Logger   *slog.Logger
	// OnRetry is called after every failed attempt that will be retried.
	OnRetry func()
}

// DefaultRetryPolicy returns 10 attempts one second apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: DefaultSeekAttempts, Delay: DefaultSeekDelay}
}

// SeekRetry seeks s, retrying failed attempts. ErrNotSeekable is a
// capability error and is returned without retrying.
func SeekRetry(s io.Seeker, offset int64, whence int, p RetryPolicy) (int64, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		pos, err := s.Seek(offset, whence)
		if err == nil {
			return pos, nil
		}
		if errors.Is(err, ErrNotSeekable) {
			return pos, err
		}
		lastErr = err
		if i+1 < attempts {
			if p.OnRetry != nil {
				p.OnRetry()
			}
			sleep(p.Delay)
		}
	}

	logging.Or(p.Logger).Warn("seek failed after retries",
		"offset", offset, "whence", whence, "attempts", attempts, "error", lastErr)
	return 0, errors.Wrapf(lastErr, "seek to %d (whence %d) failed after %d attempts", offset, whence, attempts)
}
