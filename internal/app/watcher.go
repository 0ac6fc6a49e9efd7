package app

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/five82/tabula/internal/csvio"
	"github.com/five82/tabula/internal/workbench"
)

const (
	defaultWatchInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// calculateBackoff returns the next poll delay after consecutive stat
// failures: the interval doubled per failure, capped at maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	d := interval
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

// StartWatcher polls path's modification time and sends a fresh parse
// result each time the file changes. The first observation is the
// baseline and is not sent. The returned channel is closed when ctx is
// cancelled.
func StartWatcher(ctx context.Context, path string, interval time.Duration, opts csvio.Options) <-chan csvio.Result {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	out := make(chan csvio.Result, 1)

	go func() {
		defer close(out)

		last, _ := modTime(path)
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			mod, err := modTime(path)
			switch {
			case err != nil:
				failures++
				if failures == 1 {
					log.Printf("watch: stat %s failed: %v", path, err)
				}
			case !mod.Equal(last):
				failures = 0
				last = mod
				res := workbench.Load(ctx, path, opts)
				log.Printf("watch: %s changed, %s", path, res.Summary())
				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			default:
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
	return out
}

func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
