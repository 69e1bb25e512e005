package cleanup

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sweeper removes orphaned pipeline scratch directories. Each run cleans up
// after itself; the sweeper only catches directories left behind by crashes
// or kills mid-run.
type Sweeper struct {
	tempDir  string
	maxAge   time.Duration
	interval time.Duration
	cancel   context.CancelFunc
}

func NewSweeper(tempDir string, maxAge, interval time.Duration) *Sweeper {
	return &Sweeper{
		tempDir:  tempDir,
		maxAge:   maxAge,
		interval: interval,
	}
}

// Start runs an initial sweep and then sweeps periodically until Stop or
// context cancellation.
func (s *Sweeper) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.sweep()

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-ctx.Done():
				log.Println("[INFO] Scratch sweeper stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Scratch sweeper started (interval: %v, max age: %v)", s.interval, s.maxAge)
}

func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// sweep removes run directories whose last modification is older than maxAge
func (s *Sweeper) sweep() {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[ERROR] Scratch sweep failed: %v", err)
		}
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "run_") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) <= s.maxAge {
			continue
		}

		path := filepath.Join(s.tempDir, entry.Name())
		log.Printf("[DEBUG] Removing orphaned scratch dir: %s", path)
		if err := os.RemoveAll(path); err != nil {
			log.Printf("[WARN] Failed to remove scratch dir %s: %v", path, err)
		}
	}
}
