package assets

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"harvestmap/pkg/logger"
)

// Default batching, matching the viewer tunables
const (
	DefaultBatchSize = 15
	DefaultBatchGap  = 50 * time.Millisecond
)

// Preloader decodes textures into a cache in batches, pausing between
// batches so the render loop keeps its frame budget.
type Preloader struct {
	Cache     *Cache
	BatchSize int
	BatchGap  time.Duration
}

// NewPreloader returns a preloader filling cache
func NewPreloader(cache *Cache, batchSize int, gap time.Duration) *Preloader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Preloader{Cache: cache, BatchSize: batchSize, BatchGap: gap}
}

// Start preloads priority first and then the rest of all in a background
// goroutine. The returned channel is closed when it is done.
func (p *Preloader) Start(ctx context.Context, priority, all []string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		n, err := p.Run(ctx, priority, all)
		entry := logger.Log.WithField("textures", n)
		if err != nil {
			entry.WithError(err).Warn("Texture preload stopped")
			return
		}
		entry.Info("Textures preloaded")
	}()
	return done
}

// Run preloads priority and then every path of all not loaded yet. It
// returns how many textures are in the cache afterwards. Decode failures
// are logged and skipped; only a cancelled ctx is returned as an error.
func (p *Preloader) Run(ctx context.Context, priority, all []string) (int, error) {
	if err := p.Load(ctx, priority); err != nil {
		return p.Cache.Len(), err
	}
	logger.Log.WithField("textures", len(priority)).Debug("Scene textures loaded")

	var rest []string
	for _, path := range all {
		if !p.Cache.Loaded(path) && !p.Cache.Failed(path) {
			rest = append(rest, path)
		}
	}
	err := p.Load(ctx, rest)
	return p.Cache.Len(), err
}

// Load decodes paths in batches of BatchSize, each batch concurrently
func (p *Preloader) Load(ctx context.Context, paths []string) error {
	size := p.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	for start := 0; start < len(paths); start += size {
		if start > 0 && p.BatchGap > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.BatchGap):
			}
		}

		batch := paths[start:min(start+size, len(paths))]
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(size)
		for _, path := range batch {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := p.Cache.Load(path); err != nil {
					logger.Log.WithFields(logrus.Fields{
						"path": path,
					}).WithError(err).Debug("Texture not loaded")
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}
