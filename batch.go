package treads

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond"
	"go.uber.org/zap"
)

// ProcessingBatch runs Processing for every source on a worker pool.
// Manifests keep the order of sources; the first failure stops the batch.
func ProcessingBatch(ctx context.Context, sources []string, c *Config) ([]*Manifest, error) {
	st := time.Now()
	log := c.logger()
	log.Info("[>] Processing batch", zap.Int("sources", len(sources)))
	defer func() {
		log.Info("[<] Processing batch", zap.Duration("at", time.Since(st)))
	}()

	if len(sources) == 0 {
		return []*Manifest{}, nil
	}

	workers := c.MaxCpuCount
	if workers <= 0 {
		workers = 1
	}

	pool := pond.New(workers, len(sources), pond.MinWorkers(workers))
	defer pool.StopAndWait()

	manifests := make([]*Manifest, len(sources))
	group, gctx := pool.GroupContext(ctx)
	for idx, source := range sources {
		group.Submit(func() (err error) {
			// A panicking task must still fail the group.
			defer func() {
				if p := recover(); p != nil {
					log.Error("Task panicked", zap.String("source", source), zap.Any("panic", p))
					err = fmt.Errorf("%s: panic: %v", source, p)
				}
			}()

			manifest, err := Processing(gctx, source, c)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			manifests[idx] = manifest
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return manifests, nil
}
