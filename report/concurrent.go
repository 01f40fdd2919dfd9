package report

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/pitwall/openf1"
)

// fetchJob is one fetch of a fan-out. Its records land in dst, which no other
// job writes to.
type fetchJob struct {
	resource string
	filters  openf1.Filters
	dst      *[]openf1.Record
}

// fetchAll runs every job concurrently and waits for all of them. The first
// failure cancels the jobs still in flight and is returned.
func (s *Summarizer) fetchAll(ctx context.Context, jobs []fetchJob) error {
	if len(jobs) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	for _, job := range jobs {
		g.Go(func() error {
			records, err := s.fetcher.Fetch(ctx, job.resource, job.filters)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", job.resource, err)
			}
			*job.dst = records
			return nil
		})
	}

	return g.Wait()
}
