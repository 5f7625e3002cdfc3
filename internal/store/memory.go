package store

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/AngelCh415/campaign-dash/internal/models"
)

// TableLoader produces the cleaned campaign table.
type TableLoader interface {
	Load(ctx context.Context) (models.Table, error)
}

// Snapshot holds the process-wide campaign table. The first call to Table
// loads it; every later call sees the same result, including a failure.
// The table is never mutated after load, so reads need no locking. The load
// keeps the caller's values but not its cancellation, so an abandoned request
// cannot fail the snapshot for good.
type Snapshot struct {
	loader TableLoader
	once   sync.Once
	tbl    models.Table
	names  []string
	err    error
	done   chan struct{}
}

func NewSnapshot(l TableLoader) *Snapshot {
	return &Snapshot{loader: l, done: make(chan struct{})}
}

func (s *Snapshot) Table(ctx context.Context) (models.Table, error) {
	s.once.Do(func() {
		defer close(s.done)
		s.tbl, s.err = s.loader.Load(context.WithoutCancel(ctx))
		if s.err == nil {
			s.names = lo.Uniq(lo.Map(s.tbl.Records, func(r models.CampaignRecord, _ int) string { return r.CampaignName }))
		}
	})
	if s.err != nil {
		return models.Table{}, s.err
	}
	return models.Table{Records: slices.Clone(s.tbl.Records), Stats: s.tbl.Stats}, nil
}

// Names returns the distinct campaign names in first-appearance order.
func (s *Snapshot) Names(ctx context.Context) ([]string, error) {
	if _, err := s.Table(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.names), nil
}

// Ready reports whether the table has been loaded successfully. It never
// triggers a load.
func (s *Snapshot) Ready() bool {
	select {
	case <-s.done:
		return s.err == nil
	default:
		return false
	}
}
