package analytics

import (
	"context"

	"github.com/AngelCh415/campaign-dash/internal/models"
)

// TableSource hands out the immutable campaign table.
type TableSource interface {
	Table(ctx context.Context) (models.Table, error)
}

// BuildObserver is told the outcome of every dashboard build.
type BuildObserver interface {
	DashboardBuilt(ok bool, selected, rows int)
}

type Service struct {
	src TableSource
	obs BuildObserver
}

func NewService(src TableSource, obs BuildObserver) *Service { return &Service{src: src, obs: obs} }

// Dashboard recomputes every derived view for one selection. A nil selection
// means every campaign in the table.
func (s *Service) Dashboard(ctx context.Context, sel *Selection) (models.Dashboard, error) {
	tbl, err := s.src.Table(ctx)
	if err != nil {
		s.observe(false, 0, 0)
		return models.Dashboard{}, err
	}
	chosen := AllOf(tbl.Records)
	if sel != nil {
		chosen = *sel
	}
	rows := Filter(tbl.Records, chosen)
	d := models.Dashboard{
		Selected:    chosen.Names(),
		Summary:     Summarize(rows),
		WithSales:   WithSales(rows),
		Ranking:     RankBySales(rows),
		ZeroResults: TierZeroResults(FindZeroResultCampaigns(rows)),
		Records:     rows,
	}
	s.observe(true, chosen.Len(), len(rows))
	return d, nil
}

func (s *Service) observe(ok bool, selected, rows int) {
	if s.obs != nil {
		s.obs.DashboardBuilt(ok, selected, rows)
	}
}
