package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/campaign-dash/internal/models"
)

// scenario: one zero-result campaign on each side of the spend bands and one
// that converts.
var scenario = []models.CampaignRecord{
	{CampaignName: "A", AmountSpent: 1000},
	{CampaignName: "B", AmountSpent: 6000, Sales: 5, Leads: 2, Checkouts: 1},
	{CampaignName: "C", AmountSpent: 25000},
}

var mixed = []models.CampaignRecord{
	{CampaignName: "Retarget", AmountSpent: 4000, Sales: 2, CostPerResult: 150},
	{CampaignName: "Lookalike", AmountSpent: 9000, Sales: 4, Leads: 3, CostPerResult: 90},
	{CampaignName: "Brand", AmountSpent: 500, Leads: 1, CostPerResult: 40},
	{CampaignName: "Retarget", AmountSpent: 1000, Sales: 2, CostPerResult: 120},
	{CampaignName: "Cold", AmountSpent: 21000, CostPerResult: 100},
	{CampaignName: "Video", AmountSpent: 3000, Sales: 4, CostPerResult: 75},
}

func TestScenario(t *testing.T) {
	rows := Filter(scenario, AllOf(scenario))

	assert.Equal(t, 32000.0, Summarize(rows).TotalSpent)
	assert.Equal(t, []models.CampaignSales{{CampaignName: "B", TotalSales: 5}}, RankBySales(rows))
	assert.Equal(t, []models.ZeroResultCampaign{
		{CampaignName: "A", AmountSpent: 1000, Tier: models.TierLow},
		{CampaignName: "C", AmountSpent: 25000, Tier: models.TierHigh},
	}, TierZeroResults(FindZeroResultCampaigns(rows)))
}

func TestFilter(t *testing.T) {
	t.Run("all names keeps the table", func(t *testing.T) {
		assert.Equal(t, mixed, Filter(mixed, AllOf(mixed)))
	})
	t.Run("members only, order kept", func(t *testing.T) {
		sel := NewSelection("Video", "Retarget")
		got := Filter(mixed, sel)
		require.Len(t, got, 3)
		for _, r := range got {
			assert.True(t, sel.Contains(r.CampaignName))
		}
		assert.Equal(t, []string{"Retarget", "Retarget", "Video"}, []string{got[0].CampaignName, got[1].CampaignName, got[2].CampaignName})
	})
	t.Run("empty selection", func(t *testing.T) {
		assert.Empty(t, Filter(mixed, NewSelection()))
		assert.Empty(t, Filter(mixed, Selection{}))
	})
	t.Run("unmatched names", func(t *testing.T) {
		assert.Empty(t, Filter(mixed, NewSelection("Nope")))
	})
}

func TestSelection(t *testing.T) {
	sel := NewSelection("b", "a", "b")
	assert.Equal(t, 2, sel.Len())
	assert.Equal(t, []string{"b", "a"}, sel.Names())
	assert.Equal(t, []string{"Retarget", "Lookalike", "Brand", "Cold", "Video"}, AllOf(mixed).Names())
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, models.SummaryStats{TotalSpent: 38500, TotalSales: 12, TotalLeads: 4}, Summarize(mixed))
	assert.Equal(t, models.SummaryStats{}, Summarize(nil))
}

func TestRankBySales(t *testing.T) {
	got := RankBySales(mixed)
	// all three tie on 4; first appearance decides
	assert.Equal(t, []models.CampaignSales{
		{CampaignName: "Retarget", TotalSales: 4},
		{CampaignName: "Lookalike", TotalSales: 4},
		{CampaignName: "Video", TotalSales: 4},
	}, got)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].TotalSales, got[i].TotalSales)
	}
	var sum float64
	for _, c := range got {
		assert.Greater(t, c.TotalSales, 0.0)
		sum += c.TotalSales
	}
	assert.Equal(t, Summarize(WithSales(mixed)).TotalSales, sum)
	assert.Empty(t, RankBySales(scenario[:1]))
}

func TestRankBySalesOrdersDescending(t *testing.T) {
	rows := []models.CampaignRecord{
		{CampaignName: "x", Sales: 1},
		{CampaignName: "y", Sales: 7},
		{CampaignName: "z", Sales: 3},
		{CampaignName: "x", Sales: 9},
	}
	assert.Equal(t, []models.CampaignSales{
		{CampaignName: "x", TotalSales: 10},
		{CampaignName: "y", TotalSales: 7},
		{CampaignName: "z", TotalSales: 3},
	}, RankBySales(rows))
}

func TestFindZeroResultCampaigns(t *testing.T) {
	got := FindZeroResultCampaigns(mixed)
	assert.Equal(t, []models.ZeroResultCampaign{{CampaignName: "Cold", AmountSpent: 21000}}, got)

	var zero int
	for _, r := range mixed {
		if r.Sales == 0 && r.Leads == 0 && r.Checkouts == 0 {
			zero++
		}
	}
	assert.Len(t, got, zero)
	assert.Empty(t, FindZeroResultCampaigns(nil))
}

func TestClassifySpendTier(t *testing.T) {
	tests := []struct {
		spent float64
		want  models.SpendTier
	}{
		{0, models.TierLow},
		{-50, models.TierLow},
		{4999.99, models.TierLow},
		{5000, models.TierMedium},
		{12000, models.TierMedium},
		{20000, models.TierMedium},
		{20000.01, models.TierHigh},
		{1e9, models.TierHigh},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ClassifySpendTier(tc.spent), "spent=%v", tc.spent)
	}
}

type staticTable struct {
	tbl models.Table
	err error
}

func (s staticTable) Table(context.Context) (models.Table, error) { return s.tbl, s.err }

type builds struct{ calls []string }

func (b *builds) DashboardBuilt(ok bool, selected, rows int) {
	switch {
	case !ok:
		b.calls = append(b.calls, "error")
	case selected == 0:
		b.calls = append(b.calls, "empty")
	default:
		b.calls = append(b.calls, "ok")
	}
}

func TestServiceDashboard(t *testing.T) {
	obs := &builds{}
	svc := NewService(staticTable{tbl: models.Table{Records: scenario}}, obs)

	d, err := svc.Dashboard(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, d.Selected)
	assert.Equal(t, models.SummaryStats{TotalSpent: 32000, TotalSales: 5, TotalLeads: 2, TotalCheckouts: 1}, d.Summary)
	assert.Equal(t, scenario[1:2], d.WithSales)
	assert.Len(t, d.ZeroResults, 2)
	assert.Equal(t, scenario, d.Records)

	sel := NewSelection("C")
	d, err = svc.Dashboard(context.Background(), &sel)
	require.NoError(t, err)
	assert.Equal(t, 25000.0, d.Summary.TotalSpent)
	assert.Empty(t, d.Ranking)
	assert.Equal(t, []models.ZeroResultCampaign{{CampaignName: "C", AmountSpent: 25000, Tier: models.TierHigh}}, d.ZeroResults)

	empty := NewSelection()
	d, err = svc.Dashboard(context.Background(), &empty)
	require.NoError(t, err)
	assert.Equal(t, models.SummaryStats{}, d.Summary)
	assert.Empty(t, d.Records)
	assert.Empty(t, d.Ranking)
	assert.Empty(t, d.ZeroResults)

	assert.Equal(t, []string{"ok", "ok", "empty"}, obs.calls)
}

func TestServiceDashboardLoadError(t *testing.T) {
	obs := &builds{}
	boom := errors.New("boom")
	_, err := NewService(staticTable{err: boom}, obs).Dashboard(context.Background(), nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"error"}, obs.calls)
}
