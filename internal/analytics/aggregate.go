package analytics

import (
	"sort"

	"github.com/samber/lo"

	"github.com/AngelCh415/campaign-dash/internal/models"
)

func Summarize(records []models.CampaignRecord) models.SummaryStats {
	var s models.SummaryStats
	for _, r := range records {
		s.TotalSpent += r.AmountSpent
		s.TotalSales += r.Sales
		s.TotalLeads += r.Leads
		s.TotalCheckouts += r.Checkouts
	}
	return s
}

// WithSales keeps the records with at least one sale.
func WithSales(records []models.CampaignRecord) []models.CampaignRecord {
	return lo.Filter(records, func(r models.CampaignRecord, _ int) bool { return r.Sales > 0 })
}

// RankBySales sums sales per campaign over the records with sales and sorts
// the totals descending. Equal totals keep first-appearance order.
func RankBySales(records []models.CampaignRecord) []models.CampaignSales {
	pos := map[string]int{}
	out := []models.CampaignSales{}
	for _, r := range WithSales(records) {
		i, ok := pos[r.CampaignName]
		if !ok {
			i = len(out)
			pos[r.CampaignName] = i
			out = append(out, models.CampaignSales{CampaignName: r.CampaignName})
		}
		out[i].TotalSales += r.Sales
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSales > out[j].TotalSales })
	return out
}

// FindZeroResultCampaigns returns the records without sales, leads or
// checkouts, projected to name and spend. Tier is left empty.
func FindZeroResultCampaigns(records []models.CampaignRecord) []models.ZeroResultCampaign {
	out := []models.ZeroResultCampaign{}
	for _, r := range records {
		if r.Sales == 0 && r.Leads == 0 && r.Checkouts == 0 {
			out = append(out, models.ZeroResultCampaign{CampaignName: r.CampaignName, AmountSpent: r.AmountSpent})
		}
	}
	return out
}
