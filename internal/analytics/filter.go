package analytics

import (
	"github.com/samber/lo"

	"github.com/AngelCh415/campaign-dash/internal/models"
)

// Selection is a set of campaign names. The zero value selects nothing.
type Selection struct {
	names map[string]struct{}
	order []string
}

func NewSelection(names ...string) Selection {
	order := lo.Uniq(names)
	return Selection{
		names: lo.SliceToMap(order, func(n string) (string, struct{}) { return n, struct{}{} }),
		order: order,
	}
}

// AllOf selects every distinct campaign name in records.
func AllOf(records []models.CampaignRecord) Selection {
	return NewSelection(lo.Map(records, func(r models.CampaignRecord, _ int) string { return r.CampaignName })...)
}

func (s Selection) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

func (s Selection) Len() int { return len(s.order) }

// Names returns the selected names in the order they were given.
func (s Selection) Names() []string { return append([]string{}, s.order...) }

// Filter keeps the records whose campaign is selected, preserving order.
func Filter(records []models.CampaignRecord, sel Selection) []models.CampaignRecord {
	return lo.Filter(records, func(r models.CampaignRecord, _ int) bool { return sel.Contains(r.CampaignName) })
}
