package models

// CampaignRecord is one cleaned row of the campaign sheet. Several rows may
// share a CampaignName.
type CampaignRecord struct {
	CampaignName  string  `json:"campaign_name"`
	AmountSpent   float64 `json:"amount_spent"`
	Sales         float64 `json:"sales"`
	Checkouts     float64 `json:"checkouts"`
	Leads         float64 `json:"leads"`
	Clicks        float64 `json:"clicks"`
	CostPerResult float64 `json:"cost_per_result"`
}

// Table is the cleaned, read-only campaign table.
type Table struct {
	Records []CampaignRecord
	Stats   LoadStats
}

// LoadStats describes what the cleaner did to the raw sheet.
type LoadStats struct {
	Source         string         `json:"source"`
	RowsRead       int            `json:"rows_read"`
	RowsKept       int            `json:"rows_kept"`
	Imputed        map[string]int `json:"imputed"`
	CostMean       float64        `json:"cost_mean"`
	SpendAnomalies int            `json:"spend_anomalies"`
	DroppedColumns []string       `json:"dropped_columns"`
}

type SpendTier string

const (
	TierLow    SpendTier = "Low"
	TierMedium SpendTier = "Medium"
	TierHigh   SpendTier = "High"
)

type SummaryStats struct {
	TotalSpent     float64 `json:"total_spent"`
	TotalSales     float64 `json:"total_sales"`
	TotalLeads     float64 `json:"total_leads"`
	TotalCheckouts float64 `json:"total_checkouts"`
}

// CampaignSales is one entry of the sales ranking.
type CampaignSales struct {
	CampaignName string  `json:"campaign_name"`
	TotalSales   float64 `json:"total_sales"`
}

type ZeroResultCampaign struct {
	CampaignName string    `json:"campaign_name"`
	AmountSpent  float64   `json:"amount_spent"`
	Tier         SpendTier `json:"spend_tier"`
}

// Dashboard holds everything derived from one filter selection.
type Dashboard struct {
	Selected    []string
	Summary     SummaryStats
	WithSales   []CampaignRecord
	Ranking     []CampaignSales
	ZeroResults []ZeroResultCampaign
	Records     []CampaignRecord
}
