// Package present reshapes computed dashboard data into the plain structures
// a chart/table renderer consumes. It performs no aggregation, filtering or
// classification of its own.
package present

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AngelCh415/campaign-dash/internal/models"
)

const Title = "1acre Meta Statistics"

// ScatterSection heads the cost-versus-sales chart.
const ScatterSection = "Persona Sales Matrix"

var printer = message.NewPrinter(language.English)

// tierColors is the font colour of each spend tier in the zero-result table.
var tierColors = map[models.SpendTier]string{
	models.TierLow:    "green",
	models.TierMedium: "yellow",
	models.TierHigh:   "red",
}

type Tile struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

type ScatterPoint struct {
	CostPerResult float64 `json:"cost_per_result"`
	Sales         float64 `json:"sales"`
	Campaign      string  `json:"campaign_name"`
}

type BarPoint struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type ZeroResultRow struct {
	Campaign    string  `json:"campaign_name"`
	AmountSpent float64 `json:"amount_spent"`
	Tier        string  `json:"spend_tier"`
	Color       string  `json:"color"`
}

type DetailRow struct {
	Campaign      string  `json:"campaign_name"`
	AmountSpent   float64 `json:"amount_spent"`
	CostPerResult float64 `json:"cost_per_result"`
	Sales         float64 `json:"sales"`
	Leads         float64 `json:"leads"`
	Checkouts     float64 `json:"checkouts"`
}

type Chart[T any] struct {
	Section string `json:"section,omitempty"`
	Title   string `json:"title"`
	XAxis   string `json:"x_axis"`
	YAxis   string `json:"y_axis"`
	Points  []T    `json:"points"`
}

type Table[T any] struct {
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    []T      `json:"rows"`
}

// View is everything one page render needs.
type View struct {
	Title           string               `json:"title"`
	Selected        []string             `json:"selected"`
	Tiles           []Tile               `json:"tiles"`
	Scatter         Chart[ScatterPoint]  `json:"scatter"`
	SalesByCampaign Chart[BarPoint]      `json:"sales_by_campaign"`
	ZeroResults     Table[ZeroResultRow] `json:"zero_results"`
	Details         Table[DetailRow]     `json:"details"`
	SpendByCampaign Chart[BarPoint]      `json:"spend_by_campaign"`
}

func Build(d models.Dashboard) View {
	return View{
		Title:    Title,
		Selected: nonNil(d.Selected),
		Tiles:    Tiles(d.Summary),
		Scatter: Chart[ScatterPoint]{
			Section: ScatterSection,
			Title:   "Cost per Result vs. Number of Sales",
			XAxis:   "Cost per Result (INR)",
			YAxis:   "Number of Sales",
			Points:  Scatter(d.WithSales),
		},
		SalesByCampaign: Chart[BarPoint]{
			Title:  "Sales by Campaign",
			XAxis:  "Campaign Name",
			YAxis:  "Number of Sales",
			Points: SalesBars(d.Ranking),
		},
		ZeroResults: Table[ZeroResultRow]{
			Title:   "Campaigns with 0 Sales",
			Columns: []string{"Campaign Name", "Total Spent (INR)", "Spend Tier"},
			Rows:    ZeroResultRows(d.ZeroResults),
		},
		Details: Table[DetailRow]{
			Title:   "Cost Analysis of All Campaigns",
			Columns: detailColumns,
			Rows:    DetailRows(d.Records),
		},
		SpendByCampaign: Chart[BarPoint]{
			Title:  "Total Amount Spent by Campaign",
			XAxis:  "Campaign Name",
			YAxis:  "Amount Spent (INR)",
			Points: SpendBars(d.Records),
		},
	}
}

func Tiles(s models.SummaryStats) []Tile {
	return []Tile{
		{Key: "total_spent", Label: "Total Spent (INR)", Value: s.TotalSpent, Display: printer.Sprintf("%.2f", s.TotalSpent)},
		{Key: "total_sales", Label: "Total Sales", Value: s.TotalSales, Display: printer.Sprintf("%.0f", s.TotalSales)},
		{Key: "total_leads", Label: "Total Leads", Value: s.TotalLeads, Display: printer.Sprintf("%.0f", s.TotalLeads)},
		{Key: "total_checkouts", Label: "Total Checkouts", Value: s.TotalCheckouts, Display: printer.Sprintf("%.0f", s.TotalCheckouts)},
	}
}

func Scatter(records []models.CampaignRecord) []ScatterPoint {
	out := make([]ScatterPoint, 0, len(records))
	for _, r := range records {
		out = append(out, ScatterPoint{CostPerResult: r.CostPerResult, Sales: r.Sales, Campaign: r.CampaignName})
	}
	return out
}

func SalesBars(ranking []models.CampaignSales) []BarPoint {
	out := make([]BarPoint, 0, len(ranking))
	for _, c := range ranking {
		out = append(out, BarPoint{Category: c.CampaignName, Value: c.TotalSales})
	}
	return out
}

func ZeroResultRows(zs []models.ZeroResultCampaign) []ZeroResultRow {
	out := make([]ZeroResultRow, 0, len(zs))
	for _, z := range zs {
		out = append(out, ZeroResultRow{
			Campaign:    z.CampaignName,
			AmountSpent: z.AmountSpent,
			Tier:        string(z.Tier),
			Color:       tierColors[z.Tier],
		})
	}
	return out
}

func DetailRows(records []models.CampaignRecord) []DetailRow {
	out := make([]DetailRow, 0, len(records))
	for _, r := range records {
		out = append(out, DetailRow{
			Campaign:      r.CampaignName,
			AmountSpent:   r.AmountSpent,
			CostPerResult: r.CostPerResult,
			Sales:         r.Sales,
			Leads:         r.Leads,
			Checkouts:     r.Checkouts,
		})
	}
	return out
}

func SpendBars(records []models.CampaignRecord) []BarPoint {
	out := make([]BarPoint, 0, len(records))
	for _, r := range records {
		out = append(out, BarPoint{Category: r.CampaignName, Value: r.AmountSpent})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
