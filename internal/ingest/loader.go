package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/AngelCh415/campaign-dash/internal/config"
	"github.com/AngelCh415/campaign-dash/internal/models"
)

// Column keys used in LoadStats.Imputed.
const (
	ColAmountSpent   = "amount_spent"
	ColSales         = "sales"
	ColCheckouts     = "checkouts"
	ColLeads         = "leads"
	ColClicks        = "clicks"
	ColCostPerResult = "cost_per_result"
)

var placeholderRe = regexp.MustCompile(`^unnamed: ?\d+$`)

// LoadObserver receives the outcome of every load.
type LoadObserver interface {
	LoadSucceeded(stats models.LoadStats, took time.Duration)
	LoadFailed(kind string)
}

type Loader struct {
	c      HTTPClient
	log    *slog.Logger
	obs    LoadObserver
	source string
	sheet  string
}

func NewLoader(c HTTPClient, log *slog.Logger, cfg config.Config, obs LoadObserver) *Loader {
	return &Loader{c: c, log: log, obs: obs, source: cfg.DataSource, sheet: cfg.DataSheet}
}

func (l *Loader) Source() string { return l.source }

// Load reads the configured source and returns the cleaned table. Every
// failure is a *DataLoadError.
func (l *Loader) Load(ctx context.Context) (models.Table, error) {
	start := time.Now()
	raw, err := l.read(ctx)
	var tbl models.Table
	if err == nil {
		tbl, err = l.clean(raw)
	}
	if err != nil {
		var dle *DataLoadError
		if !errors.As(err, &dle) {
			dle = loadErr(KindUnreadable, l.source, err)
		}
		if l.obs != nil {
			l.obs.LoadFailed(string(dle.Kind))
		}
		l.log.Error("load failed", slog.String("source", l.source), slog.String("kind", string(dle.Kind)), slog.String("err", dle.Err.Error()))
		return models.Table{}, dle
	}
	took := time.Since(start)
	if l.obs != nil {
		l.obs.LoadSucceeded(tbl.Stats, took)
	}
	l.log.Info("load complete",
		slog.String("source", l.source),
		slog.Int("rows", tbl.Stats.RowsKept),
		slog.Float64("cost_mean", tbl.Stats.CostMean),
		slog.Int("spend_anomalies", tbl.Stats.SpendAnomalies),
		slog.Duration("took", took))
	return tbl, nil
}

type columnIndex struct {
	name, spent, sales, checkouts, leads, clicks, cost int
}

func normHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// mapColumns locates the known columns; -1 marks an absent one. The first
// matching header wins.
func mapColumns(headers []string) (columnIndex, []string) {
	idx := columnIndex{-1, -1, -1, -1, -1, -1, -1}
	var dropped []string
	set := func(p *int, i int) {
		if *p < 0 {
			*p = i
		}
	}
	for i, h := range headers {
		n := normHeader(h)
		switch {
		case n == "" || placeholderRe.MatchString(n):
			dropped = append(dropped, fmt.Sprintf("#%d %q", i, h))
		case n == "campaign name":
			set(&idx.name, i)
		case strings.HasPrefix(n, "amount spent"):
			set(&idx.spent, i)
		case n == "sales":
			set(&idx.sales, i)
		case n == "checkouts":
			set(&idx.checkouts, i)
		case n == "leads":
			set(&idx.leads, i)
		case n == "clicks":
			set(&idx.clicks, i)
		case n == "cost per results", n == "cost per result":
			set(&idx.cost, i)
		}
	}
	return idx, dropped
}

func (l *Loader) clean(raw rawSheet) (models.Table, error) {
	if len(raw.headers) == 0 {
		return models.Table{}, loadErr(KindMissingColumn, l.source, errors.New("sheet has no header row"))
	}
	idx, dropped := mapColumns(raw.headers)
	if idx.name < 0 {
		return models.Table{}, loadErr(KindMissingColumn, l.source, errors.New(`required column "Campaign name" not found`))
	}
	if idx.spent < 0 {
		return models.Table{}, loadErr(KindMissingColumn, l.source, errors.New(`required column "Amount spent" not found`))
	}
	for _, d := range dropped {
		l.log.Debug("dropping placeholder column", slog.String("column", d))
	}

	stats := models.LoadStats{
		Source:         l.source,
		Imputed:        map[string]int{},
		DroppedColumns: dropped,
	}
	recs := make([]models.CampaignRecord, 0, len(raw.rows))
	var costSum float64
	var costN int
	var costMissing []int

	count := func(row []string, col int, key string) float64 {
		v, ok := parseNumber(cell(row, col))
		if !ok {
			stats.Imputed[key]++
			return 0
		}
		return v
	}

	for i, row := range raw.rows {
		if lo.EveryBy(row, func(c string) bool { return strings.TrimSpace(c) == "" }) {
			continue
		}
		stats.RowsRead++
		name := strings.TrimSpace(cell(row, idx.name))
		if name == "" {
			l.log.Warn("dropping row without campaign name", slog.Int("row", i+2))
			continue
		}
		rec := models.CampaignRecord{
			CampaignName: name,
			AmountSpent:  count(row, idx.spent, ColAmountSpent),
			Sales:        count(row, idx.sales, ColSales),
			Checkouts:    count(row, idx.checkouts, ColCheckouts),
			Leads:        count(row, idx.leads, ColLeads),
			Clicks:       count(row, idx.clicks, ColClicks),
		}
		if rec.AmountSpent < 0 {
			stats.SpendAnomalies++
			l.log.Warn("negative amount spent", slog.String("campaign", name), slog.Float64("amount_spent", rec.AmountSpent), slog.Int("row", i+2))
		}
		if v, ok := parseNumber(cell(row, idx.cost)); ok {
			rec.CostPerResult = v
			costSum += v
			costN++
		} else {
			costMissing = append(costMissing, len(recs))
		}
		recs = append(recs, rec)
	}

	// the mean covers every retained row and is fixed before any filtering
	if costN > 0 {
		stats.CostMean = costSum / float64(costN)
	}
	for _, i := range costMissing {
		recs[i].CostPerResult = stats.CostMean
	}
	stats.Imputed[ColCostPerResult] = len(costMissing)
	if n := stats.Imputed[ColAmountSpent]; n > 0 {
		stats.SpendAnomalies += n
		l.log.Warn("empty amount spent read as zero", slog.Int("rows", n))
	}
	stats.RowsKept = len(recs)
	return models.Table{Records: recs, Stats: stats}, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseNumber reads a numeric cell; thousands separators are accepted.
// Empty and non-numeric cells report ok=false.
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
