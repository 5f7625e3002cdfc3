package present

import (
	"encoding/csv"
	"io"
	"strconv"
)

var detailColumns = []string{"Campaign name", "Amount spent (INR)", "Cost per results", "Sales", "Leads", "Checkouts"}

// WriteDetailsCSV writes the cost-analysis table with the sheet's own headers.
func WriteDetailsCSV(w io.Writer, rows []DetailRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(detailColumns); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{r.Campaign, num(r.AmountSpent), num(r.CostPerResult), num(r.Sales), num(r.Leads), num(r.Checkouts)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
