package ingest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

const sqliteScheme = "sqlite://"

// rawSheet is a sheet exactly as read: a header row and string cells.
// Rows may be shorter than the header when trailing cells are empty.
type rawSheet struct {
	headers []string
	rows    [][]string
}

func (l *Loader) read(ctx context.Context) (rawSheet, error) {
	src := l.source
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		body, err := fetch(ctx, l.c, src)
		if err != nil {
			return rawSheet{}, loadErr(KindUnreadable, src, err)
		}
		ext := ""
		if u, err := url.Parse(src); err == nil {
			ext = strings.ToLower(path.Ext(u.Path))
		}
		if ext == ".csv" {
			return readCSV(bytes.NewReader(body), src)
		}
		f, err := excelize.OpenReader(bytes.NewReader(body))
		if err != nil {
			return rawSheet{}, loadErr(KindUnreadable, src, err)
		}
		return readXLSX(f, src, l.sheet)
	case strings.HasPrefix(src, sqliteScheme):
		return readSQLite(ctx, strings.TrimPrefix(src, sqliteScheme), src, l.sheet)
	}

	if strings.ToLower(filepath.Ext(src)) == ".csv" {
		fh, err := os.Open(src)
		if err != nil {
			return rawSheet{}, loadErr(KindUnreadable, src, err)
		}
		defer fh.Close()
		return readCSV(fh, src)
	}
	f, err := excelize.OpenFile(src)
	if err != nil {
		return rawSheet{}, loadErr(KindUnreadable, src, err)
	}
	return readXLSX(f, src, l.sheet)
}

func readXLSX(f *excelize.File, src, sheet string) (rawSheet, error) {
	defer f.Close()
	if !lo.Contains(f.GetSheetList(), sheet) {
		return rawSheet{}, loadErr(KindMissingSheet, src, fmt.Errorf("sheet %q not found", sheet))
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return rawSheet{}, loadErr(KindUnreadable, src, err)
	}
	return split(rows), nil
}

func readCSV(r io.Reader, src string) (rawSheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return rawSheet{}, loadErr(KindUnreadable, src, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return split(rows), nil
}

// readSQLite treats the table named by sheet as the spreadsheet.
func readSQLite(ctx context.Context, dbPath, src, table string) (rawSheet, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return rawSheet{}, loadErr(KindUnreadable, src, err)
	}
	if table == "" || strings.ContainsRune(table, '"') {
		return rawSheet{}, loadErr(KindMissingSheet, src, fmt.Errorf("invalid table name %q", table))
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return rawSheet{}, loadErr(KindUnreadable, src, err)
	}
	defer db.Close()

	var n int
	err = db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type IN ('table', 'view') AND name = ?`, table).Scan(&n)
	if err != nil {
		return rawSheet{}, loadErr(KindUnreadable, src, err)
	}
	if n == 0 {
		return rawSheet{}, loadErr(KindMissingSheet, src, fmt.Errorf("table %q not found", table))
	}

	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+table+`"`)
	if err != nil {
		return rawSheet{}, loadErr(KindUnreadable, src, err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return rawSheet{}, loadErr(KindUnreadable, src, err)
	}
	out := rawSheet{headers: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return rawSheet{}, loadErr(KindUnreadable, src, err)
		}
		out.rows = append(out.rows, lo.Map(vals, func(v any, _ int) string { return sqlCell(v) }))
	}
	if err := rows.Err(); err != nil {
		return rawSheet{}, loadErr(KindUnreadable, src, err)
	}
	return out, nil
}

func sqlCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func split(rows [][]string) rawSheet {
	if len(rows) == 0 {
		return rawSheet{}
	}
	return rawSheet{headers: rows[0], rows: rows[1:]}
}
