package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AngelCh415/campaign-dash/internal/analytics"
	"github.com/AngelCh415/campaign-dash/internal/ingest"
	"github.com/AngelCh415/campaign-dash/internal/models"
	"github.com/AngelCh415/campaign-dash/internal/present"
	"github.com/AngelCh415/campaign-dash/internal/utils"
)

// Dashboards builds the derived data for a selection.
type Dashboards interface {
	Dashboard(ctx context.Context, sel *analytics.Selection) (models.Dashboard, error)
}

// Catalog exposes the loaded table's campaign names and load state.
type Catalog interface {
	Names(ctx context.Context) ([]string, error)
	Ready() bool
}

type Deps struct {
	Log        *slog.Logger
	Dash       Dashboards
	Catalog    Catalog
	Recorder   utils.HTTPRecorder
	Exposition http.Handler
}

func NewRouter(d Deps) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(d.Log))
	if d.Recorder != nil {
		mux.Use(utils.Instrument(d.Recorder))
	}
	mux.Use(middleware.Recoverer)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !d.Catalog.Ready() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
		w.Write([]byte("ready"))
	})
	if d.Exposition != nil {
		mux.Method(http.MethodGet, "/metrics", d.Exposition)
	}

	mux.Route("/api", func(api chi.Router) {
		api.Get("/campaigns", func(w http.ResponseWriter, r *http.Request) {
			names, err := d.Catalog.Names(r.Context())
			if err != nil {
				writeErr(w, d.Log, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"campaigns": names})
		})

		api.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
			dash, err := d.Dash.Dashboard(r.Context(), SelectionFromQuery(r.URL.Query()))
			if err != nil {
				writeErr(w, d.Log, err)
				return
			}
			writeJSON(w, http.StatusOK, present.Build(dash))
		})

		api.Get("/details.csv", func(w http.ResponseWriter, r *http.Request) {
			dash, err := d.Dash.Dashboard(r.Context(), SelectionFromQuery(r.URL.Query()))
			if err != nil {
				writeErr(w, d.Log, err)
				return
			}
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="campaign_costs.csv"`)
			if err := present.WriteDetailsCSV(w, present.DetailRows(dash.Records)); err != nil {
				d.Log.Error("csv write", slog.String("err", err.Error()), slog.String("rid", utils.RID(r.Context())))
			}
		})
	})

	return mux
}

// SelectionFromQuery reads repeated "campaign" values, one name each. Names
// may contain commas. Without the parameter every campaign is selected; a
// parameter with no names selects nothing.
func SelectionFromQuery(v url.Values) *analytics.Selection {
	raw, ok := v["campaign"]
	if !ok {
		return nil
	}
	var names []string
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			names = append(names, item)
		}
	}
	sel := analytics.NewSelection(names...)
	return &sel
}

func writeErr(w http.ResponseWriter, log *slog.Logger, err error) {
	var dle *ingest.DataLoadError
	if errors.As(err, &dle) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": dle.Error(), "kind": dle.Kind})
		return
	}
	log.Error("request failed", slog.String("err", err.Error()))
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
