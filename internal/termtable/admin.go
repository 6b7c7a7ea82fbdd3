package termtable

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bitfunnel-go/termtable/internal/termtreat"
	"github.com/bitfunnel-go/termtable/pkg/errors"
)

// AdminHandler returns an http.Handler exposing a debug surface over the
// Service: GET /debug/treatment?idf=NN returns the tabulated row
// configuration for the given IDF class, and GET /debug/status returns the
// most recent BuildSummary.
func AdminHandler(svc *Service) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/treatment", func(w http.ResponseWriter, r *http.Request) {
		handleDebugTreatment(w, r, svc)
	})
	mux.HandleFunc("/debug/status", func(w http.ResponseWriter, r *http.Request) {
		handleDebugStatus(w, r, svc)
	})
	return mux
}

func handleDebugTreatment(w http.ResponseWriter, r *http.Request, svc *Service) {
	raw := r.URL.Query().Get("idf")
	idf, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, errors.New(errors.ErrInvalidInput, http.StatusBadRequest, "idf query parameter must be an integer"))
		return
	}

	cfg, err := svc.GetTreatment(r.Context(), termtreat.IdfX10(idf))
	if err != nil {
		writeError(w, err)
		return
	}

	entries := make([]map[string]int, 0, cfg.Len())
	for _, e := range cfg.Entries() {
		entries = append(entries, map[string]int{"rank": int(e.Rank), "count": int(e.Count)})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"idf_class":  idf,
		"strategy":   svc.tcfg.Strategy,
		"entries":    entries,
		"total_rows": cfg.TotalRows(),
	})
}

func handleDebugStatus(w http.ResponseWriter, r *http.Request, svc *Service) {
	summary := svc.trigger.Latest()
	if summary == nil {
		writeError(w, errors.New(errors.ErrTreatmentNotReady, http.StatusNotFound, "no build has completed yet"))
		return
	}
	writeJSON(w, http.StatusOK, toBuildStatusResponse(summary))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatusCode(err), map[string]string{"error": err.Error()})
}
