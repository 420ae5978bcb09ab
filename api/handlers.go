/*
handlers.go - HTTP handlers

PURPOSE:
  Wires the compute engine, the record store and the monthly aggregator to
  the HTTP boundary. Handlers resolve settings, normalize input and hand
  the engine fully-resolved data; the engine itself stays pure.

CACHING:
  Compute results are memoized per (entry, settings) fingerprint. Updating
  settings invalidates the whole cache.
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/warp/payroll-engine/calendar"
	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/monthly"
	"github.com/warp/payroll-engine/record"
	"github.com/warp/payroll-engine/report"
	"github.com/warp/payroll-engine/store/sqlite"
)

// Handler holds the dependencies of every route.
type Handler struct {
	store    *sqlite.Store
	engine   *engine.Engine
	cache    *engine.ComputeCache
	agg      *monthly.Aggregator
	cal      calendar.Italy
	validate *validator.Validate
	log      *logrus.Logger
}

// NewHandler builds a handler around the store. log may be nil.
func NewHandler(store *sqlite.Store, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cal := calendar.Italy{}
	eng := engine.New(cal)
	return &Handler{
		store:    store,
		engine:   eng,
		cache:    engine.NewComputeCache(eng, 256),
		agg:      monthly.New(eng, log),
		cal:      cal,
		validate: validator.New(),
		log:      log,
	}
}

// =============================================================================
// COMPUTE
// =============================================================================

// Compute handles POST /api/compute.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := h.resolveSettings(r, req.Settings)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	entry := record.Normalize(h.log, req.Entry)
	b := h.cache.Compute(entry, settings)
	h.respondJSON(w, http.StatusOK, toBreakdownDTO(b))
}

func (h *Handler) resolveSettings(r *http.Request, inline *engine.Settings) (engine.Settings, error) {
	if inline != nil {
		return engine.Merge(*inline), nil
	}
	return h.store.LoadSettings(r.Context())
}

// =============================================================================
// SETTINGS
// =============================================================================

// GetSettings handles GET /api/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.LoadSettings(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	h.respondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings. The compute cache is invalidated
// wholesale: every memoized breakdown depends on the settings fingerprint.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings engine.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	merged := engine.Merge(settings)
	if err := h.store.SaveSettings(r.Context(), merged); err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	h.cache.Invalidate()

	h.log.Info("settings updated, compute cache invalidated")
	h.respondJSON(w, http.StatusOK, merged)
}

// =============================================================================
// ENTRIES
// =============================================================================

// UpsertEntry handles PUT /api/entries/{date}.
func (h *Handler) UpsertEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		h.respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	var req EntryUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveEntry(r.Context(), date, req.Payload); err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to save entry")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"date": date})
}

// GetEntry handles GET /api/entries/{date}.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	payload, ok, err := h.store.GetEntry(r.Context(), date)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to load entry")
		return
	}
	if !ok {
		h.respondError(w, http.StatusNotFound, "no entry for date")
		return
	}
	h.respondJSON(w, http.StatusOK, payload)
}

// DeleteEntry handles DELETE /api/entries/{date}.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteEntry(r.Context(), chi.URLParam(r, "date")); err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListEntries handles GET /api/entries?month=YYYY-MM.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthParam(r.URL.Query().Get("month"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	records, err := h.store.ListMonth(r.Context(), year, month)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}
	if records == nil {
		records = []map[string]any{}
	}
	h.respondJSON(w, http.StatusOK, records)
}

// =============================================================================
// MONTHLY
// =============================================================================

// MonthSummary handles GET /api/months/{year}/{month}.
func (h *Handler) MonthSummary(w http.ResponseWriter, r *http.Request) {
	sum, ok := h.monthSummary(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, toMonthlySummaryDTO(sum))
}

// MonthPayslip handles GET /api/months/{year}/{month}/payslip.pdf.
func (h *Handler) MonthPayslip(w http.ResponseWriter, r *http.Request) {
	sum, ok := h.monthSummary(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="payslip-%04d-%02d.pdf"`, sum.Year, int(sum.Month)))
	if err := report.RenderPayslip(w, sum); err != nil {
		h.log.WithError(err).Error("payslip rendering failed")
	}
}

// monthSummary resolves the month route params and aggregates. Writes the
// error response itself on failure.
func (h *Handler) monthSummary(w http.ResponseWriter, r *http.Request) (monthly.Summary, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1970 || year > 2200 {
		h.respondError(w, http.StatusBadRequest, "invalid year")
		return monthly.Summary{}, false
	}
	m, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || m < 1 || m > 12 {
		h.respondError(w, http.StatusBadRequest, "invalid month")
		return monthly.Summary{}, false
	}

	settings, err := h.store.LoadSettings(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to load settings")
		return monthly.Summary{}, false
	}
	records, err := h.store.ListMonth(r.Context(), year, time.Month(m))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to list entries")
		return monthly.Summary{}, false
	}

	return h.agg.Aggregate(year, time.Month(m), records, settings), true
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// ListHolidays handles GET /api/holidays/{year}.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1970 || year > 2200 {
		h.respondError(w, http.StatusBadRequest, "invalid year")
		return
	}

	type holidayDTO struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}
	var out []holidayDTO
	for _, d := range h.cal.Holidays(year) {
		out = append(out, holidayDTO{Date: d.Format("2006-01-02"), Name: h.cal.Name(d)})
	}
	h.respondJSON(w, http.StatusOK, out)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Error("response encoding failed")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}

func parseMonthParam(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}
