package adapthttp

import (
	"net/http"

	"vitals/internal/domain"
)

func (s *Server) handleChartsDaily(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	days := intQuery(r, "days", 90)
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = domain.UnitKG
	}
	if !domain.IsWeightUnit(unit) {
		writeError(w, http.StatusBadRequest, errBadUnit)
		return
	}

	series, err := s.charts.GetDaily(r.Context(), user, days, unit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"days":                  len(series.Points),
		"unit":                  unit,
		"items":                 series.Points,
		"unavailableCategories": series.Unavailable,
	})
}
