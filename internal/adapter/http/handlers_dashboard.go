package adapthttp

import (
	"net/http"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r, "days", 7)
	d, err := s.dashboard.Compute(r.Context(), userFromContext(r), days)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
