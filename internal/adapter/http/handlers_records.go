package adapthttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"vitals/internal/domain"
)

var errBadUnit = errors.New(`unit must be "kg" or "lb"`)

func categoryFromPath(r *http.Request) (domain.Category, error) {
	return domain.ParseCategory(r.PathValue("category"))
}

func (s *Server) handleRecordsRecent(w http.ResponseWriter, r *http.Request) {
	c, err := categoryFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	limit := intQuery(r, "limit", 20)
	items, malformed, err := s.records.ListRecent(r.Context(), userFromContext(r), c, limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "malformed": malformed})
}

func (s *Server) handleRecordCreate(w http.ResponseWriter, r *http.Request) {
	c, err := categoryFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var body map[string]any
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rec, err := s.records.Create(r.Context(), userFromContext(r), c, body)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleRecordDelete(w http.ResponseWriter, r *http.Request) {
	c, err := categoryFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid id %q", r.PathValue("id")))
		return
	}
	if err := s.records.Delete(r.Context(), userFromContext(r), c, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecordUndoLast(w http.ResponseWriter, r *http.Request) {
	c, err := categoryFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	undone, id, err := s.records.UndoLast(r.Context(), userFromContext(r), c)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"undone": undone, "id": id})
}
