package adapthttp

import (
	"log/slog"
	"net/http"

	"vitals/internal/app"
)

// Options configures a Server.
type Options struct {
	// DevUser, when set, is used for requests without a Remote-User header.
	DevUser string
	Logger  *slog.Logger
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	dashboard *app.DashboardService
	charts    *app.ChartsService
	records   *app.RecordService
	devUser   string
	log       *slog.Logger
}

// New creates a Server wired to the given application services.
func New(ds *app.DashboardService, cs *app.ChartsService, rs *app.RecordService, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{dashboard: ds, charts: cs, records: rs, devUser: opts.DevUser, log: opts.Logger}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.Handle("GET /dashboard", s.userMiddleware(http.HandlerFunc(s.handleDashboard)))
	api.Handle("GET /charts/daily", s.userMiddleware(http.HandlerFunc(s.handleChartsDaily)))

	api.Handle("GET /records/{category}", s.userMiddleware(http.HandlerFunc(s.handleRecordsRecent)))
	api.Handle("POST /records/{category}", s.userMiddleware(http.HandlerFunc(s.handleRecordCreate)))
	api.Handle("DELETE /records/{category}/{id}", s.userMiddleware(http.HandlerFunc(s.handleRecordDelete)))
	api.Handle("POST /records/{category}/undo-last", s.userMiddleware(http.HandlerFunc(s.handleRecordUndoLast)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(withNoCache(root))
}
