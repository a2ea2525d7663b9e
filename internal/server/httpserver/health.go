package httpserver

import "net/http"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err.Error())
			s.writeJSON(w, r, http.StatusServiceUnavailable, map[string]any{"ok": false})
			return
		}
	}
	s.writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}
