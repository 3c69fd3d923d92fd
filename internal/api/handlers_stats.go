package api

import (
	"net/http"
)

func (s *Server) handleConversionStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":         s.orchestrator.Stats(),
		"queue_depth":   s.orchestrator.QueueDepth(),
		"cache_entries": s.orchestrator.CacheLen(),
	})
}
