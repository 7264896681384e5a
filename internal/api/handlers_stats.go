package api

import "net/http"

// handleLLMStats reports translation latency aggregates and queue depth.
func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	translator := s.orch.Translator()
	if translator == nil || translator.Stats == nil {
		jsonError(w, http.StatusServiceUnavailable, "translation disabled")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"model":       translator.Model(),
		"latency":     translator.Stats.Snapshot(),
		"queue_depth": s.orch.QueueDepth(),
	})
}
