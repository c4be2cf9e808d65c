package api

import "net/http"

func (cfg *APIConfig) handleReadiness(w http.ResponseWriter, r *http.Request) {
	type rspSchema struct {
		Status string `json:"status"`
	}
	respondWithJSON(w, http.StatusOK, rspSchema{Status: "ok"})
}

// handleReset wipes all users (cascading to tokens and tasks). Guarded so it
// only works on the dev platform.
func (cfg *APIConfig) handleReset(w http.ResponseWriter, r *http.Request) {
	if cfg.platform != "dev" {
		respondWithError(w, http.StatusForbidden, "reset is only available on the dev platform", nil)
		return
	}
	if err := cfg.users.DeleteAll(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not reset", err)
		return
	}
	type rspSchema struct {
		Message string `json:"message"`
	}
	respondWithJSON(w, http.StatusOK, rspSchema{Message: "Reset complete"})
}
