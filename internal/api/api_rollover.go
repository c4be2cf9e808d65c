package api

import "net/http"

// handleRollover copies yesterday's incomplete tasks onto today's page.
// The copy set is transactional: a failure part way through leaves today's
// page exactly as it was. Repeated calls copy again; the endpoint keeps the
// on-demand, no-dedup semantics.
func (cfg *APIConfig) handleRollover(w http.ResponseWriter, r *http.Request) {
	yesterdayPage, err := cfg.pages.GetOrCreate(r.Context(), cfg.yesterday())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not load daily page", err)
		return
	}
	todayPage, err := cfg.pages.GetOrCreate(r.Context(), cfg.today())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not load daily page", err)
		return
	}

	moved, err := cfg.tasks.Rollover(r.Context(), yesterdayPage.ID, todayPage.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "rollover failed", err)
		return
	}

	type rspSchema struct {
		Moved int `json:"moved"`
	}
	respondWithJSON(w, http.StatusOK, rspSchema{Moved: moved})
}
