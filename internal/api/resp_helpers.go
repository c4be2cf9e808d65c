package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

func decodePayload[T any](r *http.Request) (T, error) {
	var v T
	err := json.NewDecoder(r.Body).Decode(&v)
	defer r.Body.Close()
	if err != nil {
		return v, fmt.Errorf("failure decoding request payload: %w", err)
	}
	return v, err
}

func makeStatusCodeMsg(code int) string {
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}

func respondWithError(w http.ResponseWriter, code int, msg string, err error) {
	// prefix the message with a status code message
	errorMessage := makeStatusCodeMsg(code)
	// add the optional info message, if it exists
	if msg != "" {
		errorMessage += fmt.Sprintf("; %s", msg)
	}
	// add the technical error message, if it exists
	if err != nil {
		errorMessage += fmt.Sprintf(": %s", err.Error())
	}

	// log the error on the server
	slog.Error(errorMessage, slog.Int("HTTP Status Code", code))

	// respond with the errorMessage as JSON
	type errorResponse struct {
		Error string `json:"error"`
	}
	respondWithJSON(w, code, errorResponse{
		Error: msg,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("could not marshal JSON for response: " + err.Error())
		w.WriteHeader(500)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err = w.Write(data)
	if err != nil {
		slog.Error("could not write to header from JSON payload: " + err.Error())
	}
}

// Try to parse input path parameter; returns an error on anything that is
// not a positive integer id.
func parseIDFromPath(pathParam string, r *http.Request) (uint, error) {
	idString := r.PathValue(pathParam)
	parsed, err := strconv.ParseUint(idString, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("value '%s' for path parameter '%s' could not be parsed as ID: %w", idString, pathParam, err)
	}
	return uint(parsed), nil
}

// Try to parse input query parameter as a calendar date. An empty value is
// not an error; the caller substitutes today.
func parseDateFromQuery(queryParam string, r *http.Request) (string, error) {
	dateString := r.URL.Query().Get(queryParam)
	if dateString == "" {
		return "", nil
	}
	parsed, err := time.Parse(time.DateOnly, dateString)
	if err != nil {
		return "", fmt.Errorf("value '%s' for query parameter '%s' could not be parsed as DATE", dateString, queryParam)
	}
	return parsed.Format(time.DateOnly), nil
}
