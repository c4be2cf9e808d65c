package api

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/feruzlabs/laravel-taskMaster/internal/auth"
	"github.com/feruzlabs/laravel-taskMaster/internal/model"
	"github.com/feruzlabs/laravel-taskMaster/internal/store"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 50
	passwordMinLen = 6
)

func (cfg *APIConfig) handleRegister(w http.ResponseWriter, r *http.Request) {
	type rqSchema struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	rqPayload, err := decodePayload[rqSchema](r)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "could not decode registration payload", err)
		return
	}

	username := strings.TrimSpace(rqPayload.Username)
	email := strings.TrimSpace(rqPayload.Email)

	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		respondWithError(w, http.StatusUnprocessableEntity, "username must be between 3 and 50 characters", nil)
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "a valid email is required", nil)
		return
	}
	if len(rqPayload.Password) < passwordMinLen {
		respondWithError(w, http.StatusUnprocessableEntity, "password must be at least 6 characters", nil)
		return
	}

	if _, err := cfg.users.FindByUsername(r.Context(), username); err == nil {
		respondWithError(w, http.StatusUnprocessableEntity, "username already taken", nil)
		return
	}
	if _, err := cfg.users.FindByEmail(r.Context(), email); err == nil {
		respondWithError(w, http.StatusUnprocessableEntity, "email already taken", nil)
		return
	}

	hashedPass, err := auth.HashPassword(rqPayload.Password)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not register user", err)
		return
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPass,
	}
	if err := cfg.users.Create(r.Context(), &user); err != nil {
		// unique index still backstops a concurrent duplicate
		if errors.Is(err, store.ErrDuplicate) {
			respondWithError(w, http.StatusUnprocessableEntity, "username or email already taken", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "could not register user", err)
		return
	}

	token, err := cfg.issueToken(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not register user", err)
		return
	}

	type rspSchema struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	respondWithJSON(w, http.StatusCreated, rspSchema{
		User:  userResponse(&user),
		Token: token,
	})
}

func (cfg *APIConfig) handleLogin(w http.ResponseWriter, r *http.Request) {
	type rqSchema struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	rqPayload, err := decodePayload[rqSchema](r)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "could not decode login payload", err)
		return
	}

	// Unknown email and wrong password produce the same response, so a
	// caller cannot probe which field was wrong.
	user, err := cfg.users.FindByEmail(r.Context(), strings.TrimSpace(rqPayload.Email))
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "the provided credentials are incorrect", nil)
		return
	}
	match, err := auth.CheckPasswordHash(rqPayload.Password, user.PasswordHash)
	if err != nil || !match {
		respondWithError(w, http.StatusUnprocessableEntity, "the provided credentials are incorrect", nil)
		return
	}

	token, err := cfg.issueToken(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not log in user", err)
		return
	}

	type rspSchema struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	respondWithJSON(w, http.StatusOK, rspSchema{
		User:  userResponse(user),
		Token: token,
	})
}

func (cfg *APIConfig) handleMe(w http.ResponseWriter, r *http.Request) {
	user := getContextUser(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, userResponse(user))
}

func (cfg *APIConfig) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := getContextToken(r.Context())

	// revoke is idempotent; a token deleted by a parallel logout is fine
	if err := cfg.tokens.Delete(r.Context(), token); err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not log out", err)
		return
	}

	type rspSchema struct {
		Message string `json:"message"`
	}
	respondWithJSON(w, http.StatusOK, rspSchema{Message: "Logged out"})
}

func (cfg *APIConfig) issueToken(ctx context.Context, userID uint) (string, error) {
	token, err := auth.MakeToken()
	if err != nil {
		return "", err
	}
	if err := cfg.tokens.Create(ctx, userID, token); err != nil {
		return "", err
	}
	return token, nil
}
