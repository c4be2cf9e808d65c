package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/feruzlabs/laravel-taskMaster/internal/model"
	"github.com/feruzlabs/laravel-taskMaster/internal/store"
)

const titleMaxLen = 255

func (cfg *APIConfig) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user := getContextUser(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	date, err := parseDateFromQuery("date", r)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "invalid date", err)
		return
	}
	if date == "" {
		date = cfg.today()
	}

	page, err := cfg.pages.GetOrCreate(r.Context(), date)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not load daily page", err)
		return
	}

	tasks, err := cfg.tasks.ListForPage(r.Context(), user.ID, page.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not list tasks", err)
		return
	}

	type rspSchema struct {
		Date  string `json:"date"`
		Tasks []Task `json:"tasks"`
	}
	respondWithJSON(w, http.StatusOK, rspSchema{
		Date:  page.Date,
		Tasks: taskListResponse(tasks),
	})
}

func (cfg *APIConfig) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user := getContextUser(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	type rqSchema struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}
	rqPayload, err := decodePayload[rqSchema](r)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "could not decode task payload", err)
		return
	}

	title := strings.TrimSpace(rqPayload.Title)
	if title == "" || len(title) > titleMaxLen {
		respondWithError(w, http.StatusUnprocessableEntity, "title is required and must be at most 255 characters", nil)
		return
	}

	page, err := cfg.pages.GetOrCreate(r.Context(), cfg.today())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not load daily page", err)
		return
	}

	task := model.Task{
		DailyPageID: page.ID,
		UserID:      user.ID,
		Title:       title,
		Description: rqPayload.Description,
	}
	if err := cfg.tasks.Create(r.Context(), &task); err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not create task", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, taskResponse(&task))
}

func (cfg *APIConfig) handleGetTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := parseIDFromPath("task_id", r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "task not found", err)
		return
	}

	task, err := cfg.tasks.FindByID(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "task not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "could not load task", err)
		return
	}

	respondWithJSON(w, http.StatusOK, taskWithOwnerResponse(task))
}

func (cfg *APIConfig) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user := getContextUser(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	taskID, err := parseIDFromPath("task_id", r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "task not found", err)
		return
	}

	task, err := cfg.tasks.FindByID(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "task not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "could not load task", err)
		return
	}

	if !task.OwnedBy(user.ID) {
		respondWithError(w, http.StatusForbidden, "not authorized to update this task", nil)
		return
	}

	// pointer fields distinguish "absent" from "set to zero value";
	// only supplied fields change
	type rqSchema struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		IsCompleted *bool   `json:"is_completed"`
	}
	rqPayload, err := decodePayload[rqSchema](r)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "could not decode task payload", err)
		return
	}

	if rqPayload.Title != nil {
		title := strings.TrimSpace(*rqPayload.Title)
		if title == "" || len(title) > titleMaxLen {
			respondWithError(w, http.StatusUnprocessableEntity, "title is required and must be at most 255 characters", nil)
			return
		}
		task.Title = title
	}
	if rqPayload.Description != nil {
		task.Description = rqPayload.Description
	}
	if rqPayload.IsCompleted != nil {
		task.IsCompleted = *rqPayload.IsCompleted
		if task.IsCompleted {
			completedAt := cfg.now().In(cfg.loc)
			task.CompletedAt = &completedAt
		} else {
			task.CompletedAt = nil
		}
	}

	if err := cfg.tasks.Save(r.Context(), task); err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not update task", err)
		return
	}

	respondWithJSON(w, http.StatusOK, taskResponse(task))
}

func (cfg *APIConfig) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user := getContextUser(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}

	taskID, err := parseIDFromPath("task_id", r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "task not found", err)
		return
	}

	task, err := cfg.tasks.FindByID(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "task not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "could not load task", err)
		return
	}

	if !task.OwnedBy(user.ID) {
		respondWithError(w, http.StatusForbidden, "not authorized to delete this task", nil)
		return
	}

	if err := cfg.tasks.Delete(r.Context(), task.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "task not found", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "could not delete task", err)
		return
	}

	type rspSchema struct {
		Message string `json:"message"`
	}
	respondWithJSON(w, http.StatusOK, rspSchema{Message: "Deleted"})
}
