// Package apitest provides request builders and response helpers shared by
// the API tests.
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
)

// ========== MIDDLEWARE ==========

func headerJSON(req *http.Request) *http.Request {
	req.Header.Set("Content-Type", "application/json")
	return req
}

func requireToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", token))
	return req
}

// AUTH

func Register(username, email, password string) *http.Request {
	payload := strings.NewReader(fmt.Sprintf(`{"username":"%v","email":"%v","password":"%v"}`, username, email, password))
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", payload)
	return headerJSON(req)
}

func Login(email, password string) *http.Request {
	payload := strings.NewReader(fmt.Sprintf(`{"email":"%v","password":"%v"}`, email, password))
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", payload)
	return headerJSON(req)
}

func Me(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	return headerJSON(requireToken(req, token))
}

func Logout(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	return headerJSON(requireToken(req, token))
}

// TASK CRUD

func CreateTask(token, title string) *http.Request {
	payload := strings.NewReader(fmt.Sprintf(`{"title":"%v"}`, title))
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks", payload)
	return headerJSON(requireToken(req, token))
}

func CreateTaskWithDescription(token, title, description string) *http.Request {
	payload := strings.NewReader(fmt.Sprintf(`{"title":"%v","description":"%v"}`, title, description))
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks", payload)
	return headerJSON(requireToken(req, token))
}

func ListTasks(token, date string) *http.Request {
	path := "/v1/tasks"
	if date != "" {
		path += "?date=" + date
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return headerJSON(requireToken(req, token))
}

func GetTask(token string, taskID int64) *http.Request {
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/tasks/%v", taskID), nil)
	return headerJSON(requireToken(req, token))
}

func UpdateTask(token string, taskID int64, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/v1/tasks/%v", taskID), strings.NewReader(body))
	return headerJSON(requireToken(req, token))
}

func DeleteTask(token string, taskID int64) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/v1/tasks/%v", taskID), nil)
	return headerJSON(requireToken(req, token))
}

func Rollover(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks/rollover", nil)
	return headerJSON(requireToken(req, token))
}

// ========== RESPONSE HELPERS ==========

func GetJSONField(w *httptest.ResponseRecorder, field string) (any, error) {
	var body map[string]any
	decoder := json.NewDecoder(bytes.NewReader(w.Body.Bytes()))
	decoder.UseNumber()
	err := decoder.Decode(&body)
	if err != nil {
		return nil, err
	}
	val, ok := body[field]
	if !ok {
		return nil, fmt.Errorf("field %s not found in response", field)
	}

	if num, ok := val.(json.Number); ok {
		if i, err := num.Int64(); err == nil {
			return i, nil
		}
		if f, err := num.Float64(); err == nil {
			return f, nil
		}
	}

	return val, nil
}

func GetJSONFieldAsString(w *httptest.ResponseRecorder, field string) (string, error) {
	fieldRetrieved, err := GetJSONField(w, field)
	if err != nil {
		return "", err
	}
	if val, ok := fieldRetrieved.(string); ok {
		return val, nil
	}
	return "", fmt.Errorf("field retrieved from response was not of type string")
}

func GetJSONFieldAsInt64(w *httptest.ResponseRecorder, field string) (int64, error) {
	fieldRetrieved, err := GetJSONField(w, field)
	if err != nil {
		return 0, err
	}
	if val, ok := fieldRetrieved.(int64); ok {
		return val, nil
	}
	return 0, fmt.Errorf("field retrieved from response was not of type int64")
}
