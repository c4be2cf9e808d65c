package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pt "github.com/feruzlabs/laravel-taskMaster/internal/apitest"
	"github.com/feruzlabs/laravel-taskMaster/internal/config"
	"github.com/feruzlabs/laravel-taskMaster/internal/store"
)

const (
	dayOne = "2025-06-15"
	dayTwo = "2025-06-16"
)

// ---------------
// HELPER FUNCS
// ---------------

// newTestServer spins up the full mux on a fresh in-memory database with a
// clock pinned to noon UTC on dayOne. Tests advance the clock through the
// returned config.
func newTestServer(t *testing.T) (*APIConfig, http.Handler) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := store.NewDB(dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	cfg := NewAPIConfig(config.Config{
		Platform: "dev",
		Location: time.UTC,
		LogLevel: slog.LevelError,
	}, db)
	cfg.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}

	return cfg, SetupMux(cfg, nil)
}

func setDay(cfg *APIConfig, date string) {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	cfg.now = func() time.Time {
		return day.Add(12 * time.Hour)
	}
}

func Call(mux http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func registerAndGetToken(t *testing.T, mux http.Handler, username, email, password string) string {
	t.Helper()
	w := Call(mux, pt.Register(username, email, password))
	require.Equal(t, 201, w.Code)
	token, err := pt.GetJSONFieldAsString(w, "token")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return token
}

// ---------------
// TESTING
// ---------------

func Test_Healthz(t *testing.T) {
	_, mux := newTestServer(t)
	w := Call(mux, httptest.NewRequest("GET", "/v1/healthz", nil))
	assert.Equal(t, 200, w.Code)
}

func Test_RegisterValidation(t *testing.T) {
	_, mux := newTestServer(t)

	// a valid registration to collide with
	registerAndGetToken(t, mux, "alice", "alice@x.com", "secret1")

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{
			name:     "Username too short",
			username: "al",
			email:    "al@x.com",
			password: "secret1",
		},
		{
			name:     "Username too long",
			username: strings.Repeat("a", 51),
			email:    "long@x.com",
			password: "secret1",
		},
		{
			name:     "Malformed email",
			username: "charlie",
			email:    "not-an-email",
			password: "secret1",
		},
		{
			name:     "Password too short",
			username: "charlie",
			email:    "charlie@x.com",
			password: "12345",
		},
		{
			name:     "Duplicate username",
			username: "alice",
			email:    "alice2@x.com",
			password: "secret1",
		},
		{
			name:     "Duplicate email",
			username: "alice2",
			email:    "alice@x.com",
			password: "secret1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Call(mux, pt.Register(tt.username, tt.email, tt.password))
			assert.Equal(t, 422, w.Code)
			msg, err := pt.GetJSONFieldAsString(w, "error")
			assert.NoError(t, err)
			assert.NotEmpty(t, msg)
		})
	}
}

func Test_LoginDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	_, mux := newTestServer(t)
	registerAndGetToken(t, mux, "alice", "alice@x.com", "secret1")

	wrongPassword := Call(mux, pt.Login("alice@x.com", "wrong"))
	unknownEmail := Call(mux, pt.Login("nobody@x.com", "secret1"))

	assert.Equal(t, 422, wrongPassword.Code)
	assert.Equal(t, 422, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String(),
		"both failures must present the identical shape")
}

func Test_LoginAndMultiSession(t *testing.T) {
	_, mux := newTestServer(t)
	registerAndGetToken(t, mux, "alice", "alice@x.com", "secret1")

	// two parallel sessions
	w := Call(mux, pt.Login("alice@x.com", "secret1"))
	require.Equal(t, 200, w.Code)
	token1, err := pt.GetJSONFieldAsString(w, "token")
	require.NoError(t, err)

	w = Call(mux, pt.Login("alice@x.com", "secret1"))
	require.Equal(t, 200, w.Code)
	token2, err := pt.GetJSONFieldAsString(w, "token")
	require.NoError(t, err)
	require.NotEqual(t, token1, token2)

	// both resolve to alice
	w = Call(mux, pt.Me(token1))
	assert.Equal(t, 200, w.Code)
	username, _ := pt.GetJSONFieldAsString(w, "username")
	assert.Equal(t, "alice", username)

	// logging out of one session leaves the other intact
	w = Call(mux, pt.Logout(token1))
	assert.Equal(t, 200, w.Code)

	w = Call(mux, pt.Me(token1))
	assert.Equal(t, 401, w.Code)
	w = Call(mux, pt.Me(token2))
	assert.Equal(t, 200, w.Code)
}

func Test_Unauthenticated(t *testing.T) {
	_, mux := newTestServer(t)

	noToken := httptest.NewRequest("GET", "/v1/tasks", nil)
	w := Call(mux, noToken)
	assert.Equal(t, 401, w.Code)

	w = Call(mux, pt.ListTasks("bogus-token", ""))
	assert.Equal(t, 401, w.Code)
}

func Test_CompletedAtInvariant(t *testing.T) {
	_, mux := newTestServer(t)
	token := registerAndGetToken(t, mux, "alice", "alice@x.com", "secret1")

	w := Call(mux, pt.CreateTask(token, "buy milk"))
	require.Equal(t, 201, w.Code)
	taskID, err := pt.GetJSONFieldAsInt64(w, "id")
	require.NoError(t, err)
	completed, err := pt.GetJSONField(w, "is_completed")
	require.NoError(t, err)
	assert.Equal(t, false, completed)
	completedAt, err := pt.GetJSONField(w, "completed_at")
	require.NoError(t, err)
	assert.Nil(t, completedAt)

	// flag on: completed_at set
	w = Call(mux, pt.UpdateTask(token, taskID, `{"is_completed":true}`))
	require.Equal(t, 200, w.Code)
	completedAt, err = pt.GetJSONField(w, "completed_at")
	require.NoError(t, err)
	assert.NotNil(t, completedAt)

	// flag off again: completed_at cleared
	w = Call(mux, pt.UpdateTask(token, taskID, `{"is_completed":false}`))
	require.Equal(t, 200, w.Code)
	completedAt, err = pt.GetJSONField(w, "completed_at")
	require.NoError(t, err)
	assert.Nil(t, completedAt)
}

func Test_PartialUpdate(t *testing.T) {
	_, mux := newTestServer(t)
	token := registerAndGetToken(t, mux, "alice", "alice@x.com", "secret1")

	w := Call(mux, pt.CreateTaskWithDescription(token, "buy milk", "two liters"))
	require.Equal(t, 201, w.Code)
	taskID, err := pt.GetJSONFieldAsInt64(w, "id")
	require.NoError(t, err)

	// only the title changes; description survives
	w = Call(mux, pt.UpdateTask(token, taskID, `{"title":"buy oat milk"}`))
	require.Equal(t, 200, w.Code)
	title, _ := pt.GetJSONFieldAsString(w, "title")
	assert.Equal(t, "buy oat milk", title)
	desc, err := pt.GetJSONFieldAsString(w, "description")
	require.NoError(t, err)
	assert.Equal(t, "two liters", desc)

	// empty title rejected
	w = Call(mux, pt.UpdateTask(token, taskID, `{"title":"  "}`))
	assert.Equal(t, 422, w.Code)
}

func Test_TaskValidation(t *testing.T) {
	_, mux := newTestServer(t)
	token := registerAndGetToken(t, mux, "alice", "alice@x.com", "secret1")

	w := Call(mux, pt.CreateTask(token, ""))
	assert.Equal(t, 422, w.Code)

	w = Call(mux, pt.CreateTask(token, strings.Repeat("x", 256)))
	assert.Equal(t, 422, w.Code)

	w = Call(mux, pt.ListTasks(token, "not-a-date"))
	assert.Equal(t, 422, w.Code)
}

func Test_OwnershipForbidden(t *testing.T) {
	_, mux := newTestServer(t)
	aliceToken := registerAndGetToken(t, mux, "alice", "alice@x.com", "secret1")
	bobToken := registerAndGetToken(t, mux, "bob", "bob@x.com", "secret2")

	w := Call(mux, pt.CreateTask(aliceToken, "alices task"))
	require.Equal(t, 201, w.Code)
	taskID, err := pt.GetJSONFieldAsInt64(w, "id")
	require.NoError(t, err)

	// bob cannot mutate alice's task
	w = Call(mux, pt.UpdateTask(bobToken, taskID, `{"is_completed":true}`))
	assert.Equal(t, 403, w.Code)
	w = Call(mux, pt.DeleteTask(bobToken, taskID))
	assert.Equal(t, 403, w.Code)

	// bob's list never shows alice's tasks
	w = Call(mux, pt.ListTasks(bobToken, ""))
	require.Equal(t, 200, w.Code)
	tasks, err := pt.GetJSONField(w, "tasks")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// the detail view attaches the owner's minimal identity
	w = Call(mux, pt.GetTask(bobToken, taskID))
	require.Equal(t, 200, w.Code)
	owner, err := pt.GetJSONField(w, "user")
	require.NoError(t, err)
	ownerMap, ok := owner.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", ownerMap["username"])
	assert.Equal(t, "alice@x.com", ownerMap["email"])

	// alice still can mutate
	w = Call(mux, pt.DeleteTask(aliceToken, taskID))
	assert.Equal(t, 200, w.Code)
	w = Call(mux, pt.GetTask(aliceToken, taskID))
	assert.Equal(t, 404, w.Code)
}

func Test_TaskNotFound(t *testing.T) {
	_, mux := newTestServer(t)
	token := registerAndGetToken(t, mux, "alice", "alice@x.com", "secret1")

	w := Call(mux, pt.GetTask(token, 9999))
	assert.Equal(t, 404, w.Code)
	w = Call(mux, pt.UpdateTask(token, 9999, `{"title":"x"}`))
	assert.Equal(t, 404, w.Code)
	w = Call(mux, pt.DeleteTask(token, 9999))
	assert.Equal(t, 404, w.Code)
}

// The concrete end-to-end scenario: alice works through dayOne, the clock
// rolls to dayTwo, and rollover carries her unfinished task forward.
func Test_RolloverScenario(t *testing.T) {
	cfg, mux := newTestServer(t)
	token := registerAndGetToken(t, mux, "alice", "alice@x.com", "secret1")

	// dayOne: one finished, one unfinished task
	w := Call(mux, pt.CreateTask(token, "buy milk"))
	require.Equal(t, 201, w.Code)
	buyMilkID, err := pt.GetJSONFieldAsInt64(w, "id")
	require.NoError(t, err)

	w = Call(mux, pt.CreateTask(token, "walk dog"))
	require.Equal(t, 201, w.Code)

	w = Call(mux, pt.UpdateTask(token, buyMilkID, `{"is_completed":true}`))
	require.Equal(t, 200, w.Code)

	// dayTwo: today starts empty, yesterday still holds both tasks
	setDay(cfg, dayTwo)

	w = Call(mux, pt.ListTasks(token, ""))
	require.Equal(t, 200, w.Code)
	date, _ := pt.GetJSONFieldAsString(w, "date")
	assert.Equal(t, dayTwo, date)
	tasks, err := pt.GetJSONField(w, "tasks")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	w = Call(mux, pt.ListTasks(token, dayOne))
	require.Equal(t, 200, w.Code)
	tasks, err = pt.GetJSONField(w, "tasks")
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	// rollover copies only the unfinished task
	w = Call(mux, pt.Rollover(token))
	require.Equal(t, 200, w.Code)
	moved, err := pt.GetJSONFieldAsInt64(w, "moved")
	require.NoError(t, err)
	assert.EqualValues(t, 1, moved)

	w = Call(mux, pt.ListTasks(token, ""))
	require.Equal(t, 200, w.Code)
	tasksAny, err := pt.GetJSONField(w, "tasks")
	require.NoError(t, err)
	todays, ok := tasksAny.([]any)
	require.True(t, ok)
	require.Len(t, todays, 1)
	walkDog, ok := todays[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "walk dog", walkDog["title"])
	assert.Equal(t, false, walkDog["is_completed"])

	// yesterday's page is untouched
	w = Call(mux, pt.ListTasks(token, dayOne))
	require.Equal(t, 200, w.Code)
	tasks, err = pt.GetJSONField(w, "tasks")
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func Test_AdminReset(t *testing.T) {
	_, mux := newTestServer(t)
	registerAndGetToken(t, mux, "alice", "alice@x.com", "secret1")

	w := Call(mux, httptest.NewRequest("POST", "/v1/admin/reset", nil))
	assert.Equal(t, 200, w.Code)

	// the account is gone
	w = Call(mux, pt.Login("alice@x.com", "secret1"))
	assert.Equal(t, 422, w.Code)
}
