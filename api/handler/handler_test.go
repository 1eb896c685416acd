package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"golang.org/x/crypto/bcrypt"

	apiHandler "github.com/fastygo/progress/api/handler"
	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/internal/infrastructure/monitor"
	"github.com/fastygo/progress/internal/middleware"
	"github.com/fastygo/progress/internal/router"
	"github.com/fastygo/progress/pkg/httpcontext"
	"github.com/fastygo/progress/pkg/password"
	"github.com/fastygo/progress/pkg/token"
	"github.com/fastygo/progress/repository/memory"
	"github.com/fastygo/progress/usecase/activity"
	authUC "github.com/fastygo/progress/usecase/auth"
	"github.com/fastygo/progress/usecase/dashboard"
	"github.com/fastygo/progress/usecase/export"
	habitUC "github.com/fastygo/progress/usecase/habit"
	profileUC "github.com/fastygo/progress/usecase/profile"
	taskUC "github.com/fastygo/progress/usecase/task"
)

type staticStatus monitor.Status

func (s staticStatus) GetStatus() monitor.Status { return monitor.Status(s) }

func newServer(t *testing.T, status monitor.Status) fasthttp.RequestHandler {
	t.Helper()
	store := memory.NewStore()
	sessions := memory.NewSessionRepository(time.Hour)
	clock := domain.NewClock(time.UTC)
	adapter := httpcontext.NewAdapter(time.Second)

	auth := authUC.New(store.Users(), sessions, password.NewBcrypt(bcrypt.MinCost), token.NewIssuer("test-secret", "test"), time.Hour, nil)
	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(auth, adapter, nil, time.Hour),
		Profile:   apiHandler.NewProfileHandler(profileUC.New(store.Users(), store.Tasks(), store.Logs(), nil), adapter, nil),
		Task:      apiHandler.NewTaskHandler(taskUC.New(store.Tasks(), clock, nil), adapter, nil),
		Log:       apiHandler.NewLogHandler(activity.New(store.Logs(), clock, nil), adapter, nil),
		Habit:     apiHandler.NewHabitHandler(habitUC.New(store.Habits(), clock, nil), adapter, nil),
		Dashboard: apiHandler.NewDashboardHandler(dashboard.New(store.Tasks(), store.Logs(), clock, nil).WithHabits(store.Habits()), adapter, nil),
		Export:    apiHandler.NewExportHandler(export.New(store.Tasks(), store.Logs(), nil), adapter, nil),
		Health:    apiHandler.NewHealthHandler(staticStatus(status), map[string]string{"storage": "memory", "sessions": "memory"}, adapter, nil),
	}
	return router.New(handlers, middleware.JWTAuth(auth, time.Second, nil)).Handler
}

func do(h fasthttp.RequestHandler, method, path, bearer string, body interface{}) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if bearer != "" {
		ctx.Request.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		raw, _ := json.Marshal(body)
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBody(raw)
	}
	h(ctx)
	return ctx
}

type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func decodeEnvelope(t *testing.T, ctx *fasthttp.RequestCtx) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &env), string(ctx.Response.Body()))
	return env
}

func signUpAndLogin(t *testing.T, h fasthttp.RequestHandler, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": "pw"}
	require.Equal(t, http.StatusCreated, do(h, "POST", "/api/v1/auth/signup", "", creds).Response.StatusCode())

	ctx := do(h, "POST", "/api/v1/auth/login", "", creds)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, ctx).Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestSignUpAndLogin(t *testing.T) {
	h := newServer(t, monitor.Status{})
	signUpAndLogin(t, h, "alice")

	dup := do(h, "POST", "/api/v1/auth/signup", "", map[string]string{"username": "alice", "password": "other"})
	assert.Equal(t, http.StatusConflict, dup.Response.StatusCode())
	assert.Equal(t, string(domain.ErrCodeConflict), decodeEnvelope(t, dup).Code)

	bad := do(h, "POST", "/api/v1/auth/login", "", map[string]string{"username": "alice", "password": "other"})
	assert.Equal(t, http.StatusUnauthorized, bad.Response.StatusCode())
	assert.Equal(t, "invalid credentials", decodeEnvelope(t, bad).Error)

	empty := do(h, "POST", "/api/v1/auth/signup", "", nil)
	assert.Equal(t, http.StatusBadRequest, empty.Response.StatusCode())

	long := do(h, "POST", "/api/v1/auth/signup", "", map[string]string{"username": "bob", "password": strings.Repeat("p", 80)})
	assert.Equal(t, http.StatusBadRequest, long.Response.StatusCode())
	assert.Equal(t, string(domain.ErrCodeInvalid), decodeEnvelope(t, long).Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newServer(t, monitor.Status{})
	for _, path := range []string{"/api/v1/tasks", "/api/v1/logs", "/api/v1/dashboard", "/api/v1/profile", "/api/v1/habits", "/api/v1/export/tasks.csv"} {
		ctx := do(h, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode(), path)
	}
	ctx := do(h, "GET", "/api/v1/tasks", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestTaskEndpoints(t *testing.T) {
	h := newServer(t, monitor.Status{})
	alice := signUpAndLogin(t, h, "alice")
	bob := signUpAndLogin(t, h, "bob")

	created := do(h, "POST", "/api/v1/tasks", alice, map[string]string{"name": "Read", "category": "Study", "priority": "High"})
	require.Equal(t, http.StatusCreated, created.Response.StatusCode())
	var task domain.Task
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, created).Data, &task))
	assert.Equal(t, domain.StatusPending, task.Status)

	invalid := do(h, "POST", "/api/v1/tasks", alice, map[string]string{"name": "x", "category": "Chores", "priority": "High"})
	assert.Equal(t, http.StatusBadRequest, invalid.Response.StatusCode())

	path := fmt.Sprintf("/api/v1/tasks/%d/status", task.ID)
	foreign := do(h, "PATCH", path, bob, map[string]string{"status": "Completed"})
	assert.Equal(t, http.StatusNotFound, foreign.Response.StatusCode())

	updated := do(h, "PATCH", path, alice, map[string]string{"status": "Completed"})
	assert.Equal(t, http.StatusOK, updated.Response.StatusCode())

	badID := do(h, "PATCH", "/api/v1/tasks/abc/status", alice, map[string]string{"status": "Completed"})
	assert.Equal(t, http.StatusBadRequest, badID.Response.StatusCode())

	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, do(h, "GET", "/api/v1/tasks", alice, nil)).Data, &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.StatusCompleted, tasks[0].Status)

	require.NoError(t, json.Unmarshal(decodeEnvelope(t, do(h, "GET", "/api/v1/tasks", bob, nil)).Data, &tasks))
	assert.Empty(t, tasks)
}

func TestLogsAndDashboard(t *testing.T) {
	h := newServer(t, monitor.Status{})
	alice := signUpAndLogin(t, h, "alice")

	ok := do(h, "POST", "/api/v1/logs", alice, map[string]interface{}{"hours": 2.5, "notes": "deep work", "mood": 4})
	require.Equal(t, http.StatusCreated, ok.Response.StatusCode())

	badMood := do(h, "POST", "/api/v1/logs", alice, map[string]interface{}{"hours": 1, "mood": 9})
	assert.Equal(t, http.StatusBadRequest, badMood.Response.StatusCode())

	require.Equal(t, http.StatusCreated, do(h, "POST", "/api/v1/tasks", alice,
		map[string]string{"name": "Run", "category": "Fitness", "priority": "Low", "status": "Completed"}).Response.StatusCode())

	ctx := do(h, "GET", "/api/v1/dashboard", alice, nil)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	var d domain.Dashboard
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, ctx).Data, &d))
	assert.Equal(t, 1, d.CompletedCount)
	assert.Equal(t, 1, d.TotalCount)
	assert.Equal(t, 2.5, d.TotalHours)
	assert.Equal(t, 1, d.CurrentStreak)

	profile := do(h, "GET", "/api/v1/profile", alice, nil)
	assert.Equal(t, http.StatusOK, profile.Response.StatusCode())
	assert.Contains(t, string(profile.Response.Body()), `"username":"alice"`)
}

func TestHabitEndpoints(t *testing.T) {
	h := newServer(t, monitor.Status{})
	alice := signUpAndLogin(t, h, "alice")
	bob := signUpAndLogin(t, h, "bob")

	created := do(h, "POST", "/api/v1/habits", alice, map[string]string{"title": "Stretch"})
	require.Equal(t, http.StatusCreated, created.Response.StatusCode())
	var habit domain.Habit
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, created).Data, &habit))
	require.NotZero(t, habit.ID)

	blank := do(h, "POST", "/api/v1/habits", alice, map[string]string{"title": " "})
	assert.Equal(t, http.StatusBadRequest, blank.Response.StatusCode())

	path := fmt.Sprintf("/api/v1/habits/%d/done", habit.ID)
	assert.Equal(t, http.StatusNotFound, do(h, "PUT", path, bob, nil).Response.StatusCode())
	assert.Equal(t, http.StatusBadRequest, do(h, "PUT", "/api/v1/habits/abc/done", alice, nil).Response.StatusCode())

	for i := 0; i < 2; i++ {
		done := do(h, "PUT", path, alice, nil)
		require.Equal(t, http.StatusOK, done.Response.StatusCode())
		var st domain.HabitStatus
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, done).Data, &st))
		assert.True(t, st.DoneToday)
		assert.Equal(t, 1, st.Streak)
	}

	var list []domain.HabitStatus
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, do(h, "GET", "/api/v1/habits", alice, nil)).Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Stretch", list[0].Title)

	var d domain.Dashboard
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, do(h, "GET", "/api/v1/dashboard", alice, nil)).Data, &d))
	assert.Equal(t, 1, d.HabitCount)
	assert.Equal(t, 1, d.HabitsDoneToday)

	var bobs []domain.HabitStatus
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, do(h, "GET", "/api/v1/habits", bob, nil)).Data, &bobs))
	assert.Empty(t, bobs)
}

func TestExportDownloads(t *testing.T) {
	h := newServer(t, monitor.Status{})
	alice := signUpAndLogin(t, h, "alice")
	require.Equal(t, http.StatusCreated, do(h, "POST", "/api/v1/tasks", alice,
		map[string]string{"name": "Read", "category": "Study", "priority": "High"}).Response.StatusCode())

	ctx := do(h, "GET", "/api/v1/export/tasks.csv", alice, nil)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Header.Peek("Content-Disposition")), "tasks.csv")
	lines := strings.Split(strings.TrimSpace(string(ctx.Response.Body())), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(export.TaskHeader, ","), lines[0])

	logs := do(h, "GET", "/api/v1/export/logs.csv", alice, nil)
	require.Equal(t, http.StatusOK, logs.Response.StatusCode())
	assert.Equal(t, strings.Join(export.LogHeader, ","), strings.TrimSpace(string(logs.Response.Body())))
}

func TestLogoutRevokesToken(t *testing.T) {
	h := newServer(t, monitor.Status{})
	alice := signUpAndLogin(t, h, "alice")

	refreshed := do(h, "POST", "/api/v1/auth/refresh", alice, map[string]int{"ttl_seconds": 1 << 30})
	require.Equal(t, http.StatusOK, refreshed.Response.StatusCode())
	var res struct {
		Session domain.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, refreshed).Data, &res))
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.Session.ExpiresAt, time.Minute)

	require.Equal(t, http.StatusOK, do(h, "POST", "/api/v1/auth/logout", alice, nil).Response.StatusCode())
	assert.Equal(t, http.StatusUnauthorized, do(h, "GET", "/api/v1/tasks", alice, nil).Response.StatusCode())
}

func TestHealth(t *testing.T) {
	healthy := newServer(t, monitor.Status{Storage: true, Sessions: true, LastCheck: time.Now()})
	assert.Equal(t, http.StatusOK, do(healthy, "GET", "/health", "", nil).Response.StatusCode())

	degraded := newServer(t, monitor.Status{Storage: true})
	ctx := do(degraded, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, ctx.Response.StatusCode())
	assert.Equal(t, "DEGRADED", decodeEnvelope(t, ctx).Code)
}
