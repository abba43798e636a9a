package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/niyam-buddy/internal/adapters/handler/http"
	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/storage"
	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/upstream"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
)

const backendToken = "backend-jwt"

// fakeBackend plays the study-tracker REST API.
type fakeBackend struct {
	mu      sync.Mutex
	logs    []map[string]any
	routine map[string]any
	saves   int
	failing bool
	revoked bool
}

func (f *fakeBackend) set(change func(*fakeBackend)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	change(f)
}

func (f *fakeBackend) snapshot() (int, map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves, f.routine
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			revoked := f.revoked
			f.mu.Unlock()
			if revoked || r.Header.Get("Authorization") != "Bearer "+backendToken {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"jwt expired"}`))
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("/api/user/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": backendToken,
			"user":  map[string]any{"_id": "u1", "name": "Asha", "email": body["email"], "createdAt": "2024-01-02T00:00:00.000Z"},
		})
	})

	mux.HandleFunc("/api/todaylog/all", authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"data": f.logs})
	}))

	mux.HandleFunc("/api/todaylog/add", authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		defer f.mu.Unlock()
		body["date"] = time.Now().UTC().Format(time.RFC3339)
		f.logs = append(f.logs, body)
		w.WriteHeader(http.StatusCreated)
	}))

	mux.HandleFunc("/api/routine", authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.routine)
	}))

	mux.HandleFunc("/api/save-routine", authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var body struct {
			Schedule map[string]any `json:"schedule"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.routine = body.Schedule
		f.saves++
	}))

	return mux
}

type client struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			c.cookie = ck
		}
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func setupApp(t *testing.T, backend *fakeBackend) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	nullLogger, _ := test.NewNullLogger()
	logger := logrus.NewEntry(nullLogger)

	api := upstream.NewClient(srv.URL, 2*time.Second, upstream.WithLogger(logger))
	tokens := services.NewTokenService("router-test-secret", "niyam-test", time.Hour)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(services.NewAuthService(api, logger)),
		StudyHandler:   adapterHTTP.NewStudyHandler(services.NewStudyService(api, nil, logger)),
		RoutineHandler: adapterHTTP.NewRoutineHandler(services.NewRoutineEditor(api, logger)),
		GoalHandler:    adapterHTTP.NewGoalHandler(services.NewGoalService(api, nil, logger)),
		ContactHandler: adapterHTTP.NewContactHandler(services.NewContactService(api, logger)),
		TokenService:   tokens,
		Sessions:       storage.NewMemoryProvider(),
		Logger:         logger,
		StartTime:      time.Now(),
	})

	return &client{t: t, router: router}
}

func login(t *testing.T, c *client) {
	t.Helper()
	w := c.do(http.MethodPost, "/app/auth/login", map[string]string{"email": "asha@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouter_AuthFlow(t *testing.T) {
	t.Run("Guard should reject anonymous visitors", func(t *testing.T) {
		c := setupApp(t, &fakeBackend{})

		w := c.do(http.MethodGet, "/app/dashboard", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "/auth", decode(t, w)["redirect"])
	})

	t.Run("Wrong password should say invalid credentials", func(t *testing.T) {
		c := setupApp(t, &fakeBackend{})

		w := c.do(http.MethodPost, "/app/auth/login", map[string]string{"email": "asha@example.com", "password": "wrong1"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid email or password", decode(t, w)["error"])
	})

	t.Run("Malformed email should be rejected before the backend", func(t *testing.T) {
		c := setupApp(t, &fakeBackend{})

		w := c.do(http.MethodPost, "/app/auth/login", map[string]string{"email": "asha", "password": "secret1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Login then logout", func(t *testing.T) {
		c := setupApp(t, &fakeBackend{})
		login(t, c)

		w := c.do(http.MethodGet, "/app/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Asha", decode(t, w)["name"])

		w = c.do(http.MethodPost, "/app/auth/logout", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = c.do(http.MethodGet, "/app/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouter_TodayAndDashboard(t *testing.T) {
	backend := &fakeBackend{}
	c := setupApp(t, backend)
	login(t, c)

	w := c.do(http.MethodPost, "/app/today", map[string]any{"time": 2.5, "message": "Algebra"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	week := decode(t, w)["week"].(map[string]any)
	assert.Equal(t, 2.5, week["total_hours"])

	w = c.do(http.MethodPost, "/app/today", map[string]any{"time": "30", "message": "Too much"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodGet, "/app/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)["stats"].(map[string]any)
	assert.Equal(t, 2.5, stats["total_hours"])
	assert.Equal(t, float64(1), stats["streak"])

	w = c.do(http.MethodGet, "/app/dashboard/calendar?month=1999-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cal := decode(t, w)
	assert.Equal(t, float64(2024), cal["year"])
	assert.Equal(t, float64(1), cal["month"])
	assert.Equal(t, false, cal["can_prev"])

	w = c.do(http.MethodGet, "/app/dashboard/calendar?month=January", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodGet, "/app/dashboard/calendar/jump?year=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_ViewerTimezone(t *testing.T) {
	ahead, err := time.LoadLocation("Pacific/Kiritimati")
	require.NoError(t, err)
	behind, err := time.LoadLocation("Etc/GMT+12")
	require.NoError(t, err)

	c := setupApp(t, &fakeBackend{})
	login(t, c)

	todayIn := func(loc *time.Location) string {
		return time.Now().In(loc).Format("2006-01-02")
	}
	weekEnd := func(w *httptest.ResponseRecorder) string {
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode(t, w)["week"].(map[string]any)["end_date"].(string)
	}

	t.Run("Success: Today follows the zone in the query", func(t *testing.T) {
		w := c.do(http.MethodGet, "/app/today?tz="+url.QueryEscape("Pacific/Kiritimati"), nil)
		assert.Equal(t, todayIn(ahead), weekEnd(w))

		w = c.do(http.MethodGet, "/app/today?tz="+url.QueryEscape("Etc/GMT+12"), nil)
		assert.Equal(t, todayIn(behind), weekEnd(w))
	})

	t.Run("Success: The zone is remembered by the session", func(t *testing.T) {
		w := c.do(http.MethodGet, "/app/today", nil)
		assert.Equal(t, todayIn(behind), weekEnd(w))
	})

	t.Run("Error: Unknown zone is rejected", func(t *testing.T) {
		w := c.do(http.MethodGet, "/app/today?tz=Mars/Olympus", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = c.do(http.MethodGet, "/app/today", nil)
		assert.Equal(t, todayIn(behind), weekEnd(w))
	})
}

func TestRouter_RoutineEditor(t *testing.T) {
	backend := &fakeBackend{}
	c := setupApp(t, backend)
	login(t, c)

	w := c.do(http.MethodGet, "/app/routine", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, decode(t, w)["editing"])

	entry := map[string]string{"day": "Monday", "startTime": "09:00", "endTime": "10:00", "subject": "Math"}

	w = c.do(http.MethodPost, "/app/routine/entries", entry)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = c.do(http.MethodPost, "/app/routine/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodPost, "/app/routine/entries", entry)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/app/routine/entries", map[string]string{"day": "Monday", "startTime": "11:00", "endTime": "10:00", "subject": "Art"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "end time must be after start time", decode(t, w)["error"])

	backend.set(func(f *fakeBackend) { f.failing = true })
	w = c.do(http.MethodPost, "/app/routine/save", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to save routine", decode(t, w)["error"])

	w = c.do(http.MethodGet, "/app/routine", nil)
	state := decode(t, w)
	assert.Equal(t, true, state["editing"], "failed save keeps edit mode")

	backend.set(func(f *fakeBackend) { f.failing = false })
	w = c.do(http.MethodPost, "/app/routine/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	saves, routine := backend.snapshot()
	assert.Equal(t, 1, saves)
	monday := routine["Monday"].([]any)
	assert.Len(t, monday, 1)

	backend.set(func(f *fakeBackend) {
		f.routine = map[string]any{
			"Tuesday": []map[string]string{{"startTime": "07:00", "endTime": "08:00", "subject": "Physics"}},
		}
	})
	w = c.do(http.MethodGet, "/app/routine", nil)
	require.Equal(t, http.StatusOK, w.Code)
	state = decode(t, w)
	schedule := state["schedule"].(map[string]any)
	assert.Len(t, schedule["Tuesday"], 1, "view mode shows changes saved elsewhere")
	assert.Empty(t, schedule["Monday"])

	w = c.do(http.MethodDelete, "/app/routine/entries/Monday/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_ExpiredBackendSession(t *testing.T) {
	backend := &fakeBackend{}
	c := setupApp(t, backend)
	login(t, c)

	backend.set(func(f *fakeBackend) { f.revoked = true })

	w := c.do(http.MethodGet, "/app/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Session expired. Please login again.", body["error"])
	assert.Equal(t, "/auth", body["redirect"])

	// The local session survives; only a new login replaces it.
	w = c.do(http.MethodGet, "/app/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_PublicPages(t *testing.T) {
	c := setupApp(t, &fakeBackend{})

	w := c.do(http.MethodGet, "/app/pages/privacy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Privacy Policy", decode(t, w)["title"])

	w = c.do(http.MethodGet, "/app/pages/terms", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/app/pages/cookies", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "uptime"))
}
