package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *test.Hook) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewClient(srv.URL+"/", 2*time.Second, WithLogger(logrus.NewEntry(logger))), hook
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestClient_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Server message is kept", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusBadRequest, `{"message":"OTP expired"}`))

		err := c.VerifyPasswordResetOTP(ctx, domain.PasswordReset{})

		assert.Equal(t, http.StatusBadRequest, StatusCode(err))
		assert.Equal(t, "OTP expired", domain.UserMessage(err))
	})

	t.Run("Error field is used when message is missing", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusConflict, `{"error":"email already registered"}`))

		err := c.SendRegistrationOTP(ctx, domain.Registration{})

		assert.Equal(t, "email already registered", err.Error())
	})

	t.Run("Non-JSON body", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusInternalServerError, `<html>oops</html>`))

		err := c.SubmitContact(ctx, "jwt", domain.ContactMessage{Message: "hi"})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Empty(t, apiErr.ServerMessage())
		assert.Equal(t, "backend responded with status 500", err.Error())
	})

	t.Run("401 means the session expired", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusUnauthorized, `{"message":"jwt expired"}`))

		_, err := c.ListLogs(ctx, "stale")

		assert.ErrorIs(t, err, domain.ErrSessionExpired)
		assert.Equal(t, "Session expired. Please login again.", domain.UserMessage(err))
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusNotFound, `{}`))

		err := c.DeleteGoal(ctx, "jwt", "missing")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Backend unreachable", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		c := NewClient("http://127.0.0.1:1", time.Second, WithLogger(logrus.NewEntry(logger)))

		_, err := c.ListGoals(ctx, "jwt")

		assert.ErrorIs(t, err, ErrTransport)
		assert.Zero(t, StatusCode(err))
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := c.ListLogs(cctx, "jwt")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Token and user", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/user/login", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"))

			var creds domain.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "asha@example.com", creds.Email)

			respond(http.StatusOK, `{"token":"jwt","user":{"_id":"u1","name":"Asha"}}`)(w, r)
		})

		sess, err := c.Login(ctx, domain.Credentials{Email: "asha@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, "jwt", sess.Token)
		assert.Equal(t, "Asha", sess.User.DisplayName())
	})

	t.Run("Error: Response without token", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusOK, `{"user":{}}`))

		_, err := c.Login(ctx, domain.Credentials{})

		assert.ErrorIs(t, err, errMissingToken)
	})

	t.Run("Success: Verify without token returns no session", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusOK, `{"message":"verified"}`))

		sess, err := c.VerifyRegistrationOTP(ctx, domain.RegistrationVerification{})

		require.NoError(t, err)
		assert.Nil(t, sess)
	})
}

func TestClient_ListLogs(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Bearer token and malformed records skipped", func(t *testing.T) {
		c, hook := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
			respond(http.StatusOK, `{"data":[
				{"_id":"1","date":"2024-03-13T10:00:00.000Z","time":"2","message":"Maths"},
				"garbage",
				{"_id":"3","date":"bad","time":"x"}
			]}`)(w, r)
		})

		logs, err := c.ListLogs(ctx, "jwt")

		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, 2.0, logs[0].Hours)
		assert.False(t, logs[1].HasDate())
		assert.Zero(t, logs[1].Hours)

		warned := false
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.WarnLevel {
				warned = true
			}
		}
		assert.True(t, warned)
	})

	t.Run("Success: Non-array data is an empty list", func(t *testing.T) {
		for _, body := range []string{`{"data":null}`, `{"data":{}}`, `{}`, ``} {
			c, _ := newTestClient(t, respond(http.StatusOK, body))

			logs, err := c.ListLogs(ctx, "jwt")

			require.NoError(t, err, body)
			assert.NotNil(t, logs, body)
			assert.Empty(t, logs, body)
		}
	})

	t.Run("Success: AddLog sends hours as text", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "1.5", body["time"])
			assert.Equal(t, "Physics", body["message"])
			w.WriteHeader(http.StatusCreated)
		})

		assert.NoError(t, c.AddLog(ctx, "jwt", 1.5, "Physics"))
	})
}

func TestClient_Goals(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"Bare array", `[{"_id":"g1","title":"Read"}]`, 1},
		{"Envelope", `{"data":[{"_id":"g1"},{"_id":"g2"}]}`, 2},
		{"Envelope without data", `{}`, 0},
		{"Null", `null`, 0},
		{"Empty body", ``, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, respond(http.StatusOK, tt.body))

			goals, err := c.ListGoals(ctx, "jwt")

			require.NoError(t, err)
			assert.NotNil(t, goals)
			assert.Len(t, goals, tt.want)
		})
	}

	t.Run("One goal with a broken date does not hide the others", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusOK, `[{"_id":"g1","title":"Read","createdAt":"2024-03-01T00:00:00.000Z"},{"_id":"g2","title":"Write","createdAt":""}]`))

		goals, err := c.ListGoals(ctx, "jwt")

		require.NoError(t, err)
		require.Len(t, goals, 2)
		assert.False(t, goals[0].CreatedAt.IsZero())
		assert.True(t, goals[1].CreatedAt.IsZero())
	})

	t.Run("Create sends only the goal fields", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{
				"title":       "Read",
				"description": "",
				"targetDays":  float64(7),
				"completed":   false,
				"progress":    float64(0),
			}, body)
			respond(http.StatusCreated, `{"_id":"g1","title":"Read","targetDays":7,"createdAt":"2024-03-01T00:00:00.000Z"}`)(w, r)
		})

		created, err := c.CreateGoal(ctx, "jwt", &domain.Goal{Title: "Read", TargetDays: 7})

		require.NoError(t, err)
		assert.Equal(t, "g1", created.ID)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("Update escapes the id", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/goal/a%2Fb", r.URL.RawPath)
			w.WriteHeader(http.StatusOK)
		})
		done := true

		assert.NoError(t, c.UpdateGoal(ctx, "jwt", "a/b", domain.GoalUpdate{Completed: &done}))
	})
}

func TestClient_Routine(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Bare mapping", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusOK, `{"Monday":[{"startTime":"09:00","endTime":"10:00","subject":"Maths"}],"Funday":[]}`))

		r, err := c.GetRoutine(ctx, "jwt")

		require.NoError(t, err)
		assert.Len(t, r, 7)
		require.Len(t, r["Monday"], 1)
		assert.Equal(t, "09:00 - 10:00", r["Monday"][0].Time)
	})

	t.Run("Success: Schedule envelope", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusOK, `{"schedule":{"Friday":[{"startTime":"14:00","endTime":"15:00","subject":"Art","time":"14:00 - 15:00"}]}}`))

		r, err := c.GetRoutine(ctx, "jwt")

		require.NoError(t, err)
		assert.Len(t, r["Friday"], 1)
	})

	t.Run("Success: Null is an empty week", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusOK, `null`))

		r, err := c.GetRoutine(ctx, "jwt")

		require.NoError(t, err)
		assert.Len(t, r, 7)
		assert.True(t, r.IsEmpty())
	})

	t.Run("Success: Save wraps in schedule", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/save-routine", r.URL.Path)
			var body map[string]domain.Routine
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Len(t, body["schedule"], 7)
			w.WriteHeader(http.StatusOK)
		})

		assert.NoError(t, c.SaveRoutine(ctx, "jwt", domain.Routine{"monday": {{StartTime: "09:00", EndTime: "10:00", Subject: "Maths"}}}))
	})
}
