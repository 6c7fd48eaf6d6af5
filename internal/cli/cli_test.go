package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindtrack/internal/api"
	"mindtrack/internal/domain/entity"
)

const aliceToken = "tok-alice"

var (
	alice = &entity.Identity{
		ID:          uuid.MustParse("5f0c6f0e-6f61-4c1d-9d0a-1b2c3d4e5f60"),
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Role:        entity.RoleUser,
		Active:      true,
	}
	readHabit = uuid.MustParse("0e1d2c3b-4a59-4687-9a0b-c1d2e3f4a5b6")
)

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()

	authed := func(r *http.Request) bool {
		c, err := r.Cookie(api.CookieName)
		return err == nil && c.Value == aliceToken
	}
	unauthorized := func(w http.ResponseWriter) {
		api.WriteJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "Session not found or expired", Code: "unauthenticated"})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+api.PathVerifyToken, func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			unauthorized(w)
			return
		}
		api.WriteJSON(w, http.StatusOK, api.UserResponse{User: alice})
	})
	mux.HandleFunc("POST "+api.PathLogin, func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != alice.Email || req.Password != "secret" {
			api.WriteJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid email or password", Code: "invalid_credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: api.CookieName, Value: aliceToken, Path: "/"})
		api.WriteJSON(w, http.StatusOK, api.UserResponse{Message: "Login successful", User: alice})
	})
	mux.HandleFunc("POST "+api.PathLogout, func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: api.CookieName, Value: "", Path: "/", MaxAge: -1})
		api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Logout successful"})
	})
	mux.HandleFunc("GET "+api.PathCatalog, func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			unauthorized(w)
			return
		}
		api.WriteJSON(w, http.StatusOK, entity.Catalog{
			Habits: []entity.Habit{{ID: readHabit, Name: "Read", Measurement: entity.MeasurementBoolean, IsActive: true}},
		})
	})
	mux.HandleFunc("GET "+api.PathHabitRecords, func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			unauthorized(w)
			return
		}
		rng, _ := entity.ParseDateRange(r.URL.Query().Get(api.ParamStartDate), r.URL.Query().Get(api.ParamEndDate))
		api.WriteJSON(w, http.StatusOK, api.HabitRecordsResponse{Records: []entity.HabitRecord{
			{HabitID: readHabit, Date: rng.End, Completed: true},
		}})
	})
	mux.HandleFunc("GET "+api.PathMoodRecords, func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			unauthorized(w)
			return
		}
		rng, _ := entity.ParseDateRange(r.URL.Query().Get(api.ParamStartDate), r.URL.Query().Get(api.ParamEndDate))
		api.WriteJSON(w, http.StatusOK, api.MoodRecordsResponse{Records: []entity.MoodRecord{
			{Date: rng.End, Score: 4},
		}})
	})
	mux.HandleFunc("GET "+api.PathAdminUsers, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("admin endpoint must not be called for a user role")
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("PUT "+api.PathAdminUser, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("admin endpoint must not be called for a user role")
		w.WriteHeader(http.StatusForbidden)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type harness struct {
	server      *httptest.Server
	sessionFile string
}

func newHarness(t *testing.T) *harness {
	return &harness{
		server:      fakeServer(t),
		sessionFile: filepath.Join(t.TempDir(), "session"),
	}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--server", h.server.URL, "--session-file", h.sessionFile))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoginPersistsSession(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "secret\n", "login", "--email", alice.Email)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Alice (user)")
	assert.Contains(t, out, "-> /dashboard")

	saved, err := os.ReadFile(h.sessionFile)
	require.NoError(t, err)
	assert.Equal(t, aliceToken, strings.TrimSpace(string(saved)))

	out, err = h.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice <alice@example.com>")

	_, err = h.run(t, "secret\n", "login", "--email", alice.Email)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already logged in")
}

func TestLoginRejected(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", "login", "--email", alice.Email, "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")

	_, statErr := os.Stat(h.sessionFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLogoutRemovesSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, saveToken(h.sessionFile, aliceToken))

	out, err := h.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "-> /login")

	_, statErr := os.Stat(h.sessionFile)
	assert.True(t, os.IsNotExist(statErr))

	out, err = h.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestOpen(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "open", "/reports")
	require.NoError(t, err)
	assert.Equal(t, "redirect_login -> /login\n", out)

	out, err = h.run(t, "", "open", "/register")
	require.NoError(t, err)
	assert.Equal(t, "allow /register\n", out)

	require.NoError(t, saveToken(h.sessionFile, aliceToken))

	out, err = h.run(t, "", "open", "/reports")
	require.NoError(t, err)
	assert.Equal(t, "allow /reports\n", out)

	out, err = h.run(t, "", "open", "/admin-panel")
	require.NoError(t, err)
	assert.Equal(t, "redirect_fallback -> /dashboard\n", out)

	out, err = h.run(t, "", "open", "/no-such-page")
	require.NoError(t, err)
	assert.Equal(t, "allow /dashboard\n", out)
}

func TestUsersRequiresAdmin(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, saveToken(h.sessionFile, aliceToken))

	out, err := h.run(t, "", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "redirect_fallback -> /dashboard")
}

func TestUserAccessRequiresAdmin(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, saveToken(h.sessionFile, aliceToken))

	out, err := h.run(t, "", "users", "access", alice.ID.String(), "--role", "admin")
	require.NoError(t, err)
	assert.Contains(t, out, "redirect_fallback -> /dashboard")

	_, err = h.run(t, "", "users", "access", alice.ID.String())
	assert.ErrorContains(t, err, "nothing to update")

	_, err = h.run(t, "", "users", "access", "not-a-uuid", "--active=false")
	assert.ErrorContains(t, err, "invalid user id")
}

func TestSummary(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, saveToken(h.sessionFile, aliceToken))

	out, err := h.run(t, "", "summary", "--from", "2024-01-01", "--to", "2024-01-03")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-01")
	assert.Regexp(t, `2024-01-03\s+1\s+4\.00`, out)
	assert.Contains(t, out, "active habits: 1")
}

func TestSummaryWhenLoggedOut(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "summary")
	require.Error(t, err)
	assert.Contains(t, out, "redirect_login -> /login")
}

func TestCorrelate(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, saveToken(h.sessionFile, aliceToken))

	out, err := h.run(t, "", "correlate", "--habits", readHabit.String(), "--from", "2024-01-01", "--to", "2024-01-03")
	require.NoError(t, err)
	assert.Contains(t, out, readHabit.String())
	assert.Contains(t, out, "4.00")

	_, err = h.run(t, "", "correlate", "--from", "2024-01-01", "--to", "2024-01-03")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "At least one habit")
}
