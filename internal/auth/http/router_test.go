package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lunamart/lunamart/internal/auth/domain"
	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/internal/auth/store"
	"github.com/lunamart/lunamart/internal/auth/store/drivers/sqlite"
	"github.com/lunamart/lunamart/pkg/authapi"
	"github.com/lunamart/lunamart/pkg/cryptox"
	"github.com/lunamart/lunamart/pkg/idx"
	"github.com/lunamart/lunamart/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "lunamart-http-test")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.key"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// captureMailer records the last reset code instead of sending mail.
type captureMailer struct {
	code string
}

func (m *captureMailer) SendResetCode(ctx context.Context, email, code string) error {
	m.code = code
	return nil
}

type testEnv struct {
	router   *Router
	store    store.Store
	sessions *service.SessionService
	mailer   *captureMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	access, err := jwtx.NewHS256([]byte("access-secret-for-tests"), "lunamart-auth")
	require.NoError(t, err)
	refresh, err := jwtx.NewHS256([]byte("refresh-secret-for-tests"), "lunamart-auth")
	require.NoError(t, err)

	sessions := &service.SessionService{
		Store:      st,
		Access:     access,
		Refresh:    refresh,
		Issuer:     "lunamart-auth",
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}
	mailer := &captureMailer{}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	router := NewRouter("test", st, logger)
	router.SessionService = sessions
	router.ResetService = &service.ResetService{
		Store:       st,
		Mailer:      mailer,
		OtpTTL:      10 * time.Minute,
		ResetWindow: 30 * time.Minute,
	}
	router.UserService = &service.UserService{Store: st}
	router.ApplyRoutes()

	return &testEnv{router: router, store: st, sessions: sessions, mailer: mailer}
}

var clientSeq atomic.Int64

// do performs a request against the router with a unique client IP so the
// per-IP rate limiter never interferes across calls.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = fmt.Sprintf("10.1.%d.%d:4000", clientSeq.Add(1)/256%256, clientSeq.Load()%256)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func (e *testEnv) signup(t *testing.T, email, password string) authapi.SessionResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/v1/auth/signup", "", authapi.SignupRequest{Email: email, Password: password})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[authapi.SessionResponse](t, rec)
}

func refreshCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == authapi.RefreshCookieName {
			return c
		}
	}
	return nil
}

func TestSignupEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/auth/signup", "", authapi.SignupRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody[authapi.SessionResponse](t, rec)
	require.Equal(t, "alice@example.com", resp.User.Email)
	require.False(t, resp.User.IsAdmin)
	require.NotEmpty(t, resp.AccessToken)

	t.Run("refresh token rides an HttpOnly cookie, not the body", func(t *testing.T) {
		c := refreshCookie(rec)
		require.NotNil(t, c)
		require.True(t, c.HttpOnly)
		require.NotEmpty(t, c.Value)
		require.NotContains(t, rec.Body.String(), c.Value)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/signup", "", authapi.SignupRequest{
			Email:    "alice@example.com",
			Password: "password456",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
		e := decodeBody[authapi.APIError](t, rec)
		require.Equal(t, authapi.ErrorCodeEmailTaken, e.Code)
	})

	t.Run("malformed payloads bounce", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/signup", "", authapi.SignupRequest{
			Email:    "not-an-email",
			Password: "password123",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = env.do(t, http.MethodPost, "/v1/auth/signup", "", authapi.SignupRequest{
			Email:    "short@example.com",
			Password: "short",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "bob@example.com", "password123")

	t.Run("valid credentials", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/login", "", authapi.LoginRequest{
			Email:    "bob@example.com",
			Password: "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, refreshCookie(rec))
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		rec1 := env.do(t, http.MethodPost, "/v1/auth/login", "", authapi.LoginRequest{
			Email:    "bob@example.com",
			Password: "wrong password",
		})
		rec2 := env.do(t, http.MethodPost, "/v1/auth/login", "", authapi.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		require.Equal(t, http.StatusUnauthorized, rec1.Code)
		require.Equal(t, http.StatusUnauthorized, rec2.Code)
		require.JSONEq(t, rec1.Body.String(), rec2.Body.String())
	})
}

func TestGateOnProtectedRoute(t *testing.T) {
	env := newTestEnv(t)
	sess := env.signup(t, "carol@example.com", "password123")

	body := authapi.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456"}

	t.Run("missing token", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/change-password", "", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		e := decodeBody[authapi.APIError](t, rec)
		require.Equal(t, authapi.ErrorCodeMissingCredential, e.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/change-password", "garbage", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		e := decodeBody[authapi.APIError](t, rec)
		require.Equal(t, authapi.ErrorCodeInvalidSignature, e.Code)
	})

	t.Run("valid token passes the gate", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/change-password", sess.AccessToken, body)
		require.Equal(t, http.StatusOK, rec.Code)

		// The change kept the session alive.
		rec = env.do(t, http.MethodGet, "/v1/auth/check-auth-status", sess.AccessToken, nil)
		status := decodeBody[authapi.AuthStatusResponse](t, rec)
		require.True(t, status.IsLoggedIn)
	})
}

// expireAccessToken rewrites the session row so its access fingerprint
// points at an already-expired token, simulating TTL lapse.
func expireAccessToken(t *testing.T, env *testEnv, userID, liveToken string) string {
	t.Helper()
	ctx := context.Background()

	expired, err := env.sessions.Access.Sign(jwtx.NewClaims(userID, false, -time.Minute, env.sessions.Issuer, time.Now().UTC()))
	require.NoError(t, err)

	sess, err := env.store.Sessions().GetSessionByAccessFP(ctx, cryptox.FingerprintToken(liveToken))
	require.NoError(t, err)
	require.NoError(t, env.store.Sessions().UpdateSessionAccessFP(ctx, sess.ID, cryptox.FingerprintToken(expired)))
	return expired
}

func TestSilentRefreshHeader(t *testing.T) {
	env := newTestEnv(t)
	sess := env.signup(t, "dave@example.com", "password123")
	expired := expireAccessToken(t, env, sess.User.ID, sess.AccessToken)

	rec := env.do(t, http.MethodPost, "/v1/auth/change-password", expired, authapi.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "password456",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	newToken := rec.Header().Get(authapi.NewAccessTokenHeader)
	require.NotEmpty(t, newToken, "refresh must surface the replacement token")
	require.NotEqual(t, expired, newToken)

	t.Run("replacement token works without another refresh", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/auth/check-auth-status", newToken, nil)
		status := decodeBody[authapi.AuthStatusResponse](t, rec)
		require.True(t, status.IsLoggedIn)
	})

	t.Run("superseded token is denied", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/change-password", expired, authapi.ChangePasswordRequest{
			CurrentPassword: "password456",
			NewPassword:     "password789",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		e := decodeBody[authapi.APIError](t, rec)
		require.Equal(t, authapi.ErrorCodeRevokedToken, e.Code)
	})
}

func TestExpiredRefreshIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	sess := env.signup(t, "erin@example.com", "password123")

	// Replace the stored refresh token with an expired one, then expire
	// the access token too.
	ctx := context.Background()
	row, err := env.store.Sessions().GetSessionByAccessFP(ctx, cryptox.FingerprintToken(sess.AccessToken))
	require.NoError(t, err)
	require.NoError(t, env.store.Sessions().DeleteSession(ctx, row.ID))

	now := time.Now().UTC()
	expiredAccess, err := env.sessions.Access.Sign(jwtx.NewClaims(sess.User.ID, false, -time.Minute, env.sessions.Issuer, now))
	require.NoError(t, err)
	expiredRefresh, err := env.sessions.Refresh.Sign(jwtx.NewClaims(sess.User.ID, false, -time.Minute, env.sessions.Issuer, now))
	require.NoError(t, err)

	row.RefreshToken = expiredRefresh
	row.AccessTokenFP = cryptox.FingerprintToken(expiredAccess)
	require.NoError(t, env.store.Sessions().CreateSession(ctx, row))

	rec := env.do(t, http.MethodPost, "/v1/auth/change-password", expiredAccess, authapi.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "password456",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	e := decodeBody[authapi.APIError](t, rec)
	require.Equal(t, authapi.ErrorCodeExpiredRefreshToken, e.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	env := newTestEnv(t)
	sess := env.signup(t, "frank@example.com", "password123")

	rec := env.do(t, http.MethodPost, "/v1/auth/logout", sess.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("clears the refresh cookie", func(t *testing.T) {
		c := refreshCookie(rec)
		require.NotNil(t, c)
		require.Empty(t, c.Value)
		require.Negative(t, c.MaxAge)
	})

	t.Run("token is revoked afterwards", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/auth/check-auth-status", sess.AccessToken, nil)
		status := decodeBody[authapi.AuthStatusResponse](t, rec)
		require.False(t, status.IsLoggedIn)
	})

	t.Run("repeat logout still succeeds", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/logout", sess.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("logout without a token succeeds", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/logout", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCheckAuthStatusNeverErrors(t *testing.T) {
	env := newTestEnv(t)
	sess := env.signup(t, "grace@example.com", "password123")

	cases := map[string]string{
		"no token":      "",
		"garbage token": "garbage",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/v1/auth/check-auth-status", token, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			status := decodeBody[authapi.AuthStatusResponse](t, rec)
			require.False(t, status.IsLoggedIn)
		})
	}

	t.Run("expired token reports logged out without refreshing", func(t *testing.T) {
		expired := expireAccessToken(t, env, sess.User.ID, sess.AccessToken)

		rec := env.do(t, http.MethodGet, "/v1/auth/check-auth-status", expired, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		status := decodeBody[authapi.AuthStatusResponse](t, rec)
		require.False(t, status.IsLoggedIn)
		require.Empty(t, rec.Header().Get(authapi.NewAccessTokenHeader))
	})
}

func TestAdminUsersEndpoint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.signup(t, "mallory@example.com", "password123")

	// Promote a second account to admin directly in the store; there is no
	// public endpoint for that.
	hash, err := cryptox.HashPassword("password123")
	require.NoError(t, err)
	adminUser := domain.User{
		ID:           idx.New().String(),
		Email:        "root@example.com",
		PasswordHash: hash,
		IsAdmin:      true,
	}
	require.NoError(t, env.store.Users().CreateUser(ctx, adminUser))
	adminPair, err := env.sessions.IssueSession(ctx, adminUser)
	require.NoError(t, err)

	t.Run("anonymous denied", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/admin/users", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/admin/users", user.AccessToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
		e := decodeBody[authapi.APIError](t, rec)
		require.Equal(t, authapi.ErrorCodeForbidden, e.Code)
	})

	t.Run("admin sees every user", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/admin/users", adminPair.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		users := decodeBody[[]authapi.UserInfo](t, rec)
		require.Len(t, users, 2)
	})
}

func TestResetFlowEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	sess := env.signup(t, "peggy@example.com", "old password 1")

	t.Run("unknown email gets 404", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/forgot-password", "", authapi.ForgotPasswordRequest{Email: "nobody@example.com"})
		require.Equal(t, http.StatusNotFound, rec.Code)
		e := decodeBody[authapi.APIError](t, rec)
		require.Equal(t, authapi.ErrorCodeEmailNotFound, e.Code)
	})

	rec := env.do(t, http.MethodPost, "/v1/auth/forgot-password", "", authapi.ForgotPasswordRequest{Email: "peggy@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.mailer.code, cryptox.ResetCodeDigits)

	t.Run("reset before verification is refused", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/reset-password", "", authapi.ResetPasswordRequest{
			Email:       "peggy@example.com",
			NewPassword: "new password 1",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		e := decodeBody[authapi.APIError](t, rec)
		require.Equal(t, authapi.ErrorCodeResetWindowExpired, e.Code)
	})

	t.Run("wrong code mismatches", func(t *testing.T) {
		wrong := "0000"
		if wrong == env.mailer.code {
			wrong = "0001"
		}
		rec := env.do(t, http.MethodPost, "/v1/auth/verify-otp", "", authapi.VerifyOtpRequest{
			Email: "peggy@example.com",
			Otp:   wrong,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		e := decodeBody[authapi.APIError](t, rec)
		require.Equal(t, authapi.ErrorCodeOtpMismatch, e.Code)
	})

	rec = env.do(t, http.MethodPost, "/v1/auth/verify-otp", "", authapi.VerifyOtpRequest{
		Email: "peggy@example.com",
		Otp:   env.mailer.code,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/v1/auth/reset-password", "", authapi.ResetPasswordRequest{
		Email:       "peggy@example.com",
		NewPassword: "new password 1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	t.Run("all sessions are revoked", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/auth/check-auth-status", sess.AccessToken, nil)
		status := decodeBody[authapi.AuthStatusResponse](t, rec)
		require.False(t, status.IsLoggedIn)
	})

	t.Run("only the new password logs in", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/login", "", authapi.LoginRequest{
			Email:    "peggy@example.com",
			Password: "old password 1",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = env.do(t, http.MethodPost, "/v1/auth/login", "", authapi.LoginRequest{
			Email:    "peggy@example.com",
			Password: "new password 1",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decodeBody[authapi.HealthResponse](t, rec)
	require.Equal(t, "ok", health.Status)

	rec = env.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health = decodeBody[authapi.HealthResponse](t, rec)
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
