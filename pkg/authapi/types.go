package authapi

// NewAccessTokenHeader carries a silently refreshed access token back to the
// caller so it can be persisted without a second round trip.
const NewAccessTokenHeader = "X-New-Access-Token"

// RefreshCookieName is the HttpOnly cookie holding the refresh token.
const RefreshCookieName = "refresh_token"

// UserInfo is the public projection of a user record.
type UserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned by signup and login. The refresh token is
// delivered as an HttpOnly cookie, never in the body.
type SessionResponse struct {
	User        UserInfo `json:"user"`
	AccessToken string   `json:"accessToken"`
}

// AuthStatusResponse is the non-mutating probe result. It never reports an
// error for missing or invalid credentials.
type AuthStatusResponse struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	UserID     string `json:"userId,omitempty"`
	IsAdmin    bool   `json:"isAdmin,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=4,numeric"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// MessageResponse is the generic success envelope for flows that must not
// leak state, such as forgot-password.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
