package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sridip-de/mern-auth/internal/model"
	"github.com/sridip-de/mern-auth/internal/queue"
	"github.com/sridip-de/mern-auth/internal/repository"
	"github.com/sridip-de/mern-auth/internal/utils"
)

// UserStore is the credential-store contract the auth handler needs.
// *repository.UserRepo is the production implementation; tests supply
// an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash, userName string) (uint64, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByEmailOrUserName(ctx context.Context, email, userName string) (bool, error)
	FindByID(ctx context.Context, id uint64) (model.SafeUser, error)
	UpdateRefreshToken(ctx context.Context, id uint64, refreshToken string) error
}

// EventPublisher emits identity events to the message broker. Calls
// are best-effort: the handlers ignore publish errors so a broker
// outage never fails a request.
type EventPublisher interface {
	UserRegistered(ctx context.Context, e queue.UserRegisteredEvent) error
	UserLoggedIn(ctx context.Context, e queue.UserLoggedInEvent) error
}

// AuthHandler bundles dependencies for the identity endpoints.
// Events may be nil, in which case no events are published.
type AuthHandler struct {
	Users      UserStore
	Issuer     *utils.TokenIssuer
	Cookies    utils.SessionCookies
	Events     EventPublisher
	BcryptCost int
}

func NewAuthHandler(users UserStore, issuer *utils.TokenIssuer, cookies utils.SessionCookies, events EventPublisher, bcryptCost int) *AuthHandler {
	return &AuthHandler{Users: users, Issuer: issuer, Cookies: cookies, Events: events, BcryptCost: bcryptCost}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserName string `json:"userName"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// issueSession signs both session tokens and persists the refresh
// token. Both tokens are produced before anything is written, and the
// single-column update is the atomic commit point: on any failure the
// stored record is left exactly as it was.
func (h *AuthHandler) issueSession(ctx context.Context, u model.User) (utils.TokenPair, *utils.ApiError) {
	pair, err := h.Issuer.Issue(u)
	if err != nil {
		return utils.TokenPair{}, utils.ErrInternal("Token generation failed").WithCause(err)
	}
	if err := h.Users.UpdateRefreshToken(ctx, u.ID, pair.RefreshToken); err != nil {
		return utils.TokenPair{}, utils.ErrInternal("Token generation failed").WithCause(err)
	}
	return pair, nil
}

// Register creates a user, opens a session and responds 201 with the
// safe projection. Flow: validate -> uniqueness pre-check -> hash ->
// create -> reload safe projection -> issue+persist tokens -> attach
// cookies -> respond. Any failure is returned as a typed error for
// the funnel.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return utils.ErrValidation("Invalid request body").WithCause(err)
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.UserName = strings.TrimSpace(req.UserName)
	if req.Name == "" || req.Email == "" || strings.TrimSpace(req.Password) == "" || req.UserName == "" {
		return utils.ErrValidation("All fields are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Users.FindByEmailOrUserName(ctx, req.Email, req.UserName)
	if err != nil {
		return utils.ErrInternal("Create user failed").WithCause(err)
	}
	if exists {
		return utils.ErrConflict("User already exists")
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return utils.ErrInternal("Create user failed").WithCause(err)
	}

	id, err := h.Users.Create(ctx, req.Name, req.Email, hash, req.UserName)
	if err != nil {
		// A concurrent registration can win the uniqueness race
		// between the pre-check and the insert.
		if err == repository.ErrDuplicateUser {
			return utils.ErrConflict("User already exists")
		}
		return utils.ErrInternal("Create user failed").WithCause(err)
	}

	created, err := h.Users.FindByID(ctx, id)
	if err != nil {
		return utils.ErrInternal("User not created").WithCause(err)
	}

	pair, apiErr := h.issueSession(ctx, model.User{ID: id, Email: created.Email})
	if apiErr != nil {
		return apiErr
	}
	h.Cookies.Attach(c, pair)

	if h.Events != nil {
		// Best effort: a broker outage must not fail the registration.
		_ = h.Events.UserRegistered(ctx, queue.UserRegisteredEvent{
			UserID:       created.ID,
			Name:         created.Name,
			Email:        created.Email,
			UserName:     created.UserName,
			RegisteredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return utils.Respond(c, http.StatusCreated,
		echo.Map{"user": created}, "User registered successfully")
}

// Login verifies credentials, rotates the session and responds 200
// with the safe projection. The stored refresh token is only
// overwritten after the password check succeeds.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return utils.ErrValidation("Invalid request body").WithCause(err)
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || strings.TrimSpace(req.Password) == "" {
		return utils.ErrValidation("All fields are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrNotFound("User not found")
		}
		return utils.ErrInternal("Login failed").WithCause(err)
	}

	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return utils.ErrUnauthorized("Invalid credentials")
	}

	pair, apiErr := h.issueSession(ctx, u)
	if apiErr != nil {
		return apiErr
	}

	// Reload before attaching so a failed reload responds without
	// handing out the freshly rotated session cookies.
	safe, err := h.Users.FindByID(ctx, u.ID)
	if err != nil {
		return utils.ErrInternal("Login failed").WithCause(err)
	}
	h.Cookies.Attach(c, pair)

	if h.Events != nil {
		_ = h.Events.UserLoggedIn(ctx, queue.UserLoggedInEvent{
			UserID:     u.ID,
			Email:      u.Email,
			LoggedInAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return utils.Respond(c, http.StatusOK,
		echo.Map{"user": safe}, "Logged in successfully")
}

// Logout clears both session cookies and responds 200 with null
// data. It is a client-side cookie removal: the stored refresh token
// is not revoked, so it always succeeds whether or not a session
// existed.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Cookies.Clear(c)
	return utils.Respond(c, http.StatusOK, nil, "Logged out successfully")
}

// Me returns the safe projection of the authenticated user. The
// session middleware has already verified the access cookie and put
// the subject in the context.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return utils.ErrUnauthorized("Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	safe, err := h.Users.FindByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrNotFound("User not found")
		}
		return utils.ErrInternal("Load user failed").WithCause(err)
	}
	return utils.Respond(c, http.StatusOK, echo.Map{"user": safe}, "OK")
}
