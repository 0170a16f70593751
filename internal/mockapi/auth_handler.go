package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

type AuthHandler struct {
	store  *Store
	issuer *TokenIssuer
}

func NewAuthHandler(store *Store, issuer *TokenIssuer) *AuthHandler {
	return &AuthHandler{store: store, issuer: issuer}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a seeded account and answers with the flat
// {token, ...profile} payload the dashboard expects.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.store.FindUserByEmail(req.Email)
	if err != nil {
		// Do not reveal whether the account exists.
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return domain.ErrInvalidCredentials
	}

	token, err := h.issuer.Issue(&user.UserProfile)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// Logout acknowledges the teardown. The mock keeps no server-side session
// state, mirroring a stateless-JWT backend.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Refresh issues a fresh access token for the (still valid) bearer.
func (h *AuthHandler) Refresh(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	user, err := h.store.FindUserByID(userID)
	if err != nil {
		return domain.ErrUnauthorized
	}

	token, err := h.issuer.Issue(&user.UserProfile)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"accessToken": token})
}

// Me resolves the bearer into a flat profile object.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	user, err := h.store.FindUserByID(userID)
	if err != nil {
		return domain.ErrUnauthorized
	}
	return c.JSON(http.StatusOK, user.UserProfile)
}
