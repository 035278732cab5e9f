package handlers

import (
	"errors"
	"log"
	"time"

	"quorumhub/internal/api"
	"quorumhub/internal/middleware"
	"quorumhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes from the contract.
// Login and logout stay unguarded: login establishes the session, and
// logout is idempotent whatever the caller holds.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Add(api.Contract.Auth.Login.Method, api.Contract.Auth.Login.Path, h.HandleLogin)
	router.Add(api.Contract.Auth.Logout.Method, api.Contract.Auth.Logout.Path, h.HandleLogout)
	router.Add(api.Contract.Auth.Me.Method, api.Contract.Auth.Me.Path, h.HandleMe)
}

// HandleLogin verifies credentials and sets the session cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var input api.LoginInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return badRequestBody(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationResponse(c, err)
	}

	user, token, err := h.authService.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid username or password",
			})
		}
		log.Printf("Error during login for user %s: %v", input.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Login failed",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.Status(api.Contract.Auth.Login.Success).JSON(user)
}

// HandleLogout destroys the session and clears the cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(middleware.SessionToken(c)); err != nil {
		log.Printf("Error during logout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Logout failed",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.Status(api.Contract.Auth.Logout.Success).JSON(fiber.Map{
		"message": "Logged out",
	})
}

// HandleMe returns the session's user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(middleware.SessionToken(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}
	return c.Status(api.Contract.Auth.Me.Success).JSON(user)
}
