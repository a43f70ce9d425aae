package web

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dkolesnikov/tasklist/internal/server/auth"
	"github.com/dkolesnikov/tasklist/internal/server/forms"
)

type sessionResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func (s *Server) login(c *fiber.Ctx) error {
	req := formRequest(c)

	username := strings.TrimSpace(req.Values.Get(forms.LoginFormName + "[username]"))
	password := req.Values.Get(forms.LoginFormName + "[password]")

	if username == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
			Error:   "bad_request",
			Message: "Username and password are required",
		})
	}

	user, err := s.rm.Users(s.db).GetByUsername(c.UserContext(), username)
	if err != nil || !s.hasher.Verify(user.PasswordHash, password) {
		return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{
			Error:   "unauthorized",
			Message: "Invalid username or password",
		})
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.logger.Error(c.UserContext(), "token signing error", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(s.tokenValidity),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(sessionResponse{ID: user.ID, Username: user.Username, Roles: user.Roles})
}

func (s *Server) logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.SendStatus(fiber.StatusNoContent)
}
