package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dkolesnikov/tasklist/internal/server/auth"
	"github.com/dkolesnikov/tasklist/internal/server/models"
)

const (
	// sessionCookie carries the signed session JWT.
	sessionCookie = "session_token"

	actorKey     = "actor"
	requestIDKey = "request_id"

	requestIDHeader = "X-Request-Id"
)

// requestID tags every request with an id, reusing the inbound header when
// the caller already set one.
func (s *Server) requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.Set(requestIDHeader, id)
		return c.Next()
	}
}

// authenticate resolves the session cookie into a user and stores it in the
// request locals. A missing or invalid cookie is not an error here; routes
// that need a user enforce it via requireUser.
func (s *Server) authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(sessionCookie)
		if token == "" {
			return c.Next()
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			return c.Next()
		}

		user, err := s.rm.Users(s.db).GetByID(c.UserContext(), userID)
		if err != nil {
			return c.Next()
		}

		c.Locals(actorKey, user)
		return c.Next()
	}
}

func (s *Server) requireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if actorFromCtx(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errorResponse{
				Error:   "unauthorized",
				Message: "Authentication required",
			})
		}
		return c.Next()
	}
}

func (s *Server) requireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := actorFromCtx(c)
		if actor == nil || !actor.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(errorResponse{
				Error:   "forbidden",
				Message: "Admin role required",
			})
		}
		return c.Next()
	}
}

func actorFromCtx(c *fiber.Ctx) *models.User {
	actor, _ := c.Locals(actorKey).(*models.User)
	return actor
}
