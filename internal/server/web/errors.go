package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dkolesnikov/tasklist/internal/common"
	"github.com/dkolesnikov/tasklist/internal/server/forms"
)

func (s *Server) internalError(c *fiber.Ctx, err error) error {
	s.logger.Error(c.UserContext(), "internal error",
		"error", err, "request_id", c.Locals(requestIDKey), "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

func (s *Server) notSubmitted(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
		Error:   "bad_request",
		Message: "The expected form was not submitted",
	})
}

func (s *Server) badFormName(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
		Error:   "bad_request",
		Message: "Malformed form name",
	})
}

// loadError maps entity-load failures to a response: unknown ids are 404,
// everything else is a logged 500.
func (s *Server) loadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{
			Error:   "not_found",
			Message: "No such resource",
		})
	}
	return s.internalError(c, err)
}

// checkIndexedName verifies that the posted form name is a well-formed
// indexed name carrying the expected label and row id. An empty name is
// fine (nothing was submitted); a present but malformed or mismatched one
// is rejected before any form processing runs.
func (s *Server) checkIndexedName(req forms.Request, label string, id int64) error {
	if req.FormName == "" {
		return nil
	}
	gotLabel, gotID, err := forms.ParseIndexedName(req.FormName)
	if err != nil {
		return err
	}
	if gotLabel != label || gotID != id {
		return forms.ErrMalformedFormName
	}
	return nil
}
