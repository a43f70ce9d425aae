package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dkolesnikov/tasklist/internal/common"
	"github.com/dkolesnikov/tasklist/internal/server/authz"
	"github.com/dkolesnikov/tasklist/internal/server/flash"
	"github.com/dkolesnikov/tasklist/internal/server/forms"
	"github.com/dkolesnikov/tasklist/internal/server/listing"
	"github.com/dkolesnikov/tasklist/internal/server/models"
	"github.com/dkolesnikov/tasklist/internal/server/viewmodel"
)

func (s *Server) taskList(c *fiber.Ctx) error {
	filter := c.Query("filter")

	rows, err := s.queries.Tasks(c.UserContext(), listing.TaskFilter{Status: filter})
	if err != nil {
		if errors.Is(err, listing.ErrUnknownFilter) {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
				Error:   "bad_request",
				Message: "Unknown task filter",
			})
		}
		return s.internalError(c, err)
	}

	return c.JSON(viewmodel.AssembleTaskList(rows, filter, nil, nil))
}

func (s *Server) taskCreate(c *fiber.Ctx) error {
	req := formRequest(c)
	bag := flash.NewBag()

	fh, ok, err := s.tasks.Create(c.UserContext(), req, bag, actorFromCtx(c))
	if err != nil {
		return s.internalError(c, err)
	}
	if !fh.Form().Submitted {
		return s.notSubmitted(c)
	}
	if !ok {
		status := fiber.StatusOK
		if !fh.Form().Valid() {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(viewmodel.AssembleTaskForm(fh.Form(), 0, bag))
	}

	filter := c.Query("filter")
	rows, err := s.queries.Tasks(c.UserContext(), listing.TaskFilter{Status: filter})
	if err != nil {
		return s.internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(viewmodel.AssembleTaskList(rows, filter, nil, bag))
}

func (s *Server) taskEditPage(c *fiber.Ctx) error {
	task, err := s.loadTask(c)
	if err != nil {
		return s.loadError(c, err)
	}

	fh := forms.NewHandler(forms.TaskKind)
	if err := fh.Process(forms.Request{}, forms.Options{Model: task}); err != nil {
		return s.internalError(c, err)
	}

	form := fh.Form()
	form.Values["title"] = task.Title
	form.Values["content"] = task.Content

	return c.JSON(viewmodel.AssembleTaskForm(form, task.ID, nil))
}

func (s *Server) taskEdit(c *fiber.Ctx) error {
	task, err := s.loadTask(c)
	if err != nil {
		return s.loadError(c, err)
	}

	req := formRequest(c)
	bag := flash.NewBag()

	fh, _, err := s.tasks.Edit(c.UserContext(), req, bag, task, actorFromCtx(c))
	if err != nil {
		return s.internalError(c, err)
	}
	if !fh.Form().Submitted {
		return s.notSubmitted(c)
	}

	status := fiber.StatusOK
	if !fh.Form().Valid() {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(viewmodel.AssembleTaskForm(fh.Form(), task.ID, bag))
}

func (s *Server) taskToggle(c *fiber.Ctx) error {
	task, err := s.loadTask(c)
	if err != nil {
		return s.loadError(c, err)
	}

	req := formRequest(c)
	if err := s.checkIndexedName(req, forms.TaskToggleLabel, task.ID); err != nil {
		return s.badFormName(c)
	}
	bag := flash.NewBag()

	fh, _, err := s.tasks.Toggle(c.UserContext(), req, bag, task, actorFromCtx(c))
	if err != nil {
		return s.internalError(c, err)
	}

	return s.renderTaskList(c, fh.Form(), bag)
}

func (s *Server) taskDelete(c *fiber.Ctx) error {
	task, err := s.loadTask(c)
	if err != nil {
		return s.loadError(c, err)
	}

	if decision := deletePermission(actorFromCtx(c), task); decision != authz.Granted {
		return c.Status(fiber.StatusForbidden).JSON(errorResponse{
			Error:   "forbidden",
			Message: "You are not allowed to delete this task",
		})
	}

	req := formRequest(c)
	if err := s.checkIndexedName(req, forms.TaskDeleteLabel, task.ID); err != nil {
		return s.badFormName(c)
	}
	bag := flash.NewBag()

	fh, _, err := s.tasks.Delete(c.UserContext(), req, bag, task)
	if err != nil {
		return s.internalError(c, err)
	}

	return s.renderTaskList(c, fh.Form(), bag)
}

// deletePermission picks the voter permission matching the task's ownership
// state: authored tasks go through the author rule, anonymous ones through
// the admin rule.
func deletePermission(actor *models.User, task *models.Task) authz.Decision {
	perm := authz.TaskDeleteWithoutAuthor
	if task.Author != nil {
		perm = authz.TaskDeleteAsAuthor
	}
	return authz.Vote(actor, task, perm)
}

func (s *Server) renderTaskList(c *fiber.Ctx, submitted *forms.Form, bag *flash.Bag) error {
	filter := c.Query("filter")
	rows, err := s.queries.Tasks(c.UserContext(), listing.TaskFilter{Status: filter})
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(viewmodel.AssembleTaskList(rows, filter, submitted, bag))
}

func (s *Server) loadTask(c *fiber.Ctx) (*models.Task, error) {
	id, err := rowIDParam(c)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return s.rm.Tasks(s.db).GetByID(c.UserContext(), id)
}
