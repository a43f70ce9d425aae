package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dkolesnikov/tasklist/internal/common"
	"github.com/dkolesnikov/tasklist/internal/server/flash"
	"github.com/dkolesnikov/tasklist/internal/server/forms"
	"github.com/dkolesnikov/tasklist/internal/server/models"
	"github.com/dkolesnikov/tasklist/internal/server/viewmodel"
)

func (s *Server) userList(c *fiber.Ctx) error {
	rows, err := s.queries.Users(c.UserContext())
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(viewmodel.AssembleUserList(rows, nil, nil))
}

func (s *Server) userCreate(c *fiber.Ctx) error {
	req := formRequest(c)
	bag := flash.NewBag()

	fh, ok, err := s.users.Create(c.UserContext(), req, bag)
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
		return c.Status(status).JSON(viewmodel.AssembleUserForm(fh.Form(), 0, bag))
	}

	rows, err := s.queries.Users(c.UserContext())
	if err != nil {
		return s.internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(viewmodel.AssembleUserList(rows, nil, bag))
}

func (s *Server) userEditPage(c *fiber.Ctx) error {
	user, err := s.loadUser(c)
	if err != nil {
		return s.loadError(c, err)
	}

	fh := forms.NewHandler(forms.UserKind)
	if err := fh.Process(forms.Request{}, forms.Options{Model: &forms.UserData{}}); err != nil {
		return s.internalError(c, err)
	}

	form := fh.Form()
	form.Values["username"] = user.Username
	form.Values["email"] = user.Email
	form.Values["roles"] = strings.Join(user.Roles, ",")

	return c.JSON(viewmodel.AssembleUserForm(form, user.ID, nil))
}

func (s *Server) userEdit(c *fiber.Ctx) error {
	user, err := s.loadUser(c)
	if err != nil {
		return s.loadError(c, err)
	}

	req := formRequest(c)
	bag := flash.NewBag()

	fh, _, err := s.users.Edit(c.UserContext(), req, bag, user)
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
	return c.Status(status).JSON(viewmodel.AssembleUserForm(fh.Form(), user.ID, bag))
}

func (s *Server) userDelete(c *fiber.Ctx) error {
	user, err := s.loadUser(c)
	if err != nil {
		return s.loadError(c, err)
	}

	req := formRequest(c)
	if err := s.checkIndexedName(req, forms.UserDeleteLabel, user.ID); err != nil {
		return s.badFormName(c)
	}
	bag := flash.NewBag()

	fh, _, err := s.users.Delete(c.UserContext(), req, bag, user)
	if err != nil {
		return s.internalError(c, err)
	}

	rows, err := s.queries.Users(c.UserContext())
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(viewmodel.AssembleUserList(rows, fh.Form(), bag))
}

func (s *Server) loadUser(c *fiber.Ctx) (*models.User, error) {
	id, err := rowIDParam(c)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return s.rm.Users(s.db).GetByID(c.UserContext(), id)
}
