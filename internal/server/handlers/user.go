package handlers

import (
	"context"

	"github.com/dkolesnikov/tasklist/internal/server/diff"
	"github.com/dkolesnikov/tasklist/internal/server/flash"
	"github.com/dkolesnikov/tasklist/internal/server/forms"
	"github.com/dkolesnikov/tasklist/internal/server/models"
)

const (
	msgUserCreated = "user created"
	msgUserUpdated = "user updated"
	msgUserDeleted = "user deleted"
)

type userManager interface {
	Create(ctx context.Context, user *models.User) bool
	Update(ctx context.Context, user *models.User, newPasswordHash string) bool
	Delete(ctx context.Context, user *models.User) bool
}

// hasher is the credential collaborator as the handlers see it.
type hasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type UserHandler struct {
	manager userManager
	hasher  hasher
}

func NewUserHandler(manager userManager, h hasher) *UserHandler {
	return &UserHandler{manager: manager, hasher: h}
}

// Create builds a new account from the submitted form. A password is
// mandatory here, unlike on edit where an empty one means "keep current".
func (h *UserHandler) Create(ctx context.Context, req forms.Request, bag *flash.Bag) (*forms.Handler, bool, error) {
	data := &forms.UserData{}

	fh := forms.NewHandler(forms.UserKind)
	if err := fh.Process(req, forms.Options{Model: data, RequirePassword: true}); err != nil {
		return nil, false, err
	}

	ok, err := fh.IsSuccess()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		if fh.Form().Submitted {
			bag.Warning(msgFormInvalid)
		}
		return fh, false, nil
	}

	user := models.NewUser(data.Username, data.Email)
	user.SetRoles(data.Roles)

	hash, err := h.hasher.Hash(data.Password)
	if err != nil {
		return nil, false, err
	}
	user.PasswordHash = hash

	if !h.manager.Create(ctx, user) {
		bag.Error(msgStorageFailed)
		return fh, false, nil
	}

	bag.Success(msgUserCreated)
	return fh, true, nil
}

// Edit applies an admin edit to an existing account. Nothing is persisted
// when the submitted profile matches the stored one and the submitted
// password (if any) still verifies against the stored hash.
func (h *UserHandler) Edit(ctx context.Context, req forms.Request, bag *flash.Bag, user *models.User) (*forms.Handler, bool, error) {
	data := &forms.UserData{}

	fh := forms.NewHandler(forms.UserKind)
	if err := fh.Process(req, forms.Options{Model: data}); err != nil {
		return nil, false, err
	}

	ok, err := fh.IsSuccess()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		if fh.Form().Submitted {
			bag.Warning(msgFormInvalid)
		}
		return fh, false, nil
	}

	submitted := diff.UserProfile{
		Username: data.Username,
		Email:    data.Email,
		Roles:    data.Roles,
	}
	if !diff.UserChanged(user, submitted, data.Password, h.hasher.Verify) {
		bag.Info(msgNoChanges)
		return fh, false, nil
	}

	user.Username = data.Username
	user.Email = data.Email
	user.SetRoles(data.Roles)

	var newHash string
	if data.Password != "" && !h.hasher.Verify(user.PasswordHash, data.Password) {
		if newHash, err = h.hasher.Hash(data.Password); err != nil {
			return nil, false, err
		}
	}

	if !h.manager.Update(ctx, user, newHash) {
		bag.Error(msgStorageFailed)
		return fh, false, nil
	}

	bag.Success(msgUserUpdated)
	return fh, true, nil
}

// Delete removes one account row via its indexed form.
func (h *UserHandler) Delete(ctx context.Context, req forms.Request, bag *flash.Bag, user *models.User) (*forms.Handler, bool, error) {
	fh := forms.NewHandler(forms.UserDeleteKind)
	if err := fh.Process(req, forms.Options{Model: user, RowID: user.ID}); err != nil {
		return nil, false, err
	}

	ok, err := fh.IsSuccess()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return fh, false, nil
	}

	if !h.manager.Delete(ctx, user) {
		bag.Error(msgStorageFailed)
		return fh, false, nil
	}

	bag.Success(msgUserDeleted)
	return fh, true, nil
}
