// Package handlers wires the form layer, change detection and persistence
// managers into per-action handlers. Each Execute-style method returns the
// processed form handler (for view assembly), whether the action took
// effect, and an error only for programming-level failures. User-visible
// outcomes travel as flash messages.
package handlers

import (
	"context"

	"github.com/dkolesnikov/tasklist/internal/server/diff"
	"github.com/dkolesnikov/tasklist/internal/server/flash"
	"github.com/dkolesnikov/tasklist/internal/server/forms"
	"github.com/dkolesnikov/tasklist/internal/server/models"
)

// User-facing messages. Handlers speak in flashes, never in errors.
const (
	msgFormInvalid   = "the submitted form contains errors"
	msgNoChanges     = "no changes detected"
	msgStorageFailed = "something went wrong, please try again"

	msgTaskCreated = "task created"
	msgTaskUpdated = "task updated"
	msgTaskDeleted = "task deleted"
	msgTaskDone    = "task marked as done"
	msgTaskUndone  = "task marked as not done"
)

type taskManager interface {
	Create(ctx context.Context, task *models.Task) bool
	Update(ctx context.Context, task *models.Task) bool
	Toggle(ctx context.Context, task *models.Task) bool
	Delete(ctx context.Context, task *models.Task) bool
}

type TaskHandler struct {
	manager taskManager
}

func NewTaskHandler(manager taskManager) *TaskHandler {
	return &TaskHandler{manager: manager}
}

// Create builds a fresh task from the submitted form and persists it. The
// actor becomes the author; a nil actor leaves the task anonymous.
func (h *TaskHandler) Create(ctx context.Context, req forms.Request, bag *flash.Bag, actor *models.User) (*forms.Handler, bool, error) {
	task := models.NewTask("", "")

	fh := forms.NewHandler(forms.TaskKind)
	if err := fh.Process(req, forms.Options{Model: task}); err != nil {
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

	if actor != nil {
		if err := task.SetAuthor(actor.Ref()); err != nil {
			return nil, false, err
		}
	}

	if !h.manager.Create(ctx, task) {
		bag.Error(msgStorageFailed)
		return fh, false, nil
	}

	bag.Success(msgTaskCreated)
	return fh, true, nil
}

// Edit binds the form into the loaded task and persists only when the edit
// actually changed something; otherwise the task is left untouched and the
// user gets an informational message instead of a bogus success.
func (h *TaskHandler) Edit(ctx context.Context, req forms.Request, bag *flash.Bag, task *models.Task, editor *models.User) (*forms.Handler, bool, error) {
	snapshot := task.Clone()

	fh := forms.NewHandler(forms.TaskKind)
	if err := fh.Process(req, forms.Options{Model: task}); err != nil {
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

	if !diff.TaskChanged(snapshot, task) {
		bag.Info(msgNoChanges)
		return fh, false, nil
	}

	if editor != nil {
		task.SetLastEditor(editor.Ref())
	}

	if !h.manager.Update(ctx, task) {
		bag.Error(msgStorageFailed)
		return fh, false, nil
	}

	bag.Success(msgTaskUpdated)
	return fh, true, nil
}

// Toggle flips the done flag of one list row. The form is indexed by the
// task id, so only the row the user acted on matches the submission.
func (h *TaskHandler) Toggle(ctx context.Context, req forms.Request, bag *flash.Bag, task *models.Task, editor *models.User) (*forms.Handler, bool, error) {
	fh := forms.NewHandler(forms.TaskToggleKind)
	if err := fh.Process(req, forms.Options{Model: task, RowID: task.ID}); err != nil {
		return nil, false, err
	}

	ok, err := fh.IsSuccess()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return fh, false, nil
	}

	task.Toggle()
	if editor != nil {
		task.SetLastEditor(editor.Ref())
	}

	if !h.manager.Toggle(ctx, task) {
		// roll the in-memory flip back so the view shows the stored state
		task.Toggle()
		bag.Error(msgStorageFailed)
		return fh, false, nil
	}

	if task.IsDone {
		bag.Success(msgTaskDone)
	} else {
		bag.Success(msgTaskUndone)
	}
	return fh, true, nil
}

// Delete removes one list row. Authorization has already happened: the web
// layer consults the voter before this handler runs.
func (h *TaskHandler) Delete(ctx context.Context, req forms.Request, bag *flash.Bag, task *models.Task) (*forms.Handler, bool, error) {
	fh := forms.NewHandler(forms.TaskDeleteKind)
	if err := fh.Process(req, forms.Options{Model: task, RowID: task.ID}); err != nil {
		return nil, false, err
	}

	ok, err := fh.IsSuccess()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return fh, false, nil
	}

	if !h.manager.Delete(ctx, task) {
		bag.Error(msgStorageFailed)
		return fh, false, nil
	}

	bag.Success(msgTaskDeleted)
	return fh, true, nil
}
