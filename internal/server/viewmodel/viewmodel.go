// Package viewmodel assembles the typed structures handed to the
// presentation layer. What used to be a loose property bag is one
// discriminated struct per screen.
package viewmodel

import (
	"github.com/dkolesnikov/tasklist/internal/server/flash"
	"github.com/dkolesnikov/tasklist/internal/server/forms"
	"github.com/dkolesnikov/tasklist/internal/server/listing"
)

// FormView is the render snapshot of one form instance.
type FormView struct {
	Name      string            `json:"name"`
	RowID     int64             `json:"row_id,omitempty"`
	Values    map[string]string `json:"values,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	Submitted bool              `json:"submitted"`
}

// Snapshot captures a processed form's live state, errors included.
func Snapshot(f *forms.Form) FormView {
	return FormView{
		Name:      f.Name,
		RowID:     f.RowID,
		Values:    f.Values,
		Errors:    f.Errors,
		Submitted: f.Submitted,
	}
}

// Fresh returns the view of a never-submitted indexed form for one row.
func Fresh(label string, id int64) FormView {
	return FormView{Name: forms.IndexedName(label, id), RowID: id}
}

// TaskListView is the task list screen: rows plus one toggle and one delete
// form per row.
type TaskListView struct {
	Tasks       []listing.TaskRow  `json:"tasks"`
	ToggleForms map[int64]FormView `json:"toggle_forms"`
	DeleteForms map[int64]FormView `json:"delete_forms"`
	Filter      string             `json:"filter,omitempty"`
	Flashes     []flash.Message    `json:"flashes,omitempty"`
}

// AssembleTaskList builds the list screen. All rows get fresh per-row forms
// except the one the request acted on: that row keeps the submitted form's
// live state so its validation errors render in place. Matching uses the
// structured row id, never name parsing.
func AssembleTaskList(rows []listing.TaskRow, filter string, submitted *forms.Form, bag *flash.Bag) TaskListView {
	view := TaskListView{
		Tasks:       rows,
		ToggleForms: make(map[int64]FormView, len(rows)),
		DeleteForms: make(map[int64]FormView, len(rows)),
		Filter:      filter,
	}
	if bag != nil {
		view.Flashes = bag.Messages()
	}

	for _, row := range rows {
		view.ToggleForms[row.ID] = Fresh(forms.TaskToggleLabel, row.ID)
		view.DeleteForms[row.ID] = Fresh(forms.TaskDeleteLabel, row.ID)
	}

	if submitted != nil && submitted.Submitted {
		switch submitted.Kind {
		case forms.TaskToggleKind:
			if _, ok := view.ToggleForms[submitted.RowID]; ok {
				view.ToggleForms[submitted.RowID] = Snapshot(submitted)
			}
		case forms.TaskDeleteKind:
			if _, ok := view.DeleteForms[submitted.RowID]; ok {
				view.DeleteForms[submitted.RowID] = Snapshot(submitted)
			}
		}
	}

	return view
}

// TaskFormView is the create/edit screen for a single task.
type TaskFormView struct {
	Form    FormView        `json:"form"`
	TaskID  int64           `json:"task_id,omitempty"`
	Flashes []flash.Message `json:"flashes,omitempty"`
}

func AssembleTaskForm(f *forms.Form, taskID int64, bag *flash.Bag) TaskFormView {
	view := TaskFormView{Form: Snapshot(f), TaskID: taskID}
	if bag != nil {
		view.Flashes = bag.Messages()
	}
	return view
}

// UserListView is the admin account list with one delete form per row.
type UserListView struct {
	Users       []listing.UserRow  `json:"users"`
	DeleteForms map[int64]FormView `json:"delete_forms"`
	Flashes     []flash.Message    `json:"flashes,omitempty"`
}

func AssembleUserList(rows []listing.UserRow, submitted *forms.Form, bag *flash.Bag) UserListView {
	view := UserListView{
		Users:       rows,
		DeleteForms: make(map[int64]FormView, len(rows)),
	}
	if bag != nil {
		view.Flashes = bag.Messages()
	}

	for _, row := range rows {
		view.DeleteForms[row.ID] = Fresh(forms.UserDeleteLabel, row.ID)
	}
	if submitted != nil && submitted.Submitted && submitted.Kind == forms.UserDeleteKind {
		if _, ok := view.DeleteForms[submitted.RowID]; ok {
			view.DeleteForms[submitted.RowID] = Snapshot(submitted)
		}
	}

	return view
}

// UserFormView is the admin create/edit screen for a single account.
type UserFormView struct {
	Form    FormView        `json:"form"`
	UserID  int64           `json:"user_id,omitempty"`
	Flashes []flash.Message `json:"flashes,omitempty"`
}

func AssembleUserForm(f *forms.Form, userID int64, bag *flash.Bag) UserFormView {
	view := UserFormView{Form: Snapshot(f), UserID: userID}
	if bag != nil {
		view.Flashes = bag.Messages()
	}
	return view
}
