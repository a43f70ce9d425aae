// Package forms implements the request-form layer: named (and, for list
// rows, id-indexed) form instances bound to a data model, with per-field
// validation errors and a small processed/unprocessed state machine.
package forms

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/dkolesnikov/tasklist/internal/server/models"
)

// Kind is the closed set of form types. The original design dispatched on a
// model class-name string; here the registry is keyed by this enum.
type Kind int

const (
	TaskKind Kind = iota
	UserKind
	TaskToggleKind
	TaskDeleteKind
	UserDeleteKind
)

// Request is an inbound form submission: the name of the form the client
// posted (from the _form field) plus the raw values.
type Request struct {
	FormName string
	Values   url.Values
}

// Form is one named form instance. RowID is non-zero for indexed forms and
// identifies the list row the instance belongs to; it is structured data,
// not re-parsed from the name after construction.
type Form struct {
	Name      string
	Kind      Kind
	RowID     int64
	Values    map[string]string
	Errors    map[string]string
	Submitted bool
}

// Valid reports whether the form carries no field errors.
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

func (f *Form) addError(field, msg string) {
	f.Errors[field] = msg
}

// field returns the submitted value for "<name>[<field>]", trimmed.
func (f *Form) field(values url.Values, field string) string {
	return strings.TrimSpace(values.Get(f.Name + "[" + field + "]"))
}

func (f *Form) fieldAll(values url.Values, field string) []string {
	raw := values[f.Name+"["+field+"]"]
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// UserData is the data model bound by user create/edit forms. The plaintext
// password is carried here only for verification or hashing and is never
// copied onto the entity.
type UserData struct {
	Username string
	Email    string
	Roles    []string
	Password string
}

type definition struct {
	label   string
	indexed bool
	bind    func(f *Form, values url.Values, model any) error
}

// registry maps each kind to its label and binding logic. Toggle and delete
// forms carry no fields: submission alone is the signal.
var registry = map[Kind]definition{
	TaskKind:       {label: TaskFormName, bind: bindTask},
	UserKind:       {label: UserFormName, bind: bindUser},
	TaskToggleKind: {label: TaskToggleLabel, indexed: true, bind: bindNone[*models.Task]},
	TaskDeleteKind: {label: TaskDeleteLabel, indexed: true, bind: bindNone[*models.Task]},
	UserDeleteKind: {label: UserDeleteLabel, indexed: true, bind: bindNone[*models.User]},
}

func bindTask(f *Form, values url.Values, model any) error {
	task, ok := model.(*models.Task)
	if !ok {
		return fmt.Errorf("task form bound to %T", model)
	}

	task.Title = f.field(values, "title")
	task.Content = f.field(values, "content")
	f.Values["title"] = task.Title
	f.Values["content"] = task.Content

	if task.Title == "" {
		f.addError("title", "title must not be blank")
	}
	if task.Content == "" {
		f.addError("content", "content must not be blank")
	}
	return nil
}

func bindUser(f *Form, values url.Values, model any) error {
	data, ok := model.(*UserData)
	if !ok {
		return fmt.Errorf("user form bound to %T", model)
	}

	data.Username = f.field(values, "username")
	data.Email = f.field(values, "email")
	data.Roles = f.fieldAll(values, "roles")
	data.Password = values.Get(f.Name + "[password]") // passwords keep their spaces
	if len(data.Roles) == 0 {
		data.Roles = []string{models.RoleUser}
	}
	f.Values["username"] = data.Username
	f.Values["email"] = data.Email
	f.Values["roles"] = strings.Join(data.Roles, ",")

	if data.Username == "" {
		f.addError("username", "username must not be blank")
	}
	if data.Email == "" {
		f.addError("email", "email must not be blank")
	} else if _, err := mail.ParseAddress(data.Email); err != nil {
		f.addError("email", "email is not a valid address")
	}
	if data.Password != "" {
		validatePassword(f, data.Password)
	}
	return nil
}

func validatePassword(f *Form, password string) {
	if len(password) < 8 {
		f.addError("password", "password must be at least 8 characters")
	} else if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		f.addError("password", "password must be at most 72 characters")
	}
}

func bindNone[T any](_ *Form, _ url.Values, model any) error {
	if _, ok := model.(T); !ok {
		return fmt.Errorf("form bound to %T", model)
	}
	return nil
}
