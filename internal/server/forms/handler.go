package forms

import "fmt"

// State tracks the handler's processing lifecycle.
type State int

const (
	StateUnprocessed State = iota
	StateProcessed
)

// Options configures one Process call. Model is mandatory: a form always
// binds into a data model. RowID names the list row for indexed kinds.
// RequirePassword makes an empty password a validation error (user create).
type Options struct {
	Model           any
	RowID           int64
	RequirePassword bool
}

// Handler runs one form through bind-and-validate and answers IsSuccess
// afterwards. It moves from StateUnprocessed to StateProcessed exactly once;
// asking for the outcome earlier is a programming error.
type Handler struct {
	kind  Kind
	form  *Form
	state State
}

func NewHandler(kind Kind) *Handler {
	return &Handler{kind: kind}
}

// Process builds the named form for the handler's kind, decides whether this
// request submitted it (by form name, including the id suffix for indexed
// kinds), and if so binds and validates the model.
func (h *Handler) Process(req Request, opts Options) error {
	if opts.Model == nil {
		return ErrMissingDataModel
	}

	def, ok := registry[h.kind]
	if !ok {
		return fmt.Errorf("unknown form kind %d", h.kind)
	}

	name := def.label
	if def.indexed {
		name = IndexedName(def.label, opts.RowID)
	}

	h.form = &Form{
		Name:   name,
		Kind:   h.kind,
		RowID:  opts.RowID,
		Values: map[string]string{},
		Errors: map[string]string{},
	}

	h.form.Submitted = req.FormName == name
	if h.form.Submitted {
		if err := def.bind(h.form, req.Values, opts.Model); err != nil {
			return err
		}
		if opts.RequirePassword {
			if data, ok := opts.Model.(*UserData); ok && data.Password == "" {
				h.form.addError("password", "password must not be blank")
			}
		}
	}

	h.state = StateProcessed
	return nil
}

// IsSuccess reports whether the form was submitted and valid. It must not
// be called before Process.
func (h *Handler) IsSuccess() (bool, error) {
	if h.state == StateUnprocessed {
		return false, ErrNotYetProcessed
	}
	return h.form.Submitted && h.form.Valid(), nil
}

// Form returns the processed form, or nil before Process.
func (h *Handler) Form() *Form {
	return h.form
}
