package forms

import (
	"fmt"
	"strconv"
	"strings"
)

// Form name labels. Toggle and delete forms are indexed: a list page renders
// one per row, so each instance carries the row id as a suffix.
const (
	TaskFormName    = "task"
	UserFormName    = "user"
	TaskToggleLabel = "task_toggle"
	TaskDeleteLabel = "task_delete"
	UserDeleteLabel = "user_delete"
	LoginFormName   = "login"
)

// IndexedName builds "<label>_<id>" for per-row form instances.
func IndexedName(label string, id int64) string {
	return fmt.Sprintf("%s_%d", label, id)
}

// ParseIndexedName splits "<label>_<id>" back into its parts. The id must be
// a positive integer; anything else is ErrMalformedFormName. The row id is
// carried on the Form as structured data afterwards; parsing happens once,
// at the inbound boundary.
func ParseIndexedName(name string) (string, int64, error) {
	i := strings.LastIndex(name, "_")
	if i <= 0 || i == len(name)-1 {
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedFormName, name)
	}
	id, err := strconv.ParseInt(name[i+1:], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedFormName, name)
	}
	return name[:i], id, nil
}
