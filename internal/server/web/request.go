package web

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dkolesnikov/tasklist/internal/server/forms"
)

// formField names the posted form; clients include it so the server can tell
// which of the several forms on a page was actually submitted.
const formField = "_form"

// formRequest converts the POST body of a classic urlencoded form submission
// into a forms.Request.
func formRequest(c *fiber.Ctx) forms.Request {
	values := url.Values{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})

	return forms.Request{
		FormName: values.Get(formField),
		Values:   values,
	}
}

// rowIDParam reads the numeric :id path parameter.
func rowIDParam(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
