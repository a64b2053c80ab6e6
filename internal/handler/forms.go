package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// validationMessages converts validator errors into the user-facing
// messages the forms redisplay. Unknown fields fall back to a generic
// line so the view never sees an empty error entry.
func validationMessages(err error, messages map[string]string) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{"Please check the submitted values."}
	}

	out := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		if msg, ok := messages[fe.Field()]; ok {
			out = append(out, msg)
			continue
		}
		out = append(out, "Please check the "+fe.Field()+" field.")
	}
	return out
}
