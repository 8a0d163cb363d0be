package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	svcErr "github.com/oggyb/socialgraph/internal/errors"
)

// validationError turns validator output into one ErrValidation listing every
// failed field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return svcErr.Validation("%v", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return svcErr.Validation("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s is not a valid email address", field)
	case "eqfield":
		return "password confirmation does not match"
	}
	return fmt.Sprintf("%s is invalid", field)
}
