package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"eli5-bot/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct tags and reports the first failing field.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperror.Validation(fmt.Sprintf("Field %s failed on the '%s' rule.", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return apperror.Wrap(apperror.KindValidation, "Invalid request.", err)
}
