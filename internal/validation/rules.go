// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/codemillmatt/cosmos-db-permissions/internal/errors"
)

var (
	// resourceNameRegex matches document store collection names: letters,
	// digits, dashes and underscores. Dashes inside names are fine; the
	// deterministic ids stay unambiguous because the user id comes first.
	resourceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// userIDRegex matches principal identifiers. Kept deliberately close to
	// resource names so deterministic ids remain plain ASCII.
	userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9@._-]+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// ResourceName validates that a string is a well-formed resource collection name
var ResourceName = validation.NewStringRuleWithError(
	func(s string) bool {
		return resourceNameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_resource_name",
		"must contain only letters, digits, dashes and underscores",
	),
)

// UserID validates that a string is a well-formed principal identifier
var UserID = validation.NewStringRuleWithError(
	func(s string) bool {
		return userIDRegex.MatchString(s)
	},
	validation.NewError(
		"validation_user_id",
		"must contain only letters, digits and @._- characters",
	),
)
