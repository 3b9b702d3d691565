package crypto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the minimum accepted password length. The policy is
// enforced when an account is created or its password rotated, never at login,
// so existing accounts keep working if the policy ever tightens.
const MinPasswordLength = 6

// ErrPasswordTooShort is returned when a password fails the length policy.
var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

// MeetsPolicy checks a password against the account password policy.
func MeetsPolicy(password string) bool {
	return len(password) >= MinPasswordLength
}

// cryptoPasswordRule validates password policy for the validator package
func cryptoPasswordRule(fl validator.FieldLevel) bool {
	return MeetsPolicy(fl.Field().String())
}

// RegisterPasswordValidator registers the "password" validation tag with the validator
// Safely handles duplicate registration by checking if already registered
func RegisterPasswordValidator(v *validator.Validate) error {
	err := v.RegisterValidation("password", cryptoPasswordRule)
	if err != nil && err.Error() == "validator: tag 'password' already exists" {
		return nil // Already registered, not an error
	}
	return err
}
