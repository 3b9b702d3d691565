package auth

import "errors"

// ErrInvalidCredentials covers both unknown email and wrong password so a
// caller cannot probe which admin accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrGenToken is returned when we cannot create a JWT.
var ErrGenToken = errors.New("failed to generate token")

// ErrUnsupportedJWTAlg is returned when the configured signing algorithm is unknown.
var ErrUnsupportedJWTAlg = errors.New("unsupported JWT algorithm")

// ErrWeakPassword is returned when a new password fails the length policy.
var ErrWeakPassword = errors.New("password does not meet the minimum length policy")
