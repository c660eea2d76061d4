package service

import "errors"

// Sentinel errors shared across services. Controllers translate these to
// HTTP statuses with errors.Is; wrapped variants carry the detail.
var (
	// ErrMissingField means a required submission field was absent.
	ErrMissingField = errors.New("missing required field")

	// ErrAccessDenied covers unapproved, expired, and never-purchased
	// entitlements alike. It deliberately does not distinguish "package
	// does not exist" on the resolver path.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidQuestionReference means a submitted answer named a
	// question outside the package; the whole submission is aborted.
	ErrInvalidQuestionReference = errors.New("question does not belong to package")

	// ErrDuplicate means a uniqueness rule was violated, e.g. a second
	// purchase of the same package.
	ErrDuplicate = errors.New("record already exists")

	// ErrInvalidInput is a catch-all for business-rule validation
	// failures raised below the binding layer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned on login failure without saying
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
