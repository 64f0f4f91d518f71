package session

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeProviderRejected = "session_provider_rejected"
	TextCodeNotProvided      = "session_store_not_provided"
)

// ErrStoreNotProvided is returned when a component is constructed
// before the store it depends on exists.
var ErrStoreNotProvided = goerrors.New("session store not provided", goerrors.CategoryOperation).
	WithTextCode(TextCodeNotProvided).
	WithCode(goerrors.CodeInternal)

// ErrProviderNotProvided mirrors ErrStoreNotProvided for the remote
// identity provider dependency.
var ErrProviderNotProvided = goerrors.New("identity provider not provided", goerrors.CategoryOperation).
	WithCode(goerrors.CodeInternal)

// RejectionError is a rejection reported by the remote provider: bad
// credentials, duplicate email, or a failure the provider chose to
// surface. The message is shown to the user verbatim.
type RejectionError struct {
	Operation string
	Status    int
	Message   string
}

func (e *RejectionError) Error() string {
	if e == nil || e.Message == "" {
		return "identity provider rejected the request"
	}
	return e.Message
}

// IsProviderRejection reports whether err is a remote rejection, i.e.
// recoverable by resubmitting rather than a local defect.
func IsProviderRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}
