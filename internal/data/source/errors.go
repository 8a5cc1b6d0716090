package source

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Kind classifies a fetch failure for retry and exit-code decisions.
type Kind int

const (
	// KindTransient covers network and service hiccups; the next round retries
	// with an unchanged cursor.
	KindTransient Kind = iota
	// KindAuth covers invalid or expired credentials; fatal at startup,
	// surfaced per round afterwards.
	KindAuth
	// KindNotFound means the named log group does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not-found"
	default:
		return "transient"
	}
}

// FetchError wraps a source failure with the group it belongs to and its kind.
type FetchError struct {
	Group string
	Kind  Kind
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.Group, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Classify wraps err as a FetchError for the group, mapping the service's
// API error codes onto the taxonomy. Unknown failures default to transient so
// that a blip never permanently stalls a group.
func Classify(group string, err error) error {
	if err == nil {
		return nil
	}
	kind := KindTransient
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ResourceNotFoundException":
			kind = KindNotFound
		case "AccessDeniedException", "UnrecognizedClientException",
			"ExpiredTokenException", "InvalidClientTokenId":
			kind = KindAuth
		}
	}
	return &FetchError{Group: group, Kind: kind, Err: err}
}

// IsAuth reports whether err is an authentication/authorization failure.
func IsAuth(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindAuth
}

// IsNotFound reports whether err means the log group does not exist.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindNotFound
}
