package gdrive

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// AuthRequiredError reports that no usable OAuth token is available and
// `wordtrack auth login` must be run.
type AuthRequiredError struct {
	TokenPath string
	Cause     error
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("google drive authorization required (token %s): run `wordtrack auth login`", e.TokenPath)
}

func (e *AuthRequiredError) Unwrap() error {
	return e.Cause
}

// IsAuthRequiredError reports whether err is, or wraps, an AuthRequiredError.
func IsAuthRequiredError(err error) bool {
	var target *AuthRequiredError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a Drive API 404.
func IsNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

// classify turns Drive API auth failures and token refresh failures into
// AuthRequiredError.
func classify(err error, tokenPath string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusUnauthorized {
		return &AuthRequiredError{TokenPath: tokenPath, Cause: err}
	}
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return &AuthRequiredError{TokenPath: tokenPath, Cause: err}
	}
	return err
}
