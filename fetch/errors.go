package fetch

import (
	"errors"
	"fmt"
)

// BadStatusError contains the response status for a fetch that returned a
// non-success status code
type BadStatusError struct {
	URL        string
	StatusCode int
}

// NewBadStatusError creates an error for a non-success response status
func NewBadStatusError(url string, statusCode int) error {
	return &BadStatusError{
		URL:        url,
		StatusCode: statusCode,
	}
}

// Error returns error message
func (err *BadStatusError) Error() string {
	return fmt.Sprintf("failed to fetch url %s, received status code %d", err.URL, err.StatusCode)
}

// Is tests type of error
func (err *BadStatusError) Is(other error) bool {
	_, ok := other.(*BadStatusError)
	return ok
}

// IsBadStatusError evaluates if the given error is BadStatusError
func IsBadStatusError(err error) bool {
	return errors.Is(err, &BadStatusError{})
}
