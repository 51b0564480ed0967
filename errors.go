package gvision

import (
	"errors"
	"fmt"
)

var (
	// ErrNoObjectStore is returned when an operation needs Cloud Storage
	// access and none was configured
	ErrNoObjectStore = errors.New("no object store configured")

	// ErrNoOutput is returned when an operation writes an image but no
	// output path was set
	ErrNoOutput = errors.New("no output path set")

	// ErrNoCropHint is returned when Vision suggests no crop
	ErrNoCropHint = errors.New("no crop hint returned")
)

// InvalidConfigurationError reports a configuration that cannot be used to
// build a client
type InvalidConfigurationError struct {
	Message string
}

func (e *InvalidConfigurationError) Error() string {
	return e.Message
}

// CredentialsJSONDoesNotExist is returned when the credentials path is missing
func CredentialsJSONDoesNotExist(path string) *InvalidConfigurationError {
	return &InvalidConfigurationError{
		Message: fmt.Sprintf("could not find a credentials file at `%s`", path),
	}
}

// CredentialsTypeWrong is returned when the credentials are neither a path
// nor a mapping
func CredentialsTypeWrong(credentials any) *InvalidConfigurationError {
	return &InvalidConfigurationError{
		Message: fmt.Sprintf("credentials should be a mapping or the path of a json file, %T was given", credentials),
	}
}
