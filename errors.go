package layermode

import "github.com/pkg/errors"

// Errors reported by the package. Returned errors may wrap these with
// context; compare with errors.Is or errors.Cause.
var (
	// ErrUnknownMode is returned for a mode value or name outside the table.
	ErrUnknownMode = errors.New("layermode: unknown layer mode")

	// ErrUnknownGroup is returned for an unknown group name.
	ErrUnknownGroup = errors.New("layermode: unknown layer mode group")

	// ErrUnknownOperation is returned by NewOperation for an unregistered name.
	ErrUnknownOperation = errors.New("layermode: unknown operation")

	// ErrImmutable is returned when overriding a setting the mode fixes.
	ErrImmutable = errors.New("layermode: setting is immutable for this mode")

	// ErrSizeMismatch is returned when buffers passed together disagree in size.
	ErrSizeMismatch = errors.New("layermode: buffer size mismatch")
)
