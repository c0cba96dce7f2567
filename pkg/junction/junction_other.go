//go:build !windows

package junction

import "github.com/arthur-debert/runlink/pkg/errors"

func errUnsupported() *errors.RunlinkError {
	return errors.New(errors.ErrUnsupportedPlatform,
		"junctions are an NTFS reparse-point feature and exist only on Windows")
}

// Create is unsupported off Windows.
func Create(name, target string) (CreateOutcome, error) {
	return CreateError, errUnsupported()
}

// Read is unsupported off Windows.
func Read(path string) (string, int, ReadOutcome, error) {
	return "", 0, ReadError, errUnsupported()
}

// Delete is unsupported off Windows.
func Delete(path string) (DeleteOutcome, error) {
	return DeleteError, errUnsupported()
}

// DeleteWithPolicy is unsupported off Windows.
func DeleteWithPolicy(path string, policy RetryPolicy) (DeleteOutcome, error) {
	return DeleteError, errUnsupported()
}

// IsJunctionOrDirectorySymlink is unsupported off Windows.
func IsJunctionOrDirectorySymlink(path string) (bool, error) {
	return false, errUnsupported()
}

// GetLongPath is unsupported off Windows.
func GetLongPath(path string) (string, error) {
	return "", errUnsupported()
}
