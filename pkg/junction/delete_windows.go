//go:build windows

package junction

import (
	"golang.org/x/sys/windows"

	"github.com/arthur-debert/runlink/pkg/errors"
	"github.com/arthur-debert/runlink/pkg/logging"
)

// Delete removes the file, junction or empty directory at path using the
// default retry policy.
func Delete(path string) (DeleteOutcome, error) {
	return DeleteWithPolicy(path, DefaultRetryPolicy())
}

// DeleteWithPolicy removes the entry at path. Read-only files are made
// writable first. Directories (junctions included) are removed in the
// bounded retry loop of policy, which tells genuinely non-empty directories
// apart from ones whose children the OS is still tearing down.
func DeleteWithPolicy(path string, policy RetryPolicy) (DeleteOutcome, error) {
	logger := logging.GetLogger("junction")

	if !IsAbsoluteNormalizedWindowsPath(path) {
		return DeleteError, errors.Newf(errors.ErrInvalidPath,
			"path %q is not an absolute normalized Windows path", path)
	}
	winpath := AddUNCPrefix(path)
	path16, err := windows.UTF16PtrFromString(winpath)
	if err != nil {
		return DeleteError, errors.Wrapf(err, errors.ErrInvalidPath,
			"path %q cannot be encoded", path)
	}

	err = windows.DeleteFile(path16)
	if err == nil {
		return DeleteSuccess, nil
	}
	switch err {
	case windows.ERROR_SHARING_VIOLATION:
		// In use by another process, or we may not delete it.
		return DeleteAccessDenied, nil
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND:
		return DeleteDoesNotExist, nil
	}
	if err != windows.ERROR_ACCESS_DENIED {
		return DeleteError, errors.NewWin32("DeleteFileW", path, err)
	}

	// DeleteFileW failed with access denied: the entry is a directory or a
	// read-only file. Re-query attributes, the entry may have vanished
	// between the two calls.
	attrs, err := windows.GetFileAttributes(path16)
	if err != nil {
		if err == windows.ERROR_FILE_NOT_FOUND || err == windows.ERROR_PATH_NOT_FOUND {
			return DeleteDoesNotExist, nil
		}
		return DeleteError, errors.NewWin32("GetFileAttributesW", path, err)
	}

	switch {
	case attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0:
		// A directory or a junction. A removed child sometimes lingers in
		// the listing after its deleting handle closed, so removal may
		// transiently report "not empty"; the policy retries those.
		var opErr error
		outcome := policy.run(
			func() removeAttempt {
				rmErr := windows.RemoveDirectory(path16)
				switch rmErr {
				case nil:
					return removeOK
				case windows.ERROR_SHARING_VIOLATION, windows.ERROR_ACCESS_DENIED:
					return removeAccessDenied
				case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND:
					return removeDoesNotExist
				case windows.ERROR_DIR_NOT_EMPTY:
					return removeNotEmpty
				}
				opErr = errors.NewWin32("RemoveDirectoryW", path, rmErr)
				return removeError
			},
			func() directoryStatus { return checkDirectoryStatus(winpath) },
		)
		if outcome == DeleteError && opErr == nil {
			opErr = errors.Newf(errors.ErrWin32,
				"directory %q reported not-empty but its listing is gone", path)
		}
		if outcome == DeleteSuccess {
			logger.Debug().Str("path", path).Msg("directory deleted")
		}
		return outcome, opErr

	case attrs&windows.FILE_ATTRIBUTE_READONLY != 0:
		// A read-only file. Clear the attribute and try once more.
		if err := windows.SetFileAttributes(path16, attrs&^windows.FILE_ATTRIBUTE_READONLY); err != nil {
			if err == windows.ERROR_FILE_NOT_FOUND || err == windows.ERROR_PATH_NOT_FOUND {
				return DeleteDoesNotExist, nil
			}
			return DeleteError, errors.NewWin32("SetFileAttributesW", path, err)
		}
		if err := windows.DeleteFile(path16); err != nil {
			if err == windows.ERROR_FILE_NOT_FOUND || err == windows.ERROR_PATH_NOT_FOUND {
				return DeleteDoesNotExist, nil
			}
			return DeleteError, errors.NewWin32("DeleteFileW", path, err)
		}
		return DeleteSuccess, nil
	}

	return DeleteError, errors.Newf(errors.ErrWin32,
		"cannot delete %q: access denied, attrs=0x%08x", path, attrs)
}

// checkDirectoryStatus scans the immediate children of winpath to decide
// whether a "directory not empty" failure is genuine. A child whose
// attributes are readable is live. A child that stats with ERROR_ACCESS_DENIED
// is mid-deletion by the OS; one that stats with ERROR_FILE_NOT_FOUND is
// already gone. Any other stat failure counts as a live child we cannot
// open.
func checkDirectoryStatus(winpath string) directoryStatus {
	pattern, err := windows.UTF16PtrFromString(winpath + `\*`)
	if err != nil {
		return statusDoesNotExist
	}
	var data windows.Win32finddata
	handle, err := windows.FindFirstFile(pattern, &data)
	if err != nil {
		return statusDoesNotExist
	}
	defer windows.FindClose(handle)

	foundPendingDelete := false
	for {
		name := windows.UTF16ToString(data.FileName[:])
		if name != "." && name != ".." {
			child16, err := windows.UTF16PtrFromString(winpath + `\` + name)
			if err != nil {
				return statusNotEmpty
			}
			if _, err := windows.GetFileAttributes(child16); err == nil {
				return statusNotEmpty
			} else if err == windows.ERROR_ACCESS_DENIED {
				foundPendingDelete = true
			} else if err != windows.ERROR_FILE_NOT_FOUND {
				return statusNotEmpty
			}
		}
		if err := windows.FindNextFile(handle, &data); err != nil {
			break
		}
	}
	if foundPendingDelete {
		return statusOnlyPendingDeletes
	}
	return statusEmpty
}
