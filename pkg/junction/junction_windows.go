//go:build windows

package junction

import (
	"strings"

	"golang.org/x/sys/windows"

	"github.com/arthur-debert/runlink/pkg/errors"
	"github.com/arthur-debert/runlink/pkg/logging"
)

const metadataFlags = windows.FILE_FLAG_OPEN_REPARSE_POINT | windows.FILE_FLAG_BACKUP_SEMANTICS

// Create makes name a junction pointing at target. Both paths must be
// absolute normalized Windows paths. Create is idempotent: a junction that
// already points at target (compared case-insensitively) is CreateSuccess.
// A concurrent process winning the race to create something else at name is
// reported through the already-exists outcomes, never overwritten.
func Create(name, target string) (CreateOutcome, error) {
	logger := logging.GetLogger("junction")

	if !IsAbsoluteNormalizedWindowsPath(name) {
		return CreateError, errors.Newf(errors.ErrInvalidPath,
			"junction name %q is not an absolute normalized Windows path", name)
	}
	if !IsAbsoluteNormalizedWindowsPath(target) {
		return CreateError, errors.Newf(errors.ErrInvalidPath,
			"junction target %q is not an absolute normalized Windows path", target)
	}

	// The kernel wants the target with "\??\" in front and no "\\?\".
	kernelTarget := StripUNCPrefix(target)
	if utf16Len(kernelTarget) > MaxTargetLength {
		return CreateTargetTooLong, nil
	}

	name16, err := windows.UTF16PtrFromString(AddUNCPrefix(name))
	if err != nil {
		return CreateError, errors.Wrapf(err, errors.ErrInvalidPath,
			"junction name %q cannot be encoded", name)
	}

	// Junctions are directories, so create a directory first. If that
	// fails we don't care why: the path may exist already, or we lack
	// permission, or a racing process got there first. Either way fall
	// back to inspecting whatever is there.
	create := windows.CreateDirectory(name16, nil) == nil

	var handle windows.Handle
	if create {
		handle, err = windows.CreateFile(name16,
			windows.GENERIC_READ|windows.GENERIC_WRITE,
			windows.FILE_SHARE_READ, nil,
			windows.OPEN_EXISTING, metadataFlags, 0)
	}
	if !create || err != nil {
		// Could not open for writing: the path disappeared, turned into a
		// file, or another process holds it without write sharing. Open
		// for metadata only with maximal sharing and check the target.
		create = false
		handle, err = windows.CreateFile(name16, 0,
			windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
			nil, windows.OPEN_EXISTING, metadataFlags, 0)
		if err != nil {
			switch err {
			case windows.ERROR_SHARING_VIOLATION:
				// Held open by another process.
				return CreateAccessDenied, nil
			case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND:
				// The entry or one of its parents vanished meanwhile.
				return CreateDisappeared, nil
			}
			return CreateError, errors.NewWin32("CreateFileW", name, err)
		}
	}
	defer windows.CloseHandle(handle)

	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(handle, &info); err != nil {
		return CreateError, errors.NewWin32("GetFileInformationByHandle", name, err)
	}
	attrs := info.FileAttributes

	if attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
		// Already a reparse point. Do not overwrite, verify instead.
		create = false
	}
	if create && attrs&windows.FILE_ATTRIBUTE_DIRECTORY == 0 {
		// We created the directory but another process turned it into
		// something that is neither a directory nor a reparse point.
		return CreateError, errors.Newf(errors.ErrWin32,
			"unexpected state at %q: attrs=0x%08x", name, attrs)
	}
	if !create && attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT == 0 {
		return CreateAlreadyExistsButNotJunction, nil
	}

	if create {
		payload, err := encodeMountPointPayload(kernelTarget)
		if err != nil {
			return CreateError, err
		}
		var bytesReturned uint32
		if err := windows.DeviceIoControl(handle, windows.FSCTL_SET_REPARSE_POINT,
			&payload[0], uint32(len(payload)), nil, 0, &bytesReturned, nil); err != nil {
			if err == windows.ERROR_DIR_NOT_EMPTY {
				// Another process filled the fresh directory before we
				// could turn it into a junction.
				return CreateAlreadyExistsButNotJunction, nil
			}
			return CreateError, errors.NewWin32("DeviceIoControl", name, err)
		}
		logger.Debug().Str("name", name).Str("target", target).Msg("junction created")
		return CreateSuccess, nil
	}

	// The junction pre-existed (or we lost the race). Check its target.
	actual, actualLen, isJunction, err := readTargetByHandle(handle)
	if err != nil {
		return CreateError, errors.Wrapf(err, errors.ErrWin32,
			"reading existing reparse point at %q", name)
	}
	if !isJunction {
		// A reparse point with some other tag, e.g. a directory symlink.
		return CreateAlreadyExistsButNotJunction, nil
	}
	if actualLen != utf16Len(kernelTarget) || !strings.EqualFold(actual, kernelTarget) {
		return CreateAlreadyExistsWithDifferentTarget, nil
	}
	return CreateSuccess, nil
}

// Read returns the target of the junction at path and the target's length
// in UTF-16 code units.
func Read(path string) (target string, length int, outcome ReadOutcome, err error) {
	if !IsAbsoluteNormalizedWindowsPath(path) {
		return "", 0, ReadError, errors.Newf(errors.ErrInvalidPath,
			"junction path %q is not an absolute normalized Windows path", path)
	}
	path16, err := windows.UTF16PtrFromString(AddUNCPrefix(path))
	if err != nil {
		return "", 0, ReadError, errors.Wrapf(err, errors.ErrInvalidPath,
			"junction path %q cannot be encoded", path)
	}

	handle, err := windows.CreateFile(path16, 0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil, windows.OPEN_EXISTING, metadataFlags, 0)
	if err != nil {
		switch err {
		case windows.ERROR_SHARING_VIOLATION:
			return "", 0, ReadAccessDenied, nil
		case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND:
			return "", 0, ReadDoesNotExist, nil
		}
		return "", 0, ReadError, errors.NewWin32("CreateFileW", path, err)
	}
	defer windows.CloseHandle(handle)

	target, length, isJunction, err := readTargetByHandle(handle)
	if err != nil {
		if err == windows.ERROR_NOT_A_REPARSE_POINT {
			return "", 0, ReadNotAJunction, nil
		}
		return "", 0, ReadError, errors.NewWin32("DeviceIoControl", path, err)
	}
	if !isJunction {
		return "", 0, ReadNotAJunction, nil
	}
	return target, length, ReadSuccess, nil
}

// readTargetByHandle fetches the reparse buffer through the open handle and
// decodes the kernel-form target. The raw Win32 errno is returned unwrapped
// so callers can switch on it.
func readTargetByHandle(handle windows.Handle) (target string, length int, isJunction bool, err error) {
	buf := make([]byte, maxReparseDataBufferSize)
	var bytesReturned uint32
	if err := windows.DeviceIoControl(handle, windows.FSCTL_GET_REPARSE_POINT,
		nil, 0, &buf[0], uint32(len(buf)), &bytesReturned, nil); err != nil {
		return "", 0, false, err
	}
	return decodeMountPointTarget(buf[:bytesReturned])
}

// IsJunctionOrDirectorySymlink reports whether path is a directory carrying
// a reparse point, which covers both junctions and directory symlinks.
func IsJunctionOrDirectorySymlink(path string) (bool, error) {
	if !IsAbsoluteNormalizedWindowsPath(path) {
		return false, errors.Newf(errors.ErrInvalidPath,
			"path %q is not an absolute normalized Windows path", path)
	}
	path16, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrInvalidPath, "path %q cannot be encoded", path)
	}
	attrs, err := windows.GetFileAttributes(path16)
	if err != nil {
		return false, errors.NewWin32("GetFileAttributesW", path, err)
	}
	return attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0 &&
		attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0, nil
}

// GetLongPath resolves 8.3-style short path components to their long form.
func GetLongPath(path string) (string, error) {
	if !IsAbsoluteNormalizedWindowsPath(path) {
		return "", errors.Newf(errors.ErrInvalidPath,
			"path %q is not an absolute normalized Windows path", path)
	}
	path16, err := windows.UTF16PtrFromString(AddUNCPrefix(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidPath, "path %q cannot be encoded", path)
	}
	n, err := windows.GetLongPathName(path16, nil, 0)
	if err != nil {
		return "", errors.NewWin32("GetLongPathNameW", path, err)
	}
	buf := make([]uint16, n)
	if _, err := windows.GetLongPathName(path16, &buf[0], n); err != nil {
		return "", errors.NewWin32("GetLongPathNameW", path, err)
	}
	return windows.UTF16ToString(buf), nil
}
