package junction

import "strings"

// uncPrefix is meaningful to the Win32 API: it disables path parsing and
// lifts the MAX_PATH limit. Not to be confused with the kernel's "\??\"
// object-path prefix used inside reparse data.
const uncPrefix = `\\?\`

// IsDevNull reports whether path names the Windows null device. The null
// device is always a valid path and is never UNC-prefixed.
func IsDevNull(path string) bool {
	return strings.EqualFold(path, "NUL")
}

// HasUNCPrefix reports whether path starts with one of the Windows
// namespace prefixes: `\\?\`, `\??\` or `\\.\`.
func HasUNCPrefix(path string) bool {
	return len(path) >= 4 &&
		path[0] == '\\' &&
		(path[1] == '\\' || path[1] == '?' || path[1] == '.') &&
		(path[2] == '?' || path[2] == '.') &&
		path[3] == '\\'
}

// HasDriveSpecifierPrefix reports whether path starts with a drive letter
// and separator (`X:\`), optionally behind a namespace prefix.
func HasDriveSpecifierPrefix(path string) bool {
	if HasUNCPrefix(path) {
		return len(path) >= 7 && isASCIILetter(path[4]) && path[5] == ':' && path[6] == '\\'
	}
	return len(path) >= 3 && isASCIILetter(path[0]) && path[1] == ':' && path[2] == '\\'
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsAbsoluteNormalizedWindowsPath reports whether path is absolute, uses
// backslash separators exclusively, has a drive specifier and contains no
// "." or ".." segments. The null device passes unconditionally. Every entry
// point of this package rejects paths failing this check before touching
// the filesystem.
func IsAbsoluteNormalizedWindowsPath(path string) bool {
	if path == "" {
		return false
	}
	if IsDevNull(path) {
		return true
	}
	if strings.ContainsRune(path, '/') {
		return false
	}
	return HasDriveSpecifierPrefix(path) &&
		!strings.HasPrefix(path, `.\`) &&
		!strings.Contains(path, `\.\`) &&
		!strings.HasSuffix(path, `\.`) &&
		!strings.HasPrefix(path, `..\`) &&
		!strings.Contains(path, `\..\`) &&
		!strings.HasSuffix(path, `\..`)
}

// AddUNCPrefix prepends `\\?\` unless path is empty, names the null device
// or already carries a namespace prefix.
func AddUNCPrefix(path string) string {
	if path == "" || IsDevNull(path) || HasUNCPrefix(path) {
		return path
	}
	return uncPrefix + path
}

// StripUNCPrefix removes a leading namespace prefix if present. The kernel
// form of a junction target must not carry the Win32 `\\?\` prefix.
func StripUNCPrefix(path string) string {
	if HasUNCPrefix(path) {
		return path[4:]
	}
	return path
}
