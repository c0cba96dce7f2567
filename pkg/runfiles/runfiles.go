package runfiles

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/arthur-debert/runlink/pkg/errors"
	"github.com/arthur-debert/runlink/pkg/logging"
)

// Environment variable names
const (
	// EnvManifestFile points at the runfiles manifest file.
	EnvManifestFile = "RUNFILES_MANIFEST_FILE"

	// EnvDirectory points at the runfiles directory tree.
	EnvDirectory = "RUNFILES_DIR"

	// EnvTestSrcdir is the directory variable set for tests.
	EnvTestSrcdir = "TEST_SRCDIR"

	// EnvJavaRunfiles mirrors EnvDirectory for the Java launcher, which
	// still looks up its own variable.
	EnvJavaRunfiles = "JAVA_RUNFILES"
)

// Runfiles resolves logical runfile paths to absolute filesystem paths.
// The zero value is not usable; construct with New, NewForTest or NewFrom.
// A Runfiles is immutable after construction.
type Runfiles struct {
	dir      string
	manifest map[string]string
	env      map[string]string
}

// Option configures NewFrom.
type Option func(*options)

type options struct {
	fs afero.Fs
}

// WithFS substitutes the filesystem used for candidate validation and
// manifest reading. Tests pass an afero.MemMapFs.
func WithFS(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// New discovers runfiles from the RUNFILES_MANIFEST_FILE and RUNFILES_DIR
// environment variables, falling back to candidates derived from the
// running binary's own path.
func New() (*Runfiles, error) {
	return NewFrom(os.Args[0], os.Getenv(EnvManifestFile), os.Getenv(EnvDirectory))
}

// NewForTest is New for test processes, whose runfiles directory arrives in
// TEST_SRCDIR instead of RUNFILES_DIR.
func NewForTest() (*Runfiles, error) {
	return NewFrom(os.Args[0], os.Getenv(EnvManifestFile), os.Getenv(EnvTestSrcdir))
}

// NewFrom builds a resolver from explicit candidates: the invoking binary's
// path and the manifest/directory locations, either of which may be empty
// or stale. Discovery (see discoverPaths) must end with at least one valid
// location or construction fails; a failure is a fatal misconfiguration of
// the calling binary, not a retryable condition, since the binary cannot
// locate any of its declared run-time data.
func NewFrom(argv0, manifestPath, dirPath string, opts ...Option) (*Runfiles, error) {
	logger := logging.GetLogger("runfiles")

	o := options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&o)
	}

	isManifest := func(p string) bool {
		if p == "" {
			return false
		}
		info, err := o.fs.Stat(p)
		return err == nil && info.Mode().IsRegular()
	}
	isDirectory := func(p string) bool {
		if p == "" {
			return false
		}
		info, err := o.fs.Stat(p)
		return err == nil && info.IsDir()
	}

	manifestPath, dirPath = discoverPaths(argv0, manifestPath, dirPath, isManifest, isDirectory)
	if manifestPath == "" && dirPath == "" {
		return nil, errors.Newf(errors.ErrRunfilesDiscovery,
			"no runfiles manifest or directory found for %q", argv0)
	}

	var manifest map[string]string
	if manifestPath != "" {
		var err error
		manifest, err = parseManifest(o.fs, manifestPath)
		if err != nil {
			return nil, err
		}
	}

	logger.Debug().
		Str("manifest", manifestPath).
		Str("directory", dirPath).
		Int("entries", len(manifest)).
		Msg("runfiles discovered")

	return &Runfiles{
		dir:      dirPath,
		manifest: manifest,
		env: map[string]string{
			EnvManifestFile: manifestPath,
			EnvDirectory:    dirPath,
			EnvJavaRunfiles: dirPath,
		},
	}, nil
}

// Rlocation resolves the runfile path rpath to an absolute path. An already
// absolute rpath is returned unchanged. With a non-empty manifest the
// mapped value is returned, and the empty string when rpath is absent (use
// Lookup to tell those apart); otherwise the runfiles directory is joined
// with rpath lexically, with no existence check.
//
// rpath must be a normalized relative path: non-empty, no leading "./" or
// "../", no inner "/./" or "/../", no trailing "/." or "/..", no "//".
// Violations are programming errors and panic.
func (r *Runfiles) Rlocation(rpath string) string {
	result, _ := r.Lookup(rpath)
	return result
}

// Lookup is Rlocation with an explicit found report: found is false only
// when a manifest is in use and rpath is not one of its keys. Directory
// resolution is purely lexical, so it always reports found.
func (r *Runfiles) Lookup(rpath string) (result string, found bool) {
	checkRunfilePath(rpath)
	if isAbs(rpath) {
		return rpath, true
	}
	if len(r.manifest) > 0 {
		result, found = r.manifest[rpath]
		return result, found
	}
	return path.Join(r.dir, rpath), true
}

// Envvars returns a copy of the environment variables a child process needs
// so that its own resolver bootstraps to the same runfiles. Returns nil on
// a nil receiver so callers can propagate "no runfiles" cheaply.
func (r *Runfiles) Envvars() map[string]string {
	if r == nil || r.env == nil {
		return nil
	}
	result := make(map[string]string, len(r.env))
	for k, v := range r.env {
		result[k] = v
	}
	return result
}

// ValidatePath checks that rpath is a normalized relative runfile path:
// non-empty, no leading "./" or "../", no inner "/./" or "/../", no
// trailing "/." or "/..", no "//". Boundary code handing untrusted input
// to Rlocation or Lookup should call this first, since those treat
// violations as caller bugs and panic.
func ValidatePath(rpath string) error {
	if rpath == "" {
		return errors.New(errors.ErrInvalidInput, "empty runfile path")
	}
	if strings.HasPrefix(rpath, "../") ||
		strings.Contains(rpath, "/../") ||
		strings.HasSuffix(rpath, "/..") ||
		strings.HasPrefix(rpath, "./") ||
		strings.Contains(rpath, "/./") ||
		strings.HasSuffix(rpath, "/.") ||
		strings.Contains(rpath, "//") {
		return errors.Newf(errors.ErrInvalidInput, "runfile path %q is not normalized", rpath)
	}
	return nil
}

// checkRunfilePath panics when rpath is not a normalized relative runfile
// path. These are caller bugs, not runtime conditions, so they fail loudly.
func checkRunfilePath(rpath string) {
	if err := ValidatePath(rpath); err != nil {
		panic(fmt.Sprintf("runfiles: %s", err))
	}
}

// isAbs covers both POSIX-style and drive-letter absolute paths, since
// manifests produced on Windows carry targets like "C:/real/file".
func isAbs(p string) bool {
	if path.IsAbs(p) {
		return true
	}
	return len(p) >= 3 &&
		((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z')) &&
		p[1] == ':' && (p[2] == '/' || p[2] == '\\')
}
