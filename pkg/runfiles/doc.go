// Package runfiles locates the run-time data dependencies of a built
// binary. A binary's runfiles are described either by a manifest file
// mapping workspace-relative paths to absolute paths, or by a directory
// tree of links mirroring those paths. The resolver discovers one or both
// representations from explicit parameters (environment variables and
// argv[0] are read only by the thin New/NewForTest constructors), loads the
// manifest eagerly and is immutable afterwards, so independent instances
// can coexist in one process.
package runfiles
