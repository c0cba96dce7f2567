// Test Type: Unit Test
// Description: Tests for the runfiles package - manifest/directory
// discovery with faked validity predicates

package runfiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func inSet(valid ...string) func(string) bool {
	set := make(map[string]bool, len(valid))
	for _, v := range valid {
		set[v] = true
	}
	return func(p string) bool { return set[p] }
}

func TestDiscoverPaths(t *testing.T) {
	tests := []struct {
		name         string
		argv0        string
		manifest     string
		dir          string
		manifests    []string
		dirs         []string
		wantManifest string
		wantDir      string
	}{
		{
			name:         "both_candidates_valid",
			argv0:        "/bin/app",
			manifest:     "/mf",
			dir:          "/dir",
			manifests:    []string{"/mf"},
			dirs:         []string{"/dir"},
			wantManifest: "/mf",
			wantDir:      "/dir",
		},
		{
			name:         "argv0_derived_manifest_and_dir",
			argv0:        "/bin/app",
			manifests:    []string{"/bin/app.runfiles/MANIFEST"},
			dirs:         []string{"/bin/app.runfiles"},
			wantManifest: "/bin/app.runfiles/MANIFEST",
			wantDir:      "/bin/app.runfiles",
		},
		{
			name:         "argv0_derived_sibling_manifest",
			argv0:        "/bin/app",
			manifests:    []string{"/bin/app.runfiles_manifest"},
			dirs:         []string{"/bin/app.runfiles"},
			wantManifest: "/bin/app.runfiles_manifest",
			wantDir:      "/bin/app.runfiles",
		},
		{
			name:         "manifest_derived_from_valid_dir",
			argv0:        "/bin/app",
			dir:          "/run/d",
			manifests:    []string{"/run/d/MANIFEST"},
			dirs:         []string{"/run/d"},
			wantManifest: "/run/d/MANIFEST",
			wantDir:      "/run/d",
		},
		{
			name:         "sibling_manifest_derived_from_valid_dir",
			argv0:        "/bin/app",
			dir:          "/run/d",
			manifests:    []string{"/run/d_manifest"},
			dirs:         []string{"/run/d"},
			wantManifest: "/run/d_manifest",
			wantDir:      "/run/d",
		},
		{
			name:         "dir_derived_from_manifest_suffix",
			argv0:        "/bin/app",
			manifest:     "/run/d_manifest",
			manifests:    []string{"/run/d_manifest"},
			dirs:         []string{"/run/d"},
			wantManifest: "/run/d_manifest",
			wantDir:      "/run/d",
		},
		{
			name:         "dir_derived_from_MANIFEST_suffix",
			argv0:        "/bin/app",
			manifest:     "/run/d/MANIFEST",
			manifests:    []string{"/run/d/MANIFEST"},
			dirs:         []string{"/run/d"},
			wantManifest: "/run/d/MANIFEST",
			wantDir:      "/run/d",
		},
		{
			name:         "manifest_only",
			argv0:        "/bin/app",
			manifest:     "/run/d_manifest",
			manifests:    []string{"/run/d_manifest"},
			wantManifest: "/run/d_manifest",
			wantDir:      "",
		},
		{
			name:         "dir_only",
			argv0:        "/bin/app",
			dir:          "/run/d",
			dirs:         []string{"/run/d"},
			wantManifest: "",
			wantDir:      "/run/d",
		},
		{
			name:         "manifest_shorter_than_suffix_derives_no_dir",
			argv0:        "/bin/app",
			manifest:     "/m",
			manifests:    []string{"/m"},
			wantManifest: "/m",
			wantDir:      "",
		},
		{
			name:         "nothing_found",
			argv0:        "/bin/app",
			manifest:     "/stale/mf",
			dir:          "/stale/dir",
			wantManifest: "",
			wantDir:      "",
		},
		{
			name:         "empty_argv0_no_derivation",
			argv0:        "",
			wantManifest: "",
			wantDir:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manifest, dir := discoverPaths(tt.argv0, tt.manifest, tt.dir,
				inSet(tt.manifests...), inSet(tt.dirs...))

			assert.Equal(t, tt.wantManifest, manifest)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}
