// Test Type: Unit Test
// Description: Tests for the junction package - Windows path predicates and
// namespace-prefix helpers

package junction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/runlink/pkg/junction"
)

func TestIsAbsoluteNormalizedWindowsPath(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		valid bool
	}{
		{
			name:  "drive_absolute",
			path:  `C:\foo\bar`,
			valid: true,
		},
		{
			name:  "drive_root",
			path:  `c:\`,
			valid: true,
		},
		{
			name:  "unc_prefixed_drive",
			path:  `\\?\C:\foo`,
			valid: true,
		},
		{
			name:  "null_device",
			path:  "NUL",
			valid: true,
		},
		{
			name:  "null_device_lowercase",
			path:  "nul",
			valid: true,
		},
		{
			name:  "empty",
			path:  "",
			valid: false,
		},
		{
			name:  "forward_slashes",
			path:  `C:/foo/bar`,
			valid: false,
		},
		{
			name:  "mixed_separators",
			path:  `C:\foo/bar`,
			valid: false,
		},
		{
			name:  "relative",
			path:  `foo\bar`,
			valid: false,
		},
		{
			name:  "drive_relative",
			path:  `C:foo`,
			valid: false,
		},
		{
			name:  "leading_dot_segment",
			path:  `.\foo`,
			valid: false,
		},
		{
			name:  "inner_dot_segment",
			path:  `C:\foo\.\bar`,
			valid: false,
		},
		{
			name:  "trailing_dot_segment",
			path:  `C:\foo\.`,
			valid: false,
		},
		{
			name:  "leading_dotdot_segment",
			path:  `..\foo`,
			valid: false,
		},
		{
			name:  "inner_dotdot_segment",
			path:  `C:\foo\..\bar`,
			valid: false,
		},
		{
			name:  "trailing_dotdot_segment",
			path:  `C:\foo\..`,
			valid: false,
		},
		{
			name:  "dotfile_name_is_fine",
			path:  `C:\foo\.gitignore`,
			valid: true,
		},
		{
			name:  "unc_prefix_without_drive",
			path:  `\\?\foo\bar`,
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, junction.IsAbsoluteNormalizedWindowsPath(tt.path))
		})
	}
}

func TestHasUNCPrefix(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"win32_namespace", `\\?\C:\x`, true},
		{"kernel_namespace", `\??\C:\x`, true},
		{"device_namespace", `\\.\C:\x`, true},
		{"plain_drive", `C:\x`, false},
		{"short", `\\?`, false},
		{"unc_share", `\\server\share`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, junction.HasUNCPrefix(tt.path))
		})
	}
}

func TestHasDriveSpecifierPrefix(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"plain", `D:\`, true},
		{"prefixed", `\\?\D:\`, true},
		{"lowercase", `d:\dir`, true},
		{"no_separator", `D:`, false},
		{"prefixed_no_drive", `\\?\foo`, false},
		{"digit_drive", `1:\`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, junction.HasDriveSpecifierPrefix(tt.path))
		})
	}
}

func TestAddStripUNCPrefix(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		added    string
		stripped string
	}{
		{
			name:     "plain_path_gains_prefix",
			path:     `C:\foo`,
			added:    `\\?\C:\foo`,
			stripped: `C:\foo`,
		},
		{
			name:     "prefixed_path_unchanged",
			path:     `\\?\C:\foo`,
			added:    `\\?\C:\foo`,
			stripped: `C:\foo`,
		},
		{
			name:     "kernel_prefix_stripped",
			path:     `\??\C:\foo`,
			added:    `\??\C:\foo`,
			stripped: `C:\foo`,
		},
		{
			name:     "null_device_never_prefixed",
			path:     "NUL",
			added:    "NUL",
			stripped: "NUL",
		},
		{
			name:     "empty",
			path:     "",
			added:    "",
			stripped: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.added, junction.AddUNCPrefix(tt.path))
			assert.Equal(t, tt.stripped, junction.StripUNCPrefix(tt.path))
		})
	}
}

func TestIsDevNull(t *testing.T) {
	assert.True(t, junction.IsDevNull("NUL"))
	assert.True(t, junction.IsDevNull("nul"))
	assert.True(t, junction.IsDevNull("Nul"))
	assert.False(t, junction.IsDevNull(`C:\NUL`))
	assert.False(t, junction.IsDevNull(""))
}
