package runfiles

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/spf13/afero"

	"github.com/arthur-debert/runlink/pkg/errors"
)

// parseManifest reads a runfiles manifest eagerly into memory. Each line is
// "<runfile-path> <absolute-target-path>" with a single space separator; a
// line with no space maps the key to the empty string. Both LF and CRLF
// endings are accepted since the producing toolchain differs by platform.
// Duplicate keys resolve to the last line, matching a forward scan that
// overwrites on insert.
func parseManifest(fs afero.Fs, path string) (map[string]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead,
			"cannot read runfiles manifest %q", path)
	}

	mapping := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if key, value, found := strings.Cut(line, " "); found {
			mapping[key] = value
		} else {
			mapping[line] = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead,
			"cannot scan runfiles manifest %q", path)
	}
	return mapping, nil
}
