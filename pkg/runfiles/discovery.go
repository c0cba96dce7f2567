package runfiles

// discoverPaths turns the manifest/directory candidates handed to the
// constructor into a validated pair, deriving missing candidates in a fixed
// order:
//
//  1. take the given candidates if valid;
//  2. otherwise try argv0+".runfiles/MANIFEST" and argv0+".runfiles",
//     falling back to argv0+".runfiles_manifest" for the manifest;
//  3. a still-missing manifest is derived from the directory
//     (<dir>/MANIFEST, then <dir>_manifest);
//  4. a still-missing directory is derived from the manifest by stripping
//     its 9-character suffix ("/MANIFEST" or "_manifest").
//
// Either result may come back empty; both empty means discovery failed.
// Validity checks are injected so they can be faked in tests.
func discoverPaths(argv0, manifest, dir string,
	isManifest, isDirectory func(string) bool) (outManifest, outDirectory string) {

	manifestValid := isManifest(manifest)
	dirValid := isDirectory(dir)

	if !manifestValid && !dirValid && argv0 != "" {
		manifest = argv0 + ".runfiles/MANIFEST"
		dir = argv0 + ".runfiles"
		manifestValid = isManifest(manifest)
		dirValid = isDirectory(dir)
		if !manifestValid {
			manifest = argv0 + ".runfiles_manifest"
			manifestValid = isManifest(manifest)
		}
	}

	if !manifestValid && !dirValid {
		return "", ""
	}

	if !manifestValid {
		manifest = dir + "/MANIFEST"
		manifestValid = isManifest(manifest)
		if !manifestValid {
			manifest = dir + "_manifest"
			manifestValid = isManifest(manifest)
		}
	}

	if !dirValid {
		// Both recognized manifest names are 9 characters long. A valid
		// manifest path from the environment can be shorter than the
		// suffix, in which case no directory can be derived from it.
		const suffixLen = len("/MANIFEST")
		if len(manifest) > suffixLen {
			dir = manifest[:len(manifest)-suffixLen]
			dirValid = isDirectory(dir)
		}
	}

	if manifestValid {
		outManifest = manifest
	}
	if dirValid {
		outDirectory = dir
	}
	return outManifest, outDirectory
}
