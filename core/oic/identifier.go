package oic

import (
	"regexp"
	"strings"
)

// versionSuffix matches a trailing version like "_1_2_3", "-v2-0-1" or
// ".12.0": an optional separator, an optional leading v, then two to four
// numeric groups delimited by ".", "_" or "-".
var versionSuffix = regexp.MustCompile(`([._-])?([vV]?\d+(?:[._-]\d+){1,3})$`)

// versionCleaner maps the version separators to dots.
var versionCleaner = strings.NewReplacer("_", ".", "-", ".")

// DeriveIntegrationID turns an archive basename into a CODE|VERSION
// identifier. A basename already containing "|" is returned as-is (minus the
// extension). Otherwise a trailing version suffix is split off; when none is
// found the stripped basename is returned unchanged, which activation may
// later reject. The heuristic is lossy for codes that themselves end in
// digit groups.
func DeriveIntegrationID(basename string) string {
	stripped := stripArchiveExt(basename)

	if strings.Contains(stripped, "|") {
		return stripped
	}

	loc := versionSuffix.FindStringSubmatchIndex(stripped)
	if loc == nil {
		return stripped
	}

	version := stripped[loc[4]:loc[5]]
	version = strings.TrimLeft(version, "vV")
	version = versionCleaner.Replace(version)

	codeEnd := loc[4]
	if loc[2] >= 0 {
		codeEnd-- // drop the separator that preceded the version
	}
	code := strings.TrimRight(stripped[:codeEnd], "._-")

	return code + "|" + version
}

func stripArchiveExt(basename string) string {
	for _, ext := range []string{".iar", ".car"} {
		if strings.HasSuffix(basename, ext) {
			return strings.TrimSuffix(basename, ext)
		}
	}
	return basename
}
