package driver

import "os"

// Cache decides whether a translation unit's analyzer output can be
// reused instead of re-running the analyzer, per spec.md §1's mention of
// "on-disk caching of analyzer output" as an out-of-scope collaborator —
// implemented here at the minimal fidelity driver needs to exercise it.
type Cache struct{}

// Fresh reports whether outputPath exists and is no older than every file
// in sources (the translation unit's source file plus, conservatively,
// nothing else — header staleness is not tracked, matching the
// mtime-only granularity of the original tool's cache).
func (Cache) Fresh(outputPath string, sources ...string) bool {
	outInfo, err := os.Stat(outputPath)
	if err != nil {
		return false
	}
	for _, src := range sources {
		srcInfo, err := os.Stat(src)
		if err != nil {
			return false
		}
		if srcInfo.ModTime().After(outInfo.ModTime()) {
			return false
		}
	}
	return true
}
