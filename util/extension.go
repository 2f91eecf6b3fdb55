package util

import "strings"

var (
	binaryExtensions = []string{
		"7z",
		"bin",
		"bmp",
		"bz2",
		"dll",
		"exe",
		"gif",
		"gz",
		"jpeg",
		"jpg",
		"out",
		"pdf",
		"png",
		"so",
		"tar",
		"tgz",
		"zip",
	}
	binaryExtensionsMap map[string]bool
)

func init() {
	binaryExtensionsMap = make(map[string]bool, len(binaryExtensions))
	for _, ext := range binaryExtensions {
		binaryExtensionsMap[ext] = true
	}
}

// SkippedInputExt reports whether a file with the given extension (leading
// dot included) is never read as game input. Result files (.out) are
// skipped too, so an output directory nested in the source is not replayed.
func SkippedInputExt(ext string) bool {
	if len(ext) == 0 {
		return false
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	_, found := binaryExtensionsMap[ext]
	return found
}
