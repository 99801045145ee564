//go:build darwin

package dynload

import "strconv"

func versionedFileNames(base string, major int) []string {
	return []string{
		"lib" + base + "." + strconv.Itoa(major) + ".dylib",
		"lib" + base + ".dylib",
	}
}
