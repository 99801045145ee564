//go:build !darwin && !windows

package dynload

import "strconv"

func versionedFileNames(base string, major int) []string {
	return []string{
		"lib" + base + ".so." + strconv.Itoa(major),
		"lib" + base + ".so",
	}
}
