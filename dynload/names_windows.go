//go:build windows

package dynload

import "strconv"

func versionedFileNames(base string, major int) []string {
	return []string{
		base + "64_" + strconv.Itoa(major) + ".dll",
		base + "64.dll",
	}
}
