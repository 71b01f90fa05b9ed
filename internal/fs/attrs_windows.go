//go:build windows

package fs

import "golang.org/x/sys/windows"

func fileAttributes(path string) (uint32, error) {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	return windows.GetFileAttributes(ptr)
}

// IsHidden reports whether the entry carries the hidden attribute. Dotfiles
// count as hidden when the attributes cannot be read.
func IsHidden(fullPath, name string) bool {
	attrs, err := fileAttributes(fullPath)
	if err != nil {
		return len(name) > 0 && name[0] == '.' && name != ParentName
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}

// skipEntry drops compatibility junctions ("Application Data" and friends):
// system reparse points that refuse to be listed.
func skipEntry(fullPath string) bool {
	attrs, err := fileAttributes(fullPath)
	if err != nil {
		return false
	}
	const junction = windows.FILE_ATTRIBUTE_SYSTEM | windows.FILE_ATTRIBUTE_REPARSE_POINT
	return attrs&junction == junction
}
