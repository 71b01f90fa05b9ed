//go:build !windows

package fs

// IsHidden reports whether name is a dotfile. The ".." row is not hidden.
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.' && name != ParentName
}

func skipEntry(string) bool {
	return false
}
