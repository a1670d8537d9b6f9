package loader

import (
	"os"

	"github.com/passforge/passforge/core/apperr"
)

// PermissionPolicy is "warn" (flag looser-than-mask files and continue) or
// "tighten" (chmod them down to mask), per spec §4.6: "if permissions are
// looser than account_file_mask, either warn and continue or auto-tighten,
// depending on configuration."
type PermissionPolicy int

const (
	PermissionWarn PermissionPolicy = iota
	PermissionTighten
)

// checkPermissions compares path's mode against mask and, depending on
// policy, either returns a FilePermissionLoose warning or chmods the file
// down to mask.
func checkPermissions(path string, mask os.FileMode, policy PermissionPolicy) error {
	info, err := os.Stat(path)
	if err != nil {
		return apperr.Wrap(apperr.IOFailure, path, err, "stat account file %s", path)
	}
	perm := info.Mode().Perm()
	if perm&^mask == 0 {
		return nil
	}
	if policy == PermissionTighten {
		if err := os.Chmod(path, perm&mask); err != nil {
			return apperr.Wrap(apperr.IOFailure, path, err, "tightening permissions on %s", path)
		}
		return nil
	}
	return apperr.New(apperr.FilePermissionLoose, path,
		"%s has mode %o, looser than mask %o", path, perm, mask)
}
