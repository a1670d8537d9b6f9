package archive

import (
	"os"
	"time"

	"github.com/passforge/passforge/core/apperr"
)

// IsStale reports whether the archive at path is more than staleDays older
// than mostRecentAccountFile's mtime, per spec §4.8: "The archive is
// considered stale if its mtime is more than archive_stale days older than
// the most recent account file." A missing archive is always stale.
func IsStale(path string, mostRecentAccountFile time.Time, staleDays int) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, apperr.Wrap(apperr.IOFailure, path, err, "stat archive %s", path)
	}
	threshold := mostRecentAccountFile.Add(-time.Duration(staleDays) * 24 * time.Hour)
	return info.ModTime().Before(threshold), nil
}

// WarnIfStale returns an apperr.ArchiveStale warning (never a hard error)
// if the archive is stale, per spec §7: "emit a warning at startup."
func WarnIfStale(path string, mostRecentAccountFile time.Time, staleDays int) error {
	stale, err := IsStale(path, mostRecentAccountFile, staleDays)
	if err != nil {
		return err
	}
	if !stale {
		return nil
	}
	return apperr.New(apperr.ArchiveStale, path, "archive %s is more than %d day(s) older than the most recent account file", path, staleDays)
}
