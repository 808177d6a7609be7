package domain

import (
	"errors"
	"fmt"
)

// ValidationError rejects a bad rule or config parameter before a run starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ActionError wraps a failed remote edit or delete. Fatal errors are the
// authentication class and abort the whole run; anything else is absorbed
// as a per-item skip.
type ActionError struct {
	Op     string
	ItemID string
	Fatal  bool
	Err    error
}

func (e *ActionError) Error() string {
	if e.Fatal {
		return fmt.Sprintf("%s %s: fatal: %v", e.Op, e.ItemID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.ItemID, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// BackupError marks a failed backup write. Losing one backup entry must
// never block deletion of the batch, so this is always recovered locally.
type BackupError struct{ Err error }

func (e *BackupError) Error() string { return fmt.Sprintf("backup write: %v", e.Err) }
func (e *BackupError) Unwrap() error { return e.Err }

// IsFatal reports whether err should abort the run rather than skip the item.
func IsFatal(err error) bool {
	var ae *ActionError
	return errors.As(err, &ae) && ae.Fatal
}
