package portal

import (
	"fmt"
)

// AttachError means the engineering tool is not available, the export cannot continue.
type AttachError struct {
	ProcessID int
	Err       error
}

func (e *AttachError) Error() string {
	if e.ProcessID == 0 {
		return fmt.Sprintf("cannot attach to the engineering tool: %s", e.Err)
	}
	return fmt.Sprintf("cannot attach to the engineering tool process %d: %s", e.ProcessID, e.Err)
}

func (e *AttachError) Unwrap() error {
	return e.Err
}

// MissingContainerError means the device item has no expected software, the item is skipped.
type MissingContainerError struct {
	Device string
	Item   string
	Want   string
}

func (e MissingContainerError) Error() string {
	return fmt.Sprintf(`device item "%s" of device "%s" has no %s software`, e.Item, e.Device, e.Want)
}
