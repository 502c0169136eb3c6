package storage

import "io"

// Storage abstracts asset persistence for dependency injection and testing.
type Storage interface {
	// StoreImage persists the content under a freshly generated name and
	// returns that name. The original name only contributes its extension.
	StoreImage(r io.Reader, originalName string) (string, error)

	// DeleteIfExists removes a previously stored asset. Absence is not an
	// error and failures never propagate.
	DeleteIfExists(name string)
}
