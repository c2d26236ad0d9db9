package uuid

import (
	"os"
	"path/filepath"

	google_uuid "github.com/google/uuid"
)

// MustUUID returns a random UUID string. It panics
// if the system's source of randomness fails.
func MustUUID() string {
	return google_uuid.New().String()
}

// TempPath returns a fresh path inside the system temp
// directory whose base name starts with prefix
func TempPath(prefix string) string {
	return filepath.Join(os.TempDir(), prefix+"-"+MustUUID())
}
