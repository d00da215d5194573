package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// NamespaceMigration is the UUID namespace for migration identities,
// derived from the URL namespace and "trackseed/migration-identity/v1".
var NamespaceMigration = uuid.NewSHA1(uuid.NameSpaceURL, []byte("trackseed/migration-identity/v1"))

// Content returns the hex SHA-256 of content.
func Content(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// MigrationID returns the deterministic identity of the migration at path.
// Only the lower-cased file name participates, so the same migration keeps
// its ID whichever directory it is generated into.
func MigrationID(path string) uuid.UUID {
	name := strings.ToLower(filepath.Base(filepath.ToSlash(path)))
	return uuid.NewSHA1(NamespaceMigration, []byte(name))
}
