// Package checksum fingerprints generated migrations.
//
// Two values identify a migration:
//
//   - Content checksum: SHA-256 of the exact bytes written, so any change to
//     the dataset or to statement formatting is detected.
//   - Migration ID: a UUID v5 derived from the migration file name only, so
//     regenerating 0001_initial_data.sql keeps the same identity while its
//     content checksum changes.
//
// # Example Usage
//
//	content := writer.Render(lines)
//	sum := checksum.Content(content)
//	id := checksum.MigrationID("db/migrations/0001_initial_data.sql")
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package checksum
