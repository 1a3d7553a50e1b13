// Package records persists small single-value records (credentials, the
// active connection address, the server config) at fixed filesystem paths.
//
// A Store pairs a path with a Codec. Absence of the file is a normal state
// reported as ok == false; an empty or malformed file is an ErrCodec error.
//
// Every error wraps exactly one of the kind sentinels so callers can react
// with errors.Is:
//
//	ErrDir        parent directory could not be checked or created
//	ErrFile       target could not be created, opened, renamed or removed
//	ErrCodec      value could not be encoded or decoded
//	ErrReadWrite  I/O failed after the file was opened
//
// Writes go through a temporary sibling file and a rename, so readers never
// observe a half-written record. There is no cross-process locking: the last
// writer wins.
package records
