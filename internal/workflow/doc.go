// Package workflow implements the client-side flashcard workflow: submit notes
// for generation, persist each returned draft one at a time, then reload the
// full stored set as the authoritative result.
//
// The workflow is best-effort and non-idempotent. A draft that fails to
// persist is reported as a PersistWarning and never aborts the run; there is
// no retry, backoff or deduplication. Two concurrent calls to
// GenerateAndPersist are not serialized against each other, so their persists
// may interleave arbitrarily at the storage backend.
package workflow
