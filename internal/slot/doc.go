// Package slot provides the persisted key-value slot the workout store
// writes its serialized list to.
//
// A Slot is a tiny get/set interface so the store can be handed any
// backend, including the in-memory double used by tests.
//
// Backends:
//   - Memory: process-local map, for tests and throwaway sessions
//   - File: one JSON file per key, written atomically through fsops
//   - Billy: one file per key on any go-billy filesystem
//   - Git: Billy plus a go-git repository; every Set is a commit
//   - SQL: a key/value table in SQLite or PostgreSQL
package slot
