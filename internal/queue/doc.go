// Package queue persists audio jobs in SQLite and owns their lifecycle.
//
// The Store manages database connections, schema initialization, the atomic
// claim used to hand a job to exactly one worker, and the terminal
// transitions recorded on completion or failure. Jobs move through a fixed
// state machine (pending -> processing -> done|error); terminal states are
// never left and never overwritten.
//
// The database is the only shared mutable state between the API process and
// worker processes. All mutation goes through CreateJob, ClaimNext, Complete,
// and Fail; concurrent access relies on SQLite's WAL journal and transaction
// isolation rather than in-process locking.
//
// Treat this package as the single source of truth for queue semantics; when
// you add statuses or columns, update schema.sql and bump schemaVersion.
package queue
