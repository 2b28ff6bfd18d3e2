package queue

import "errors"

// ErrNotFound indicates the requested job id has no row.
var ErrNotFound = errors.New("job not found")

// ErrJobFinished indicates a terminal transition was requested on a job that
// is already done or errored. Terminal results are never overwritten.
var ErrJobFinished = errors.New("job already finished")

// ErrNoClips indicates a submission carried no audio clips. The job row is
// never created.
var ErrNoClips = errors.New("job requires at least one clip")
