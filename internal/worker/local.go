package worker

import (
	"context"

	"voxlog/internal/queue"
)

// Publisher turns a finished note into a durable page and returns its URL.
type Publisher interface {
	Publish(ctx context.Context, title, body string) (string, error)
}

// LocalSource claims and reports against the store directly. It backs the
// embedded worker inside the server process.
type LocalSource struct {
	store     *queue.Store
	publisher Publisher
}

// NewLocalSource wires a local claim source.
func NewLocalSource(store *queue.Store, publisher Publisher) *LocalSource {
	return &LocalSource{store: store, publisher: publisher}
}

func (s *LocalSource) Next(ctx context.Context) (*queue.ClaimedJob, error) {
	return s.store.ClaimNext(ctx)
}

// Submit publishes the note and marks the job done with the page URL. A
// publish failure leaves the job in processing for the caller to fail.
func (s *LocalSource) Submit(ctx context.Context, jobID, title, body string) error {
	url, err := s.publisher.Publish(ctx, title, body)
	if err != nil {
		return err
	}
	return s.store.Complete(ctx, jobID, url)
}

func (s *LocalSource) Fail(ctx context.Context, jobID, message string) error {
	return s.store.Fail(ctx, jobID, message)
}
