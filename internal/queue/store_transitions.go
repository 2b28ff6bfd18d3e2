package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ClaimNext atomically hands the oldest pending job to the caller. The
// pending->processing transition and the clip read happen inside one
// transaction, so two concurrent claimers can never receive the same job:
// the conditional update only matches a row still in pending, and SQLite
// serializes the write. Returns nil when no pending job exists.
func (s *Store) ClaimNext(ctx context.Context) (*ClaimedJob, error) {
	ctx = ensureContext(ctx)

	var claimed *ClaimedJob
	err := retryOnBusy(ctx, func() error {
		claimed = nil
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin claim tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		var id string
		row := tx.QueryRowContext(
			ctx,
			`UPDATE jobs SET status = ?
             WHERE id = (
                 SELECT id FROM jobs WHERE status = ? ORDER BY created_at, rowid LIMIT 1
             ) AND status = ?
             RETURNING id`,
			StatusProcessing,
			StatusPending,
			StatusPending,
		)
		if err := row.Scan(&id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return tx.Commit()
			}
			return fmt.Errorf("claim next job: %w", err)
		}

		clips, err := s.clips(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit claim: %w", err)
		}
		claimed = &ClaimedJob{ID: id, Clips: clips}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// Complete records the done state with the published result location. Valid
// only from a non-terminal state; a finished job is never overwritten.
func (s *Store) Complete(ctx context.Context, id, resultURL string) error {
	return s.finish(ctx, id, StatusDone, resultURL, "")
}

// Fail records the error state with an operator-facing message. Same
// validity rule as Complete.
func (s *Store) Fail(ctx context.Context, id, message string) error {
	return s.finish(ctx, id, StatusError, "", message)
}

func (s *Store) finish(ctx context.Context, id string, terminal Status, resultURL, message string) error {
	ctx = ensureContext(ctx)
	timestamp := nowTimestamp()

	res, err := s.execWithRetry(
		ctx,
		`UPDATE jobs
         SET status = ?, completed_at = ?, result_url = ?, error_message = ?
         WHERE id = ? AND status IN (?, ?)`,
		terminal,
		timestamp,
		nullableString(resultURL),
		nullableString(message),
		id,
		StatusPending,
		StatusProcessing,
	)
	if err != nil {
		return fmt.Errorf("finish job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// No row matched: either the id is unknown or the job already finished.
	if _, err := s.GetJob(ctx, id); err != nil {
		return err
	}
	return ErrJobFinished
}

// ResetStuckProcessing returns processing jobs to pending. There is no lease
// or heartbeat on claimed jobs, so a worker that dies mid-pipeline leaves its
// job in processing until an operator runs this.
func (s *Store) ResetStuckProcessing(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE jobs SET status = ? WHERE status = ?`,
		StatusPending,
		StatusProcessing,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck jobs: %w", err)
	}
	return res.RowsAffected()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
