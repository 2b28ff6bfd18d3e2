package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewJobID allocates a fresh short job identifier.
func NewJobID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// CreateJob inserts a pending job together with all of its clips as a single
// transaction. A partially created job (job row without clips, or clip rows
// without a job) is never observable. Returns the persisted snapshot.
func (s *Store) CreateJob(ctx context.Context, clips []Clip) (*Job, error) {
	if len(clips) == 0 {
		return nil, ErrNoClips
	}
	for i, clip := range clips {
		if len(clip.Payload) == 0 {
			return nil, fmt.Errorf("%w: clip %d has no payload", ErrNoClips, i)
		}
	}

	ctx = ensureContext(ctx)
	id := NewJobID()
	timestamp := nowTimestamp()

	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin create tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO jobs (id, status, created_at) VALUES (?, ?, ?)`,
			id,
			StatusPending,
			timestamp,
		); err != nil {
			return fmt.Errorf("insert job: %w", err)
		}

		for _, clip := range clips {
			hint := strings.TrimSpace(clip.FormatHint)
			if hint == "" {
				hint = DefaultFormatHint
			}
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO job_clips (job_id, payload, format_hint) VALUES (?, ?, ?)`,
				id,
				clip.Payload,
				hint,
			); err != nil {
				return fmt.Errorf("insert clip: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit create: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetJob(ctx, id)
}

// GetJob fetches the current job snapshot by identifier.
func (s *Store) GetJob(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// Clips returns a job's clips in submission order.
func (s *Store) Clips(ctx context.Context, id string) ([]Clip, error) {
	return s.clips(ensureContext(ctx), s.db, id)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) clips(ctx context.Context, q querier, id string) ([]Clip, error) {
	rows, err := q.QueryContext(
		ctx,
		`SELECT payload, format_hint FROM job_clips WHERE job_id = ? ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query clips: %w", err)
	}
	defer rows.Close()

	var clips []Clip
	for rows.Next() {
		var clip Clip
		if err := rows.Scan(&clip.Payload, &clip.FormatHint); err != nil {
			return nil, fmt.Errorf("scan clip: %w", err)
		}
		clips = append(clips, clip)
	}
	return clips, rows.Err()
}

// List returns jobs filtered by status set (or all jobs when no status is
// provided), oldest first.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Job, error) {
	ctx = ensureContext(ctx)
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	orderClause := ` ORDER BY created_at, rowid`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Stats returns a count of jobs grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT status, COUNT(1) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("queue stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// Health aggregates queue state for diagnostic output.
func (s *Store) Health(ctx context.Context) (HealthSummary, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return HealthSummary{}, err
	}
	health := HealthSummary{}
	for status, count := range stats {
		health.Total += count
		switch status {
		case StatusPending:
			health.Pending += count
		case StatusProcessing:
			health.Processing += count
		case StatusDone:
			health.Done += count
		case StatusError:
			health.Error += count
		}
	}
	return health, nil
}

// ClearFinished removes done and errored jobs, retaining in-flight work.
func (s *Store) ClearFinished(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM jobs WHERE status IN (?, ?)`, StatusDone, StatusError)
	if err != nil {
		return 0, fmt.Errorf("clear finished: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes all jobs from the queue.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM jobs`)
	if err != nil {
		return 0, fmt.Errorf("clear queue: %w", err)
	}
	return res.RowsAffected()
}

const jobColumns = "id, status, created_at, completed_at, result_url, error_message"

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		id           string
		statusStr    string
		createdRaw   sql.NullString
		completedRaw sql.NullString
		resultURL    sql.NullString
		errorMessage sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&statusStr,
		&createdRaw,
		&completedRaw,
		&resultURL,
		&errorMessage,
	); err != nil {
		return nil, err
	}

	job := &Job{
		ID:           id,
		Status:       Status(statusStr),
		ResultURL:    resultURL.String,
		ErrorMessage: errorMessage.String,
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		job.CreatedAt = created
	}
	if completedRaw.Valid {
		if completed, err := parseTimeString(completedRaw.String); err == nil {
			job.CompletedAt = &completed
		}
	}
	return job, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
