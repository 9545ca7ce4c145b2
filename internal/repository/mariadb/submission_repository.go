package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

type SubmissionRepository struct {
	db *sql.DB
}

// compile-time check: *SubmissionRepository must satisfy port.SubmissionRepository
var _ port.SubmissionRepository = (*SubmissionRepository)(nil)

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

const submissionColumns = `id, author, body, media_keys, source, external_id, external_username, status, decided_by, submitted_at, decided_at`

func scanSubmission(row interface{ Scan(dest ...any) error }) (*model.Submission, error) {
	var sub model.Submission
	var externalID sql.NullString
	if err := row.Scan(
		&sub.ID, &sub.Author, &sub.Body, &sub.MediaKeys,
		&sub.Source, &externalID, &sub.ExternalUsername,
		&sub.Status, &sub.DecidedBy, &sub.SubmittedAt, &sub.DecidedAt,
	); err != nil {
		return nil, err
	}
	sub.ExternalID = externalID.String
	return &sub, nil
}

// nullIfEmpty keeps the (source, external_id) unique key out of the way for
// posts without an external id: NULLs never collide there, empty strings do.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create inserts a pending submission and attaches its media references in
// one transaction, so readers never observe a half-bound submission.
func (r *SubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	log.Printf("creating submission for external id %q by %q...", sub.ExternalID, sub.Author)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const insert = `
      INSERT INTO submissions
        (author, body, media_keys, source, external_id, external_username, status)
      VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	res, err := tx.ExecContext(ctx, insert,
		sub.Author, sub.Body, sub.MediaKeys,
		sub.Source, nullIfEmpty(sub.ExternalID), sub.ExternalUsername,
		model.SubmissionStatusPending,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return port.ErrDuplicateSubmission
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if len(sub.MediaKeys) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(sub.MediaKeys)), ",")
		attach := fmt.Sprintf(`
          UPDATE media_references
          SET record_type = ?, record_id = ?
          WHERE owner = ? AND record_type = ? AND object_key IN (%s)
        `, placeholders)

		args := []any{model.RecordTypeSubmission, id, sub.Author, model.RecordTypeNone}
		for _, k := range sub.MediaKeys {
			args = append(args, k)
		}
		attached, err := tx.ExecContext(ctx, attach, args...)
		if err != nil {
			return err
		}
		n, err := attached.RowsAffected()
		if err != nil {
			return err
		}
		if n != int64(len(sub.MediaKeys)) {
			// a key was claimed by another submission between the ownership
			// check and this write; abort rather than share a reference
			return port.ErrUnownedMedia
		}
	}

	row := tx.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)
	created, err := scanSubmission(row)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	*sub = *created
	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*model.Submission, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *SubmissionRepository) GetByExternalID(ctx context.Context, source, externalID string) (*model.Submission, error) {
	const query = `SELECT ` + submissionColumns + ` FROM submissions WHERE source = ? AND external_id = ?`
	row := r.db.QueryRowContext(ctx, query, source, externalID)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *SubmissionRepository) ListByStatus(ctx context.Context, status string) ([]model.Submission, error) {
	const query = `
      SELECT ` + submissionColumns + `
      FROM submissions
      WHERE status = ?
      ORDER BY submitted_at ASC, id ASC
    `
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sub)
	}
	return out, rows.Err()
}

// Decide is the single all-or-nothing boundary of the pipeline: the status
// compare-and-set and the reference relabelling commit together or not at all.
func (r *SubmissionRepository) Decide(ctx context.Context, id int64, outcome, decidedBy string, decidedAt time.Time) (*model.Submission, error) {
	log.Printf("deciding %q on submission #%d...", outcome, id)

	var status string
	switch outcome {
	case model.OutcomeApprove:
		status = model.SubmissionStatusPublished
	case model.OutcomeReject:
		status = model.SubmissionStatusRejected
	default:
		return nil, fmt.Errorf("unknown outcome %q", outcome)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const cas = `
      UPDATE submissions
      SET status = ?, decided_by = ?, decided_at = ?
      WHERE id = ? AND status = ?
    `
	res, err := tx.ExecContext(ctx, cas, status, decidedBy, decidedAt, id, model.SubmissionStatusPending)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// guard failed: either the row is gone or a concurrent decision won
		var current string
		err := tx.QueryRowContext(ctx, `SELECT status FROM submissions WHERE id = ?`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, port.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, port.ErrAlreadyDecided
	}

	if status == model.SubmissionStatusPublished {
		const relabel = `
          UPDATE media_references
          SET record_type = ?
          WHERE record_id = ? AND record_type = ?
        `
		if _, err := tx.ExecContext(ctx, relabel, model.RecordTypePost, id, model.RecordTypeSubmission); err != nil {
			return nil, err
		}
	}

	row := tx.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)
	decided, err := scanSubmission(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return decided, nil
}

func (r *SubmissionRepository) ListReferencing(ctx context.Context, objectKey string) ([]model.Submission, error) {
	const query = `
      SELECT ` + submissionColumns + `
      FROM submissions
      WHERE JSON_CONTAINS(media_keys, JSON_QUOTE(?))
    `
	rows, err := r.db.QueryContext(ctx, query, objectKey)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sub)
	}
	return out, rows.Err()
}

func (r *SubmissionRepository) StripMediaKey(ctx context.Context, objectKey string) error {
	log.Printf("stripping object %q from referencing submissions...", objectKey)

	const query = `
      UPDATE submissions
      SET media_keys = JSON_REMOVE(media_keys, JSON_UNQUOTE(JSON_SEARCH(media_keys, 'one', ?)))
      WHERE JSON_SEARCH(media_keys, 'one', ?) IS NOT NULL
    `
	_, err := r.db.ExecContext(ctx, query, objectKey, objectKey)
	return err
}
