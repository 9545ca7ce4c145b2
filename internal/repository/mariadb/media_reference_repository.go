package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/go-sql-driver/mysql"

	"github.com/lcabrel/botposts-ms-go/internal/model"
	"github.com/lcabrel/botposts-ms-go/internal/port"
)

type MediaReferenceRepository struct {
	db *sql.DB
}

// compile-time check: *MediaReferenceRepository must satisfy port.MediaReferenceRepository
var _ port.MediaReferenceRepository = (*MediaReferenceRepository)(nil)

func NewMediaReferenceRepository(db *sql.DB) *MediaReferenceRepository {
	return &MediaReferenceRepository{db: db}
}

func (r *MediaReferenceRepository) Create(ctx context.Context, ref *model.MediaReference) error {
	log.Printf("creating media reference for object %q, owner %q...", ref.ObjectKey, ref.Owner)

	const query = `
      INSERT INTO media_references
        (id, object_key, owner, kind, record_type, record_id, width, height)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		ref.ID, ref.ObjectKey, ref.Owner, ref.Kind,
		ref.RecordType, ref.RecordID, ref.Width, ref.Height,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return port.ErrDuplicateReference
		}
		return err
	}

	return nil
}

func (r *MediaReferenceRepository) GetByKey(ctx context.Context, objectKey string) (*model.MediaReference, error) {
	const query = `
      SELECT id, object_key, owner, kind, record_type, record_id, width, height, created_at
      FROM media_references
      WHERE object_key = ?
    `
	row := r.db.QueryRowContext(ctx, query, objectKey)
	var ref model.MediaReference
	if err := row.Scan(
		&ref.ID, &ref.ObjectKey, &ref.Owner, &ref.Kind,
		&ref.RecordType, &ref.RecordID, &ref.Width, &ref.Height,
		&ref.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, port.ErrRefNotFound
		}
		return nil, err
	}

	return &ref, nil
}

// Delete removes the reference for the key; deleting an unknown key is a
// no-op success so detach retries stay safe.
func (r *MediaReferenceRepository) Delete(ctx context.Context, objectKey string) error {
	log.Printf("detaching media reference for object %q...", objectKey)

	const query = `DELETE FROM media_references WHERE object_key = ?`
	_, err := r.db.ExecContext(ctx, query, objectKey)
	return err
}
