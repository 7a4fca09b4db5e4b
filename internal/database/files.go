package database

import (
	"context"
	"dysk-plikow/internal/models"
	"errors"

	"github.com/jackc/pgx/v5"
)

type CreateFileParams struct {
	ID         string
	Filename   string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	OwnerID    int64
	FolderID   *string
	PublicURL  *string
}

func (q *Queries) CreateFile(ctx context.Context, arg CreateFileParams) (*models.File, error) {
	query := `
		INSERT INTO files (id, filename, storage_key, mime_type, size_bytes, owner_id, folder_id, public_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, filename, storage_key, mime_type, size_bytes, owner_id, folder_id, public_url, created_at
	`
	row := q.db.QueryRow(ctx, query,
		arg.ID,
		arg.Filename,
		arg.StorageKey,
		arg.MimeType,
		arg.SizeBytes,
		arg.OwnerID,
		arg.FolderID,
		arg.PublicURL,
	)

	var file models.File
	err := row.Scan(
		&file.ID,
		&file.Filename,
		&file.StorageKey,
		&file.MimeType,
		&file.SizeBytes,
		&file.OwnerID,
		&file.FolderID,
		&file.PublicURL,
		&file.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &file, nil
}

// GetFileByID nie filtruje po właścicielu - rozróżnienie 404 od 403
// należy do warstwy handlerów.
func (q *Queries) GetFileByID(ctx context.Context, id string) (*models.File, error) {
	query := `
		SELECT id, filename, storage_key, mime_type, size_bytes, owner_id, folder_id, public_url, created_at
		FROM files
		WHERE id = $1
	`
	var file models.File

	err := q.db.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.Filename,
		&file.StorageKey,
		&file.MimeType,
		&file.SizeBytes,
		&file.OwnerID,
		&file.FolderID,
		&file.PublicURL,
		&file.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &file, nil
}

func (q *Queries) GetFilesByFolderID(ctx context.Context, ownerID int64, folderID *string) ([]models.File, error) {
	var query string
	var rows pgx.Rows
	var err error

	if folderID == nil {
		query = `SELECT id, filename, storage_key, mime_type, size_bytes, owner_id, folder_id, public_url, created_at
				 FROM files
				 WHERE owner_id = $1 AND folder_id IS NULL
				 ORDER BY created_at DESC`
		rows, err = q.db.Query(ctx, query, ownerID)
	} else {
		query = `SELECT id, filename, storage_key, mime_type, size_bytes, owner_id, folder_id, public_url, created_at
				 FROM files
				 WHERE owner_id = $1 AND folder_id = $2
				 ORDER BY created_at DESC`
		rows, err = q.db.Query(ctx, query, ownerID, *folderID)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		err := rows.Scan(
			&file.ID,
			&file.Filename,
			&file.StorageKey,
			&file.MimeType,
			&file.SizeBytes,
			&file.OwnerID,
			&file.FolderID,
			&file.PublicURL,
			&file.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if files == nil {
		return []models.File{}, nil
	}

	return files, nil
}

func (q *Queries) DeleteFile(ctx context.Context, id string) error {
	query := `DELETE FROM files WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id)
	return err
}

func (q *Queries) FileExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM files WHERE id = $1)"
	err := q.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
