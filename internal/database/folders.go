package database

import (
	"context"
	"dysk-plikow/internal/models"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrParentFolderNotFound = errors.New("parent folder does not exist")

type CreateFolderParams struct {
	ID       string
	Name     string
	OwnerID  int64
	ParentID *string
}

func (q *Queries) CreateFolder(ctx context.Context, arg CreateFolderParams) (*models.Folder, error) {
	query := `
		INSERT INTO folders (id, name, owner_id, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, owner_id, parent_id, created_at
	`
	row := q.db.QueryRow(ctx, query, arg.ID, arg.Name, arg.OwnerID, arg.ParentID)

	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.Name,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrParentFolderNotFound
		}
		return nil, err
	}

	return &folder, nil
}

// GetFolderByID nie filtruje po właścicielu - rozróżnienie 404 od 403
// należy do warstwy handlerów.
func (q *Queries) GetFolderByID(ctx context.Context, id string) (*models.Folder, error) {
	query := `
		SELECT id, name, owner_id, parent_id, created_at
		FROM folders
		WHERE id = $1
	`
	var folder models.Folder

	err := q.db.QueryRow(ctx, query, id).Scan(
		&folder.ID,
		&folder.Name,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &folder, nil
}

func (q *Queries) GetFoldersByParentID(ctx context.Context, ownerID int64, parentID *string) ([]models.Folder, error) {
	var query string
	var rows pgx.Rows
	var err error

	if parentID == nil {
		query = `SELECT id, name, owner_id, parent_id, created_at
				 FROM folders
				 WHERE owner_id = $1 AND parent_id IS NULL
				 ORDER BY created_at DESC`
		rows, err = q.db.Query(ctx, query, ownerID)
	} else {
		query = `SELECT id, name, owner_id, parent_id, created_at
				 FROM folders
				 WHERE owner_id = $1 AND parent_id = $2
				 ORDER BY created_at DESC`
		rows, err = q.db.Query(ctx, query, ownerID, *parentID)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.Name,
			&folder.OwnerID,
			&folder.ParentID,
			&folder.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if folders == nil {
		return []models.Folder{}, nil
	}

	return folders, nil
}

func (q *Queries) DeleteFolder(ctx context.Context, id string) error {
	query := `DELETE FROM folders WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id)
	return err
}

func (q *Queries) FolderExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM folders WHERE id = $1)"
	err := q.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
