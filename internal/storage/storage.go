package storage

import (
	"context"
	"io"
)

// BlobStorage to fizyczny magazyn bajtów adresowany kluczami. Hierarchia
// folderów istnieje fizycznie tylko w wariancie lokalnym; S3 reprezentuje ją
// wyłącznie prefiksami kluczy.
type BlobStorage interface {
	// NewFileKey wyznacza klucz dla nowo wgrywanego pliku.
	NewFileKey(ownerID int64, folderID *string, originalName string) (string, error)

	Save(ctx context.Context, key string, data io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error

	// ProvisionFolder i RemoveFolderTree są no-opami dla S3.
	ProvisionFolder(ctx context.Context, folderID string) error
	RemoveFolderTree(ctx context.Context, folderID string) error

	// PublicURL zwraca (url, true) tylko dla backendów, które wystawiają
	// publiczne adresy (S3).
	PublicURL(key string) (string, bool)
}
