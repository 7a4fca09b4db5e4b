package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jaevor/go-nanoid"
)

// LocalStorage trzyma bloby plasko w jednym katalogu (przynaleznosc do
// folderu jest tylko logiczna, w metadanych). Katalogi folderów istnieją
// fizycznie, ale zawsze puste.
type LocalStorage struct {
	basePath   string
	generateID func() string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, err
	}
	generateID, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}
	return &LocalStorage{basePath: basePath, generateID: generateID}, nil
}

func (ls *LocalStorage) NewFileKey(ownerID int64, folderID *string, originalName string) (string, error) {
	// Losowa nazwa z zachowaniem oryginalnego rozszerzenia.
	return ls.generateID() + filepath.Ext(originalName), nil
}

func (ls *LocalStorage) pathFromKey(key string) string {
	return filepath.Join(ls.basePath, filepath.Base(key))
}

func (ls *LocalStorage) Save(ctx context.Context, key string, data io.Reader, contentType string) error {
	file, err := os.Create(ls.pathFromKey(key))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, data)
	return err
}

func (ls *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(ls.pathFromKey(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob with key %s not found: %w", key, err)
		}
		return nil, err
	}

	return file, nil
}

func (ls *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(ls.pathFromKey(key))
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

func (ls *LocalStorage) ProvisionFolder(ctx context.Context, folderID string) error {
	return os.MkdirAll(filepath.Join(ls.basePath, folderID), os.ModePerm)
}

func (ls *LocalStorage) RemoveFolderTree(ctx context.Context, folderID string) error {
	return os.RemoveAll(filepath.Join(ls.basePath, folderID))
}

func (ls *LocalStorage) PublicURL(key string) (string, bool) {
	return "", false
}
