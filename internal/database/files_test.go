package database

import (
	"context"
	"testing"

	"dysk-plikow/internal/models"

	"github.com/stretchr/testify/require"
)

func createTestFile(t *testing.T, params CreateFileParams) *models.File {
	file, err := testStore.CreateFile(context.Background(), params)
	require.NoError(t, err)
	require.NotNil(t, file)
	return file
}

func TestCreateFile(t *testing.T) {
	ownerID := createTestUser(t, "file_create@example.com")

	file := createTestFile(t, CreateFileParams{
		ID:         "file_create_00000001",
		Filename:   "raport.pdf",
		StorageKey: "aBcDeFgHiJkLmNoPqRs.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  2048,
		OwnerID:    ownerID,
	})
	require.Equal(t, "file_create_00000001", file.ID)
	require.Equal(t, "raport.pdf", file.Filename)
	require.Equal(t, "aBcDeFgHiJkLmNoPqRs.pdf", file.StorageKey)
	require.Equal(t, int64(2048), file.SizeBytes)
	require.Nil(t, file.FolderID)
	require.Nil(t, file.PublicURL)
	require.NotZero(t, file.CreatedAt)

	// Wariant z publicznym adresem zapisanym przy wrzucie
	url := "http://minio:9000/pliki/1/root/1-raport.pdf"
	withURL := createTestFile(t, CreateFileParams{
		ID:         "file_create_00000002",
		Filename:   "raport2.pdf",
		StorageKey: "1/root/1-raport2.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  4096,
		OwnerID:    ownerID,
		PublicURL:  &url,
	})
	require.NotNil(t, withURL.PublicURL)
	require.Equal(t, url, *withURL.PublicURL)
}

func TestGetFileByID(t *testing.T) {
	ownerID := createTestUser(t, "file_get@example.com")
	created := createTestFile(t, CreateFileParams{
		ID:         "file_get_by_id_00001",
		Filename:   "zdjecie.jpg",
		StorageKey: "k1.jpg",
		MimeType:   "image/jpeg",
		SizeBytes:  100,
		OwnerID:    ownerID,
	})

	found, err := testStore.GetFileByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, created.ID, found.ID)
	// Właściciel wraca w rekordzie, żeby handler mógł odróżnić 404 od 403
	require.Equal(t, ownerID, found.OwnerID)

	missing, err := testStore.GetFileByID(context.Background(), "missing_file_0000000")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestGetFilesByFolderID(t *testing.T) {
	ownerID := createTestUser(t, "file_list@example.com")
	otherID := createTestUser(t, "file_list_other@example.com")

	folder := createTestFolder(t, CreateFolderParams{ID: "file_list_folder_001", Name: "F", OwnerID: ownerID})

	createTestFile(t, CreateFileParams{ID: "file_list_in_000001", Filename: "a.txt", StorageKey: "a1.txt", MimeType: "text/plain", SizeBytes: 1, OwnerID: ownerID, FolderID: &folder.ID})
	createTestFile(t, CreateFileParams{ID: "file_list_in_000002", Filename: "b.txt", StorageKey: "b1.txt", MimeType: "text/plain", SizeBytes: 1, OwnerID: ownerID, FolderID: &folder.ID})
	createTestFile(t, CreateFileParams{ID: "file_list_root_0001", Filename: "c.txt", StorageKey: "c1.txt", MimeType: "text/plain", SizeBytes: 1, OwnerID: ownerID})
	createTestFile(t, CreateFileParams{ID: "file_list_foreign_1", Filename: "d.txt", StorageKey: "d1.txt", MimeType: "text/plain", SizeBytes: 1, OwnerID: otherID})

	inFolder, err := testStore.GetFilesByFolderID(context.Background(), ownerID, &folder.ID)
	require.NoError(t, err)
	require.Len(t, inFolder, 2)

	atRoot, err := testStore.GetFilesByFolderID(context.Background(), ownerID, nil)
	require.NoError(t, err)
	ids := make([]string, 0, len(atRoot))
	for _, f := range atRoot {
		require.Equal(t, ownerID, f.OwnerID)
		ids = append(ids, f.ID)
	}
	require.Contains(t, ids, "file_list_root_0001")
	require.NotContains(t, ids, "file_list_foreign_1")
	require.NotContains(t, ids, "file_list_in_000001")
}

func TestDeleteFile(t *testing.T) {
	ownerID := createTestUser(t, "file_delete@example.com")
	file := createTestFile(t, CreateFileParams{
		ID:         "file_delete_00000001",
		Filename:   "do_kasacji.txt",
		StorageKey: "del1.txt",
		MimeType:   "text/plain",
		SizeBytes:  5,
		OwnerID:    ownerID,
	})

	require.NoError(t, testStore.DeleteFile(context.Background(), file.ID))

	exists, err := testStore.FileExists(context.Background(), file.ID)
	require.NoError(t, err)
	require.False(t, exists)
}
