package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"dysk-plikow/internal/database"
	"dysk-plikow/internal/models"

	"github.com/go-chi/chi/v5"
)

type FileResponse struct {
	File     *models.File `json:"file"`
	Redirect string       `json:"redirect"`
}

type RootContentsResponse struct {
	Files   []models.File   `json:"files"`
	Folders []models.Folder `json:"folders"`
}

// ListRootHandler zwraca widok korzenia: pliki i foldery bez rodzica.
func (s *Server) ListRootHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	files, err := s.store.GetFilesByFolderID(r.Context(), claims.UserID, nil)
	if err != nil {
		http.Error(w, "Failed to list files", http.StatusInternalServerError)
		return
	}

	folders, err := s.store.GetFoldersByParentID(r.Context(), claims.UserID, nil)
	if err != nil {
		http.Error(w, "Failed to list folders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RootContentsResponse{
		Files:   files,
		Folders: folders,
	})
}

func (s *Server) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "File exceeds the maximum allowed size", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Error parsing multipart form", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Please select a file to upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Folder docelowy musi istnieć i należeć do wołającego
	folderIDStr := r.FormValue("folder_id")
	var folderID *string
	if folderIDStr != "" {
		if len(folderIDStr) != 21 {
			http.Error(w, "Invalid folder", http.StatusBadRequest)
			return
		}
		folder, err := s.store.GetFolderByID(r.Context(), folderIDStr)
		if err != nil {
			http.Error(w, "Failed to verify folder", http.StatusInternalServerError)
			return
		}
		if folder == nil || folder.OwnerID != claims.UserID {
			http.Error(w, "Invalid folder", http.StatusBadRequest)
			return
		}
		folderID = &folderIDStr
	}

	fileID, err := s.generateUniqueID(r.Context(), s.store.FileExists)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	mimeType := handler.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	storageKey, err := s.storage.NewFileKey(claims.UserID, folderID, handler.Filename)
	if err != nil {
		http.Error(w, "Failed to derive storage key", http.StatusInternalServerError)
		return
	}

	if err := s.storage.Save(r.Context(), storageKey, file, mimeType); err != nil {
		log.Printf("ERROR: failed to save blob %s: %v", storageKey, err)
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	var publicURL *string
	if url, ok := s.storage.PublicURL(storageKey); ok {
		publicURL = &url
	}

	created, err := s.store.CreateFile(r.Context(), database.CreateFileParams{
		ID:         fileID,
		Filename:   handler.Filename,
		StorageKey: storageKey,
		MimeType:   mimeType,
		SizeBytes:  handler.Size,
		OwnerID:    claims.UserID,
		FolderID:   folderID,
		PublicURL:  publicURL,
	})
	if err != nil {
		// TODO: usunąć zapisany blob, gdy insert metadanych się nie powiedzie
		http.Error(w, "Failed to create file record", http.StatusInternalServerError)
		return
	}

	s.publishChange(r.Context(), claims.UserID, "file_uploaded", created)

	redirect := "/upload"
	if folderID != nil {
		redirect = "/folders/" + *folderID
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(FileResponse{
		File:     created,
		Redirect: redirect,
	})
}

func (s *Server) DownloadFileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	fileID := chi.URLParam(r, "fileId")

	file, err := s.store.GetFileByID(r.Context(), fileID)
	if err != nil {
		http.Error(w, "Failed to retrieve file metadata", http.StatusInternalServerError)
		return
	}
	if file == nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if file.OwnerID != claims.UserID {
		http.Error(w, "Not authorized to access this file", http.StatusForbidden)
		return
	}

	// Backend z publicznymi adresami: przekierowanie na link zapisany przy
	// uploadzie, bez sprawdzania świeżości
	if file.PublicURL != nil && *file.PublicURL != "" {
		http.Redirect(w, r, *file.PublicURL, http.StatusFound)
		return
	}

	fileStream, err := s.storage.Open(r.Context(), file.StorageKey)
	if err != nil {
		http.Error(w, "File not found on storage", http.StatusInternalServerError)
		return
	}
	defer fileStream.Close()

	w.Header().Set("Content-Disposition", "attachment; filename=\""+file.Filename+"\"")
	if file.MimeType != "" {
		w.Header().Set("Content-Type", file.MimeType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Length", fmt.Sprintf("%d", file.SizeBytes))

	io.Copy(w, fileStream)
}

// DeleteFileHandler usuwa rekord dopiero po potwierdzonym usunięciu bloba -
// wolimy osierocony blob niż metadane wskazujące w próżnię.
func (s *Server) DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	fileID := chi.URLParam(r, "fileId")

	file, err := s.store.GetFileByID(r.Context(), fileID)
	if err != nil {
		http.Error(w, "Failed to retrieve file metadata", http.StatusInternalServerError)
		return
	}
	if file == nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if file.OwnerID != claims.UserID {
		http.Error(w, "Not authorized to delete this file", http.StatusForbidden)
		return
	}

	if err := s.storage.Delete(r.Context(), file.StorageKey); err != nil {
		log.Printf("ERROR: failed to delete blob %s: %v", file.StorageKey, err)
		http.Error(w, "Failed to delete file from storage", http.StatusInternalServerError)
		return
	}

	if err := s.store.DeleteFile(r.Context(), file.ID); err != nil {
		http.Error(w, "Failed to delete file record", http.StatusInternalServerError)
		return
	}

	s.publishChange(r.Context(), claims.UserID, "file_deleted", map[string]interface{}{
		"id":        file.ID,
		"folder_id": file.FolderID,
	})

	redirect := "/upload"
	if file.FolderID != nil {
		redirect = "/folders/" + *file.FolderID
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DeleteResponse{Redirect: redirect})
}
