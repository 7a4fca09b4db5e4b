package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"dysk-plikow/internal/database"
	"dysk-plikow/internal/models"

	"github.com/go-chi/chi/v5"
)

type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

type FolderResponse struct {
	Folder   *models.Folder `json:"folder"`
	Redirect string         `json:"redirect"`
}

type FolderContentsResponse struct {
	Folder  *models.Folder  `json:"folder"`
	Files   []models.File   `json:"files"`
	Folders []models.Folder `json:"folders"`
}

type DeleteResponse struct {
	Redirect string `json:"redirect"`
}

func (s *Server) CreateFolderHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Folder name cannot be empty", http.StatusBadRequest)
		return
	}

	if req.ParentID != nil && len(*req.ParentID) != 21 {
		http.Error(w, "Invalid ParentID format", http.StatusBadRequest)
		return
	}

	// Rodzic musi istnieć i należeć do wołającego. Oryginał tego nie
	// sprawdzał i pozwalał podpiąć folder pod cudze drzewo.
	if req.ParentID != nil {
		parent, err := s.store.GetFolderByID(r.Context(), *req.ParentID)
		if err != nil {
			http.Error(w, "Failed to verify parent folder", http.StatusInternalServerError)
			return
		}
		if parent == nil {
			http.Error(w, "Parent folder not found", http.StatusNotFound)
			return
		}
		if parent.OwnerID != claims.UserID {
			http.Error(w, "Not authorized to create a folder here", http.StatusForbidden)
			return
		}
	}

	folderID, err := s.generateUniqueID(r.Context(), s.store.FolderExists)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	folder, err := s.store.CreateFolder(r.Context(), database.CreateFolderParams{
		ID:       folderID,
		Name:     req.Name,
		OwnerID:  claims.UserID,
		ParentID: req.ParentID,
	})
	if err != nil {
		if errors.Is(err, database.ErrParentFolderNotFound) {
			http.Error(w, "Parent folder does not exist", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create folder", http.StatusInternalServerError)
		return
	}

	// Pusty fizyczny katalog; dla S3 to no-op
	if err := s.storage.ProvisionFolder(r.Context(), folder.ID); err != nil {
		log.Printf("ERROR: failed to provision directory for folder %s: %v", folder.ID, err)
		http.Error(w, "Failed to provision folder storage", http.StatusInternalServerError)
		return
	}

	s.publishChange(r.Context(), claims.UserID, "folder_created", folder)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(FolderResponse{
		Folder:   folder,
		Redirect: "/folders/" + folder.ID,
	})
}

func (s *Server) GetFolderContentsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	folderID := chi.URLParam(r, "folderId")

	folder, err := s.store.GetFolderByID(r.Context(), folderID)
	if err != nil {
		http.Error(w, "Failed to retrieve folder", http.StatusInternalServerError)
		return
	}
	if folder == nil {
		http.Error(w, "Folder not found", http.StatusNotFound)
		return
	}
	if folder.OwnerID != claims.UserID {
		http.Error(w, "Not authorized to access this folder", http.StatusForbidden)
		return
	}

	files, err := s.store.GetFilesByFolderID(r.Context(), claims.UserID, &folder.ID)
	if err != nil {
		http.Error(w, "Failed to list folder files", http.StatusInternalServerError)
		return
	}

	subfolders, err := s.store.GetFoldersByParentID(r.Context(), claims.UserID, &folder.ID)
	if err != nil {
		http.Error(w, "Failed to list subfolders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FolderContentsResponse{
		Folder:  folder,
		Files:   files,
		Folders: subfolders,
	})
}

// DeleteFolderHandler usuwa folder razem z zawartością. Sprzątanie blobów
// sięga dokładnie dwa poziomy: pliki folderu i pliki bezpośrednich
// podfolderów. Rekordy głębszych potomków znikają kaskadą kluczy obcych,
// ich bloby nie - to odziedziczone ograniczenie, nie przypadek.
// Sekwencja nie jest transakcyjna: błąd bloba przerywa całość bez cofania.
func (s *Server) DeleteFolderHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	folderID := chi.URLParam(r, "folderId")

	folder, err := s.store.GetFolderByID(r.Context(), folderID)
	if err != nil {
		http.Error(w, "Failed to retrieve folder", http.StatusInternalServerError)
		return
	}
	if folder == nil {
		http.Error(w, "Folder not found", http.StatusNotFound)
		return
	}
	if folder.OwnerID != claims.UserID {
		http.Error(w, "Not authorized to delete this folder", http.StatusForbidden)
		return
	}

	// Krok 1: pliki bezpośrednio w folderze - najpierw blob, potem rekord
	files, err := s.store.GetFilesByFolderID(r.Context(), claims.UserID, &folder.ID)
	if err != nil {
		http.Error(w, "Failed to list folder files", http.StatusInternalServerError)
		return
	}
	for _, file := range files {
		if err := s.storage.Delete(r.Context(), file.StorageKey); err != nil {
			log.Printf("ERROR: failed to delete blob %s: %v", file.StorageKey, err)
			http.Error(w, "Failed to delete file from storage", http.StatusInternalServerError)
			return
		}
		if err := s.store.DeleteFile(r.Context(), file.ID); err != nil {
			http.Error(w, "Failed to delete file record", http.StatusInternalServerError)
			return
		}
	}

	// Krok 2: bezpośrednie podfoldery - ich pliki, potem rekord podfolderu
	subfolders, err := s.store.GetFoldersByParentID(r.Context(), claims.UserID, &folder.ID)
	if err != nil {
		http.Error(w, "Failed to list subfolders", http.StatusInternalServerError)
		return
	}
	for _, subfolder := range subfolders {
		subFiles, err := s.store.GetFilesByFolderID(r.Context(), claims.UserID, &subfolder.ID)
		if err != nil {
			http.Error(w, "Failed to list subfolder files", http.StatusInternalServerError)
			return
		}
		for _, file := range subFiles {
			if err := s.storage.Delete(r.Context(), file.StorageKey); err != nil {
				log.Printf("ERROR: failed to delete blob %s: %v", file.StorageKey, err)
				http.Error(w, "Failed to delete file from storage", http.StatusInternalServerError)
				return
			}
			if err := s.store.DeleteFile(r.Context(), file.ID); err != nil {
				http.Error(w, "Failed to delete file record", http.StatusInternalServerError)
				return
			}
		}
		if err := s.store.DeleteFolder(r.Context(), subfolder.ID); err != nil {
			http.Error(w, "Failed to delete subfolder", http.StatusInternalServerError)
			return
		}
	}

	// Krok 3: fizyczne drzewo katalogu (wariant lokalny; S3 nie ma czego)
	if err := s.storage.RemoveFolderTree(r.Context(), folder.ID); err != nil {
		log.Printf("ERROR: failed to remove directory tree for folder %s: %v", folder.ID, err)
		http.Error(w, "Failed to remove folder storage", http.StatusInternalServerError)
		return
	}

	// Krok 4: rekord samego folderu
	if err := s.store.DeleteFolder(r.Context(), folder.ID); err != nil {
		http.Error(w, "Failed to delete folder", http.StatusInternalServerError)
		return
	}

	s.publishChange(r.Context(), claims.UserID, "folder_deleted", map[string]interface{}{
		"id":        folder.ID,
		"parent_id": folder.ParentID,
	})

	redirect := "/upload"
	if folder.ParentID != nil {
		redirect = "/folders/" + *folder.ParentID
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DeleteResponse{Redirect: redirect})
}
