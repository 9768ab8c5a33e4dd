package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/MKhiriev/health-mate/models"
)

// multipartOverhead is the room left for multipart boundaries and headers
// on top of the file size limit.
const multipartOverhead = 1 << 20

const uploadFormField = "file"

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	upload, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(w, r, err, "reading upload failed")
		return
	}

	if err = h.validator.Validate(r.Context(), upload); err != nil {
		h.writeError(w, r, err, "invalid upload")
		return
	}

	file, err := h.services.FileService.Upload(r.Context(), userID, upload)
	if err != nil {
		h.writeError(w, r, err, "file upload failed")
		return
	}

	log.Info().Int64("user_id", userID).Int64("file_id", file.FileID).Msg("file uploaded")

	utils.WriteJSON(w, file, http.StatusCreated)
}

// readUpload extracts the "file" part of a multipart form. The content type
// comes from the part header, falling back to the file extension.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (models.UploadedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)

	part, header, err := r.FormFile(uploadFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return models.UploadedFile{}, ErrUploadTooLarge
		}
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrMissingFile, err)
	}
	defer part.Close()

	if header.Size > h.maxUploadSize {
		return models.UploadedFile{}, ErrUploadTooLarge
	}

	body, err := io.ReadAll(part)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("error reading uploaded file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if mediaType, _, parseErr := mime.ParseMediaType(contentType); parseErr == nil {
		contentType = mediaType
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mime.TypeByExtension(filepath.Ext(header.Filename))
		if mediaType, _, parseErr := mime.ParseMediaType(contentType); parseErr == nil {
			contentType = mediaType
		}
	}

	return models.UploadedFile{
		FileName:    filepath.Base(header.Filename),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	files, err := h.services.FileService.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, "listing files failed")
		return
	}

	utils.WriteJSON(w, models.NewListResponse(files), http.StatusOK)
}

func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	fileID, err := pathID(r, "fileID")
	if err != nil {
		h.writeError(w, r, err, "invalid file id")
		return
	}

	file, err := h.services.FileService.Get(r.Context(), userID, fileID)
	if err != nil {
		h.writeError(w, r, err, "getting file failed")
		return
	}

	utils.WriteJSON(w, file, http.StatusOK)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	fileID, err := pathID(r, "fileID")
	if err != nil {
		h.writeError(w, r, err, "invalid file id")
		return
	}

	if err = h.services.FileService.Delete(r.Context(), userID, fileID); err != nil {
		h.writeError(w, r, err, "deleting file failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "file deleted"}, http.StatusOK)
}
