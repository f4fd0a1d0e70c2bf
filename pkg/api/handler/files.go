package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

const fileField = "file"

type files struct {
	errorWriter
	uploader FileUploader
	maxBytes int64
}

func NewFiles(uploader FileUploader, maxBytes int64) *files {
	return &files{
		uploader: uploader,
		maxBytes: maxBytes,
	}
}

type filesResponse struct {
	Files []domain.UploadedFile `json:"files"`
}

func (f *files) Upload(w http.ResponseWriter, r *http.Request) {
	// Leave room for the multipart envelope; the uploader enforces the exact limit.
	r.Body = http.MaxBytesReader(w, r.Body, f.maxBytes+1<<20)

	file, header, err := r.FormFile(fileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			f.fail(w, r, domain.ErrFileTooLarge)
			return
		}
		f.fail(w, r, fmt.Errorf("%w: reading form field %q: %v", errBadRequest, fileField, err))
		return
	}
	defer file.Close()

	uploaded, err := f.uploader.Upload(r.Context(), session(r), header.Filename, file)
	if err != nil {
		f.fail(w, r, err)
		return
	}

	f.WriteSuccessResponse(w, uploaded)
}

func (f *files) List(w http.ResponseWriter, r *http.Request) {
	f.WriteSuccessResponse(w, filesResponse{Files: f.uploader.Files(session(r))})
}
