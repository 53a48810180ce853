package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rahul4469/compiler-craft/internal/models"
	"github.com/rahul4469/compiler-craft/internal/services"
)

// SourceController loads source code from uploads and GitHub.
type SourceController struct {
	github         *services.GitHubSource
	maxSourceBytes int
}

func NewSourceController(github *services.GitHubSource, maxSourceBytes int) *SourceController {
	return &SourceController{github: github, maxSourceBytes: maxSourceBytes}
}

// PostUpload reads the multipart "file" field as source text.
func (c *SourceController) PostUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(c.maxSourceBytes)+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, c.tooLargeMessage(), nil)
			return
		}
		writeError(w, r, http.StatusBadRequest, "A file upload is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, int64(c.maxSourceBytes)+1))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Could not read file content as text.", nil)
		return
	}

	code, err := services.DecodeSourceText(data, c.maxSourceBytes)
	if err != nil {
		c.writeSourceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, services.SourceFile{Filename: header.Filename, Code: code})
}

type githubSourceRequest struct {
	URL string `json:"url"`
}

// PostGitHubSource fetches a single file from a GitHub URL.
func (c *SourceController) PostGitHubSource(w http.ResponseWriter, r *http.Request) {
	var req githubSourceRequest
	if status, msg := decodeJSON(w, r, 8<<10, &req); status != 0 {
		writeError(w, r, status, msg, nil)
		return
	}
	if req.URL == "" {
		writeError(w, r, http.StatusBadRequest, "URL is required", nil)
		return
	}

	file, err := c.github.Fetch(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, models.ErrInvalidSourceURL) {
			writeError(w, r, http.StatusBadRequest, "Invalid GitHub file URL. Use https://github.com/owner/repo/blob/ref/path", nil)
			return
		}
		var fErr models.FileError
		if errors.As(err, &fErr) {
			writeError(w, r, http.StatusBadRequest, fErr.Error(), nil)
			return
		}
		c.writeSourceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

func (c *SourceController) writeSourceError(w http.ResponseWriter, r *http.Request, err error) {
	var fErr models.FileError
	switch {
	case errors.Is(err, models.ErrSourceTooLarge):
		writeError(w, r, http.StatusRequestEntityTooLarge, c.tooLargeMessage(), nil)
	case errors.As(err, &fErr):
		writeError(w, r, http.StatusBadRequest, "Could not read file content as text.", nil)
	default:
		writeError(w, r, http.StatusBadGateway, "Failed to load source file", err)
	}
}

func (c *SourceController) tooLargeMessage() string {
	return fmt.Sprintf("File must be at most %d bytes", c.maxSourceBytes)
}
