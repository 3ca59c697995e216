package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vyshnav-v/food-delivery/config"
	"github.com/vyshnav-v/food-delivery/pkg/response"
	"github.com/vyshnav-v/food-delivery/pkg/storage"
)

// defaultImageTypes is the upload allow-list when ALLOWED_FILE_TYPES is unset.
var defaultImageTypes = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

// Store accepts a multipart image upload under the "image" field, stores
// it on the configured disk under a uuid name, and returns its public URL.
func (c *UploadController) Store(w http.ResponseWriter, r *http.Request) {
	maxBytes := config.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		response.Fail(w, http.StatusBadRequest,
			fmt.Sprintf("File too large (max %d bytes)", maxBytes))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedType(ext, header.Header.Get("Content-Type")) {
		response.Fail(w, http.StatusBadRequest, "File type not allowed")
		return
	}

	name := fmt.Sprintf("%s/%s%s",
		time.Now().UTC().Format("2006/01"), uuid.NewString(), ext)

	if err := storage.PutStream(name, file); err != nil {
		response.Error(w, err, "Failed to store file")
		return
	}

	response.Created(w, "File uploaded successfully", map[string]string{
		"path": name,
		"url":  storage.URL(name),
	})
}

// allowedType checks the extension and MIME type against the configured
// allow-list, falling back to the image defaults.
func allowedType(ext, mime string) bool {
	allowed := config.AllowedFileTypes()
	if len(allowed) == 0 {
		allowed = defaultImageTypes
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	for _, a := range allowed {
		if a == ext || a == strings.TrimPrefix(ext, ".") || a == mime {
			return true
		}
	}
	return false
}
