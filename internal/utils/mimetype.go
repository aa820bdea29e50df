package utils

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
)

// allowedMaterialExts mirrors the materials service's upload allow-list.
// Validation happens here, before any network call is made.
var allowedMaterialExts = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
}

// IsAllowedMaterialType reports whether the file's declared type (by
// extension) is accepted as a material upload.
func IsAllowedMaterialType(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := allowedMaterialExts[ext]
	return ok
}

// AllowedMaterialExtensions returns the accepted extensions, sorted, for
// error and help text.
func AllowedMaterialExtensions() []string {
	exts := make([]string, 0, len(allowedMaterialExts))
	for ext := range allowedMaterialExts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DetectContentType detects the MIME type of a file using multiple methods
func DetectContentType(filePath string, reader io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	// Material extensions first, so the declared type matches what the
	// service expects regardless of the platform's mime database.
	if contentType, ok := allowedMaterialExts[ext]; ok {
		return contentType, nil
	}

	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType, nil
	}

	// Fall back to sniffing the content when a reader is available
	if reader != nil {
		buffer := make([]byte, 512)
		n, err := reader.Read(buffer)
		if err != nil && err != io.EOF {
			return "", err
		}

		contentType := http.DetectContentType(buffer[:n])
		if contentType != "application/octet-stream" {
			return contentType, nil
		}
	}

	return "application/octet-stream", nil
}

// IsImageType checks if the content type represents an image
func IsImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
