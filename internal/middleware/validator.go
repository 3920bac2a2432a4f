package middleware

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Upload validation and sanitization utilities

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

var allowedMIMETypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateResumeExtension checks the uploaded filename extension.
func ValidateResumeExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("unsupported file type %s. Allowed: PDF, DOCX", ext)
	}
	return nil
}

// ValidateResumeMIME checks the declared content type. An empty declared
// type passes; the extension check still applies.
func ValidateResumeMIME(mimeType string) error {
	if mimeType == "" {
		return nil
	}
	// Strip any parameters like "; charset=..."
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	mimeType = strings.TrimSpace(mimeType)
	if !allowedMIMETypes[mimeType] {
		return fmt.Errorf("unsupported MIME type %s", mimeType)
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename strips directory components and characters that are
// unsafe in storage keys.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}

// ValidatePage normalizes a pagination page number.
func ValidatePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// ValidatePageSize normalizes a pagination page size.
func ValidatePageSize(size int) int {
	if size <= 0 {
		return 20
	}
	if size > 100 {
		return 100
	}
	return size
}
