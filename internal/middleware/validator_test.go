package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResumeExtension(t *testing.T) {
	assert.NoError(t, ValidateResumeExtension("resume.pdf"))
	assert.NoError(t, ValidateResumeExtension("Resume.DOCX"))
	assert.Error(t, ValidateResumeExtension("resume.txt"))
	assert.Error(t, ValidateResumeExtension("resume"))
}

func TestValidateResumeMIME(t *testing.T) {
	assert.NoError(t, ValidateResumeMIME(""))
	assert.NoError(t, ValidateResumeMIME("application/pdf"))
	assert.NoError(t, ValidateResumeMIME("application/pdf; charset=binary"))
	assert.NoError(t, ValidateResumeMIME("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.Error(t, ValidateResumeMIME("text/plain"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "resume.pdf", SanitizeFilename("../../etc/resume.pdf"))
	assert.Equal(t, "my_resume.docx", SanitizeFilename("my resume.docx"))
	assert.Equal(t, "cv.pdf", SanitizeFilename("cv.pdf"))
}

func TestPaginationBounds(t *testing.T) {
	assert.Equal(t, 1, ValidatePage(0))
	assert.Equal(t, 3, ValidatePage(3))
	assert.Equal(t, 20, ValidatePageSize(0))
	assert.Equal(t, 100, ValidatePageSize(500))
	assert.Equal(t, 25, ValidatePageSize(25))
}
