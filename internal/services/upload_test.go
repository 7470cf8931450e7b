package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["resume"][0]
}

func TestReadPDF(t *testing.T) {
	reader := NewUploadReader(16)

	data, err := reader.ReadPDF(fileHeader(t, "Resume.PDF", []byte("%PDF-1.4")))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)

	_, err = reader.ReadPDF(fileHeader(t, "resume.docx", []byte("PK")))
	assert.ErrorIs(t, err, ErrInvalidUpload)

	_, err = reader.ReadPDF(fileHeader(t, "big.pdf", bytes.Repeat([]byte("x"), 17)))
	assert.ErrorIs(t, err, ErrInvalidUpload)

	_, err = reader.ReadPDF(nil)
	assert.ErrorIs(t, err, ErrInvalidUpload)
}

func TestNewRedisStorageRejectsBadURL(t *testing.T) {
	_, err := NewRedisStorage(context.Background(), "not a redis url", "test:")
	assert.Error(t, err)
}
