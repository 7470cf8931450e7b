package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var ErrInvalidUpload = errors.New("invalid upload")

// UploadReader validates a multipart résumé upload and reads it into memory.
// Uploads are never written to disk.
type UploadReader interface {
	ReadPDF(file *multipart.FileHeader) ([]byte, error)
	MaxFileSize() int64
}

type uploadReader struct {
	maxFileSize int64
}

func NewUploadReader(maxFileSize int64) UploadReader {
	return &uploadReader{maxFileSize: maxFileSize}
}

func (u *uploadReader) MaxFileSize() int64 {
	return u.maxFileSize
}

// ReadPDF implements UploadReader.
func (u *uploadReader) ReadPDF(file *multipart.FileHeader) ([]byte, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: no file", ErrInvalidUpload)
	}

	// Validate file extensions
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("%w: invalid file extension: %q", ErrInvalidUpload, ext)
	}

	if u.maxFileSize > 0 && file.Size > u.maxFileSize {
		return nil, fmt.Errorf("%w: file too large. Max size: %d bytes", ErrInvalidUpload, u.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	limit := file.Size + 1
	if u.maxFileSize > 0 {
		limit = u.maxFileSize + 1
	}

	data, err := io.ReadAll(io.LimitReader(src, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if u.maxFileSize > 0 && int64(len(data)) > u.maxFileSize {
		return nil, fmt.Errorf("%w: file too large. Max size: %d bytes", ErrInvalidUpload, u.maxFileSize)
	}

	return data, nil
}
