package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tanawit/petnest-backend/pkg/logger"
)

var (
	ErrInvalidFileType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds size limit")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// LocalStorage saves uploaded files under a local directory and serves
// them by relative URL.
type LocalStorage struct {
	dir          string
	maxSizeBytes int64
}

func NewLocalStorage(dir string, maxSizeBytes int64) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		dir:          dir,
		maxSizeBytes: maxSizeBytes,
	}, nil
}

// SaveImage stores an uploaded image under a uuid filename and returns
// its public URL path.
func (s *LocalStorage) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	if s.maxSizeBytes > 0 && fileHeader.Size > s.maxSizeBytes {
		logger.Warn("Rejected upload: file too large", map[string]interface{}{
			"filename": fileHeader.Filename,
			"size":     fileHeader.Size,
			"limit":    s.maxSizeBytes,
		})
		return "", ErrFileTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		logger.Warn("Rejected upload: unsupported content type", map[string]interface{}{
			"filename":     fileHeader.Filename,
			"content_type": contentType,
		})
		return "", ErrInvalidFileType
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.Info("Image stored", map[string]interface{}{
		"filename": name,
		"size":     fileHeader.Size,
	})
	return "/uploads/" + name, nil
}

// Delete removes a previously stored file. Best-effort: a missing file
// is not an error.
func (s *LocalStorage) Delete(fileURL string) {
	name := filepath.Base(fileURL)
	if name == "." || name == "/" || name == "" {
		return
	}

	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to delete stored file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
}

// Dir returns the directory files are stored in, for static serving.
func (s *LocalStorage) Dir() string {
	return s.dir
}
