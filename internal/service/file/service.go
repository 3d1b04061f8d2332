package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

var ErrInvalidFileType = errors.New("invalid file type")

var (
	photoExts       = []string{".jpg", ".jpeg", ".png"}
	certificateExts = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}
)

type FileService interface {
	// UploadPhoto stores a profile photo under owner's folder
	UploadPhoto(ctx context.Context, owner string, file io.Reader, filename string) (string, error)

	// UploadCertificate stores a certificate document under owner's folder
	UploadCertificate(ctx context.Context, owner string, file io.Reader, filename string) (string, error)

	// Generic operations
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, path string) error
	URL(path string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadPhoto implements FileService.
func (s *fileServiceImpl) UploadPhoto(ctx context.Context, owner string, file io.Reader, filename string) (string, error) {
	return s.upload(ctx, "photos", owner, file, filename, photoExts)
}

// UploadCertificate implements FileService.
func (s *fileServiceImpl) UploadCertificate(ctx context.Context, owner string, file io.Reader, filename string) (string, error) {
	return s.upload(ctx, "certificates", owner, file, filename, certificateExts)
}

func (s *fileServiceImpl) upload(ctx context.Context, folder, owner string, file io.Reader, filename string, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !contains(allowed, ext) {
		return "", fmt.Errorf("%w: %s allowed", ErrInvalidFileType, strings.Join(allowed, ", "))
	}

	// Generate unique filename
	newFilename := uuid.New().String() + ext
	dest := path.Join(folder, sanitize(owner), newFilename)

	stored, err := s.storage.Upload(ctx, file, dest)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", folder, err)
	}
	return stored, nil
}

// Open implements FileService.
func (s *fileServiceImpl) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Open(ctx, path)
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// URL implements FileService.
func (s *fileServiceImpl) URL(path string) string {
	return s.storage.URL(path)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// sanitize keeps owner usable as a single path segment.
func sanitize(owner string) string {
	owner = strings.ToLower(strings.TrimSpace(owner))
	var b strings.Builder
	for _, r := range owner {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
