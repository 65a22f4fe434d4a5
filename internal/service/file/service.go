package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/smartattend/attendance-backend-go/internal/pkg/storage"
)

// FileService stores uploaded bytes and answers opaque references for
// the workflow engine to persist.
type FileService interface {
	UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(fileStorage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: fileStorage}
}

func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	// Random object name; only the extension survives from the client
	// supplied filename.
	path := fmt.Sprintf("leave/%s/%s%s", userID, uuid.New().String(), filepath.Ext(filename))

	stored, err := s.storage.Upload(ctx, file, path)
	if err != nil {
		return "", fmt.Errorf("failed to upload leave attachment: %w", err)
	}

	return stored, nil
}
