package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// DefaultFolderColor is used when a folder is created without a color
const DefaultFolderColor = "#6366f1"

// FolderService handles folder-related operations
type FolderService struct {
	folderRepo ports.FolderRepository
	logger     *logger.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(folderRepo ports.FolderRepository, logger *logger.Logger) *FolderService {
	return &FolderService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// ListFolders returns every folder with its note count
func (s *FolderService) ListFolders(ctx context.Context) ([]*entities.Folder, error) {
	folders, err := s.folderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

// CreateFolder creates a new folder
func (s *FolderService) CreateFolder(ctx context.Context, req ports.CreateFolderRequest) (*entities.Folder, error) {
	folder := &entities.Folder{
		Name:  strings.TrimSpace(req.Name),
		Color: strings.TrimSpace(req.Color),
	}
	if folder.Color == "" {
		folder.Color = DefaultFolderColor
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	s.logger.Infow("Folder created", "folder_id", folder.ID, "name", folder.Name)

	return folder, nil
}

// GetFolder retrieves a folder by ID
func (s *FolderService) GetFolder(ctx context.Context, id int) (*entities.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	return folder, nil
}

// UpdateFolder renames or recolors a folder
func (s *FolderService) UpdateFolder(ctx context.Context, id int, req ports.UpdateFolderRequest) (*entities.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	if req.Name != nil {
		folder.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		folder.Color = strings.TrimSpace(*req.Color)
		if folder.Color == "" {
			folder.Color = DefaultFolderColor
		}
	}

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}

	s.logger.Infow("Folder updated", "folder_id", folder.ID)

	return folder, nil
}

// DeleteFolder deletes a folder and every note in it
func (s *FolderService) DeleteFolder(ctx context.Context, id int) error {
	if err := s.folderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	s.logger.Infow("Folder deleted", "folder_id", id)

	return nil
}
