package program

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"anganwadi/cache"
	"anganwadi/logger"
	"anganwadi/model"
	"anganwadi/repository"
	"anganwadi/storage"
)

// ImageFolder is the folder every program image is uploaded under.
const ImageFolder = "anganwadi-programs"

// ErrProgramNotFound is returned when the target program id does not exist.
var ErrProgramNotFound = errors.New("program not found")

// ImageStore is the gateway to the remote image host.
type ImageStore interface {
	Upload(ctx context.Context, folder, filename string, reader io.Reader, size int64, contentType string) (*storage.UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// ImageUpload carries an inbound image file from a multipart request.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// ProgramInput holds the form fields of an add or update request.
// Image is nil when no file was supplied.
type ProgramInput struct {
	Title       string
	Description string
	Date        string
	Time        string
	Image       *ImageUpload
}

// Service orchestrates program CRUD across the record store and the
// image host. The image upload always completes before the record
// reflecting its URL is written; there is no transaction spanning the
// two, so a crash in between can leak a hosted image.
type Service struct {
	repo   repository.ProgramRepository
	images ImageStore
}

// NewService creates a program service.
func NewService(repo repository.ProgramRepository, images ImageStore) *Service {
	return &Service{
		repo:   repo,
		images: images,
	}
}

// AddProgram uploads the image when one is supplied and persists a new
// program record. The image field stays empty without an upload.
func (s *Service) AddProgram(ctx context.Context, input ProgramInput) error {
	imageURL := ""

	if input.Image != nil {
		result, err := s.images.Upload(ctx, ImageFolder, input.Image.Filename,
			input.Image.Reader, input.Image.Size, input.Image.ContentType)
		if err != nil {
			return fmt.Errorf("image upload failed: %w", err)
		}
		imageURL = result.URL
	}

	newProgram := &model.Program{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		Image:       imageURL,
	}

	if _, err := s.repo.CreateProgram(ctx, newProgram); err != nil {
		return fmt.Errorf("failed to persist program: %w", err)
	}

	s.invalidateCache(ctx)
	return nil
}

// UpdateProgram replaces title, description, date and time of an
// existing program. A supplied image file replaces the stored image URL;
// without one the existing URL is kept.
func (s *Service) UpdateProgram(ctx context.Context, id int64, input ProgramInput) error {
	existing, err := s.repo.GetProgramByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load program %d: %w", id, err)
	}
	if existing == nil {
		return ErrProgramNotFound
	}

	imageURL := existing.Image
	if input.Image != nil {
		result, err := s.images.Upload(ctx, ImageFolder, input.Image.Filename,
			input.Image.Reader, input.Image.Size, input.Image.ContentType)
		if err != nil {
			return fmt.Errorf("image upload failed: %w", err)
		}
		imageURL = result.URL
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.Date = input.Date
	existing.Time = input.Time
	existing.Image = imageURL

	if err := s.repo.UpdateProgram(ctx, existing); err != nil {
		return fmt.Errorf("failed to update program %d: %w", id, err)
	}

	s.invalidateCache(ctx)
	return nil
}

// DeleteProgram removes a program and best-effort deletes its hosted
// image. An image-host failure is logged and never blocks record
// deletion.
func (s *Service) DeleteProgram(ctx context.Context, id int64) error {
	existing, err := s.repo.GetProgramByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load program %d: %w", id, err)
	}
	if existing == nil {
		return ErrProgramNotFound
	}

	if existing.Image != "" {
		publicID := PublicIDFromURL(existing.Image)
		if err := s.images.Delete(ctx, publicID); err != nil {
			logger.Warn("Failed to delete hosted image",
				logger.Int64("programId", id),
				logger.String("publicId", publicID),
				logger.ErrorField(err))
		}
	}

	if err := s.repo.DeleteProgram(ctx, id); err != nil {
		return fmt.Errorf("failed to delete program %d: %w", id, err)
	}

	s.invalidateCache(ctx)
	return nil
}

// ListPrograms returns all programs newest first, served cache-aside
// from Redis when available.
func (s *Service) ListPrograms(ctx context.Context) ([]*model.Program, error) {
	cached, err := cache.GetPrograms(ctx)
	if err != nil {
		logger.Warn("Program cache read failed", logger.ErrorField(err))
	} else if cached != nil {
		return cached, nil
	}

	programs, err := s.repo.GetAllPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch programs: %w", err)
	}
	if programs == nil {
		programs = []*model.Program{}
	}

	if err := cache.SetPrograms(ctx, programs); err != nil {
		logger.Warn("Program cache write failed", logger.ErrorField(err))
	}

	return programs, nil
}

func (s *Service) invalidateCache(ctx context.Context) {
	if err := cache.InvalidatePrograms(ctx); err != nil {
		logger.Warn("Program cache invalidation failed", logger.ErrorField(err))
	}
}

// PublicIDFromURL derives the image host public id from a stored image
// URL: the last path segment minus its file extension, prefixed with the
// upload folder.
func PublicIDFromURL(imageURL string) string {
	segment := imageURL
	if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
		segment = u.Path
	}

	name := path.Base(segment)
	name = strings.TrimSuffix(name, path.Ext(name))
	return ImageFolder + "/" + name
}
