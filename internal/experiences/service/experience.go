package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	experrors "booklt/internal/experiences/errors"
	"booklt/internal/experiences/repository"
	"booklt/internal/experiences/validator"
	"booklt/pkg/config"
	apperrors "booklt/pkg/errors"
	"booklt/pkg/imagestore"
	"booklt/pkg/model"
	"booklt/pkg/sanitizer"
)

// CreateInput carries the multipart form fields of POST /exp/post. Price and
// slots arrive as strings because multipart forms have no types.
type CreateInput struct {
	Title         string
	Description   string
	Price         string
	SlotsJSON     string
	ImageFilename string
	Image         io.Reader
}

type ExperienceService interface {
	Create(ctx context.Context, input *CreateInput) (*model.Experience, error)
	GetAll(ctx context.Context) ([]*model.Experience, error)
	GetDetails(ctx context.Context, id string) (*model.Experience, error)
	GetSummary(ctx context.Context, id string) (*model.ExperienceSummary, error)
}

type experienceService struct {
	repo      repository.ExperienceRepository
	validator *validator.ExperienceValidator
	images    imagestore.Store
	cfg       *config.Config
}

func NewExperienceService(
	repo repository.ExperienceRepository,
	validator *validator.ExperienceValidator,
	images imagestore.Store,
	cfg *config.Config,
) ExperienceService {
	return &experienceService{
		repo:      repo,
		validator: validator,
		images:    images,
		cfg:       cfg,
	}
}

func (s *experienceService) Create(ctx context.Context, input *CreateInput) (*model.Experience, error) {
	title := sanitizer.NormalizeName(input.Title)
	description := sanitizer.TrimAndNormalize(input.Description)

	if title == "" || description == "" || input.Price == "" || input.SlotsJSON == "" {
		return nil, apperrors.InvalidInput("All fields are required")
	}

	price, err := strconv.ParseFloat(input.Price, 64)
	if err != nil {
		return nil, apperrors.InvalidInput("Price must be a number")
	}

	var slots []model.Slot
	if err := json.Unmarshal([]byte(input.SlotsJSON), &slots); err != nil {
		return nil, apperrors.InvalidInput("Invalid slots JSON format")
	}

	imageURL := ""
	if input.Image != nil && s.images != nil {
		imageURL, err = s.images.Upload(ctx, input.ImageFilename, input.Image)
		if err != nil {
			s.cfg.Log.Error("Image upload failed", "filename", input.ImageFilename, "error", err)
			return nil, apperrors.Internal("Failed to upload image", err)
		}
	}

	exp := &model.Experience{
		Title:       title,
		Description: description,
		Image:       imageURL,
		Price:       price,
		Slots:       slots,
	}

	if err := s.validator.Validate(exp); err != nil {
		s.cfg.Log.Warn("Experience validation failed", "error", err)
		return nil, apperrors.Validation("Invalid experience", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, exp); err != nil {
		s.cfg.Log.Error("Failed to create experience", "error", err)
		return nil, apperrors.Internal("Failed to create experience", err)
	}

	s.cfg.Log.Info("Experience posted", "id", exp.ID, "title", exp.Title, "slots", len(exp.Slots))
	return exp, nil
}

func (s *experienceService) GetAll(ctx context.Context) ([]*model.Experience, error) {
	exps, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list experiences", "error", err)
		return nil, apperrors.Internal("Failed to retrieve experiences", err)
	}
	return exps, nil
}

func (s *experienceService) GetDetails(ctx context.Context, id string) (*model.Experience, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Experience ID missing in request")
	}

	exp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, experrors.ErrNotFound) {
			return nil, apperrors.NotFound("Experience not found")
		}
		if errors.Is(err, experrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid Experience ID")
		}
		return nil, apperrors.Internal("Failed to retrieve experience", err)
	}

	return exp, nil
}

func (s *experienceService) GetSummary(ctx context.Context, id string) (*model.ExperienceSummary, error) {
	summary, err := s.repo.FindSummary(ctx, id)
	if err != nil {
		if errors.Is(err, experrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Experience", id)
		}
		if errors.Is(err, experrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid Experience ID")
		}
		return nil, apperrors.Internal("Failed to retrieve experience", err)
	}
	return summary, nil
}
