package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"easybooking/internal/apperrors"
	"easybooking/internal/media"
	"easybooking/internal/models"
	"easybooking/internal/repositories"
)

// TrendingInput is the parsed add-trending form: text fields plus the media
// batch. Name, Subname, Description and the primary image are required.
type TrendingInput struct {
	Name            string
	Subname         string
	Description     string
	Location        string
	Highlights      string
	Address         string
	Contact         string
	AvailableThings string

	Files media.Batch
}

type TrendingService interface {
	List(ctx context.Context) ([]models.TrendingItem, error)
	Add(ctx context.Context, input *TrendingInput) error
	Delete(ctx context.Context, name string) (*models.TrendingItem, error)
}

type trendingService struct {
	repo     repositories.TrendingRepository
	pipeline *media.Pipeline
}

func NewTrendingService(repo repositories.TrendingRepository, pipeline *media.Pipeline) TrendingService {
	return &trendingService{repo: repo, pipeline: pipeline}
}

// List returns every persisted item verbatim. No pagination or filtering;
// the collection is expected to stay small (known scaling limit).
func (s *trendingService) List(ctx context.Context) ([]models.TrendingItem, error) {
	return s.repo.FindAll(ctx)
}

func (s *trendingService) Add(ctx context.Context, input *TrendingInput) error {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Subname) == "" {
		missing = append(missing, "subname")
	}
	if strings.TrimSpace(input.Description) == "" {
		missing = append(missing, "description")
	}
	if input.Files.Images[0] == nil {
		missing = append(missing, "image")
	}
	if len(missing) > 0 {
		return &apperrors.ValidationError{Fields: missing}
	}

	result, err := s.pipeline.Process(ctx, &input.Files)
	if err != nil {
		return err
	}
	if result.VideoURL == nil && input.Files.Video != nil {
		log.Warn().Str("name", input.Name).Msg("Optional video upload failed")
	}

	item := &models.TrendingItem{
		Name:            input.Name,
		Subname:         input.Subname,
		Description:     input.Description,
		Image:           *result.ImageURLs[0],
		Image1:          result.ImageURLs[1],
		Image2:          result.ImageURLs[2],
		Image3:          result.ImageURLs[3],
		Image4:          result.ImageURLs[4],
		Image5:          result.ImageURLs[5],
		Image6:          result.ImageURLs[6],
		VideoURL:        result.VideoURL,
		Location:        input.Location,
		Highlights:      input.Highlights,
		Address:         input.Address,
		Contact:         input.Contact,
		AvailableThings: splitAvailableThings(input.AvailableThings),
		CreatedAt:       time.Now(),
	}

	if _, err := s.repo.Create(ctx, item); err != nil {
		return err
	}

	log.Info().Str("name", item.Name).Msg("Trending item added")
	return nil
}

func (s *trendingService) Delete(ctx context.Context, name string) (*models.TrendingItem, error) {
	deleted, err := s.repo.DeleteByName(ctx, name)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound(fmt.Sprintf("Trending item with name %q not found", name))
		}
		return nil, err
	}
	log.Info().Str("name", name).Msg("Trending item deleted")
	return deleted, nil
}

func splitAvailableThings(raw string) []string {
	things := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			things = append(things, trimmed)
		}
	}
	return things
}
