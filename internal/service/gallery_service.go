package service

import (
	"context"

	"restaurant-site/internal/apiclient"
	"restaurant-site/internal/fallback"
	"restaurant-site/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	galleryImagesPath  = "/gallery/images"
	galleryAwardsPath  = "/gallery/awards"
	galleryReviewsPath = "/gallery/reviews"
	galleryUploadPath  = "/gallery/upload"
)

// galleryService implements GalleryService.
type galleryService struct {
	api      API
	fallback model.Gallery
	logger   zerolog.Logger
}

// NewGalleryService creates a new gallery service. content supplies the page shown
// when the backend cannot.
func NewGalleryService(api API, content fallback.Content, logger zerolog.Logger) GalleryService {
	return &galleryService{
		api:      api,
		fallback: content.Gallery,
		logger:   logger.With().Str("service", "gallery").Logger(),
	}
}

func (s *galleryService) Images(ctx context.Context) ([]model.GalleryImage, error) {
	return listJSON[model.GalleryImage](ctx, s.api, galleryImagesPath)
}

func (s *galleryService) Image(ctx context.Context, id int) (*model.GalleryImage, error) {
	return getJSON[model.GalleryImage](ctx, s.api, itemPath(galleryImagesPath, id))
}

func (s *galleryService) CreateImage(ctx context.Context, img model.GalleryImage) (*model.MessageResponse, error) {
	if img.ImageURL == "" {
		return nil, model.NewValidationError(map[string]string{"image_url": "Image URL is required"})
	}
	return create(ctx, s.api, galleryImagesPath, img)
}

func (s *galleryService) UpdateImage(ctx context.Context, id int, img model.GalleryImage) (*model.MessageResponse, error) {
	return update(ctx, s.api, galleryImagesPath, id, img)
}

func (s *galleryService) DeleteImage(ctx context.Context, id int) (*model.MessageResponse, error) {
	return remove(ctx, s.api, galleryImagesPath, id)
}

// UploadImage posts the file as the "image" form field with its caption.
func (s *galleryService) UploadImage(ctx context.Context, file apiclient.FilePart, caption string) (*model.UploadedImage, error) {
	file.Field = "image"

	var out model.UploadedImage
	if err := s.api.Upload(ctx, galleryUploadPath, file, map[string]string{"caption": caption}, &out); err != nil {
		s.logger.Warn().Err(err).Str("filename", file.Filename).Msg("failed to upload gallery image")
		return nil, err
	}

	s.logger.Info().Int("image_id", out.ID).Str("url", out.URL).Msg("gallery image uploaded")

	return &out, nil
}

func (s *galleryService) Awards(ctx context.Context) ([]model.Award, error) {
	return listJSON[model.Award](ctx, s.api, galleryAwardsPath)
}

func (s *galleryService) Award(ctx context.Context, id int) (*model.Award, error) {
	return getJSON[model.Award](ctx, s.api, itemPath(galleryAwardsPath, id))
}

func (s *galleryService) CreateAward(ctx context.Context, award model.Award) (*model.MessageResponse, error) {
	if award.Title == "" {
		return nil, model.NewValidationError(map[string]string{"title": "Award title is required"})
	}
	return create(ctx, s.api, galleryAwardsPath, award)
}

func (s *galleryService) UpdateAward(ctx context.Context, id int, award model.Award) (*model.MessageResponse, error) {
	return update(ctx, s.api, galleryAwardsPath, id, award)
}

func (s *galleryService) DeleteAward(ctx context.Context, id int) (*model.MessageResponse, error) {
	return remove(ctx, s.api, galleryAwardsPath, id)
}

func (s *galleryService) Reviews(ctx context.Context) ([]model.Review, error) {
	return listJSON[model.Review](ctx, s.api, galleryReviewsPath)
}

func (s *galleryService) Review(ctx context.Context, id int) (*model.Review, error) {
	return getJSON[model.Review](ctx, s.api, itemPath(galleryReviewsPath, id))
}

func (s *galleryService) CreateReview(ctx context.Context, review model.Review) (*model.MessageResponse, error) {
	if review.Content == "" {
		return nil, model.NewValidationError(map[string]string{"content": "Review text is required"})
	}
	return create(ctx, s.api, galleryReviewsPath, review)
}

func (s *galleryService) UpdateReview(ctx context.Context, id int, review model.Review) (*model.MessageResponse, error) {
	return update(ctx, s.api, galleryReviewsPath, id, review)
}

func (s *galleryService) DeleteReview(ctx context.Context, id int) (*model.MessageResponse, error) {
	return remove(ctx, s.api, galleryReviewsPath, id)
}

// LoadAll issues the three reads concurrently and completes once all have
// succeeded or the first one has failed.
func (s *galleryService) LoadAll(ctx context.Context) (*model.Gallery, error) {
	var gallery model.Gallery

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		images, err := s.Images(gctx)
		if err != nil {
			return err
		}
		gallery.Images = images
		return nil
	})

	g.Go(func() error {
		awards, err := s.Awards(gctx)
		if err != nil {
			return err
		}
		gallery.Awards = awards
		return nil
	})

	g.Go(func() error {
		reviews, err := s.Reviews(gctx)
		if err != nil {
			return err
		}
		gallery.Reviews = reviews
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to load gallery")
		return nil, err
	}

	s.logger.Debug().
		Int("images", len(gallery.Images)).
		Int("awards", len(gallery.Awards)).
		Int("reviews", len(gallery.Reviews)).
		Msg("gallery loaded")

	return &gallery, nil
}

// Load returns the backend gallery, or the static gallery when loading
// fails or the backend has no images.
func (s *galleryService) Load(ctx context.Context) model.Sourced[model.Gallery] {
	gallery, err := s.LoadAll(ctx)
	if err != nil {
		s.logger.Info().Err(err).Msg("using static gallery")
		return model.FromFallback(s.fallback, err.Error())
	}
	if len(gallery.Images) == 0 {
		s.logger.Info().Msg("backend gallery has no images, using static gallery")
		return model.FromFallback(s.fallback, "backend returned no gallery images")
	}
	return model.FromBackend(*gallery)
}
