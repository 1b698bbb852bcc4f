package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/listing/domain"
)

// PhotoUsecase pushes listing images into the media store ahead of listing
// creation and hands back their public URLs.
type PhotoUsecase struct {
	storage  domain.Storage
	settings Settings
	logger   *zap.Logger
}

func NewPhotoUsecase(storage domain.Storage, settings Settings, logger *zap.Logger) *PhotoUsecase {
	return &PhotoUsecase{
		storage:  storage,
		settings: settings,
		logger:   logger.Named("PhotoUsecase"),
	}
}

type ImageUpload struct {
	FileName string
	Data     []byte
}

// UploadImages stores each image and returns the URLs in input order. The
// per-listing image cap is enforced here so a caller cannot sidestep it by
// uploading first and attaching later.
func (uc *PhotoUsecase) UploadImages(ctx context.Context, uploads []ImageUpload) ([]string, error) {
	if max := uc.settings.MaxImagesPerListing(ctx); max > 0 && len(uploads) > max {
		return nil, domain.ErrTooManyImages
	}

	urls := make([]string, 0, len(uploads))
	for _, up := range uploads {
		url, err := uc.storage.Upload(ctx, up.FileName, up.Data)
		if err != nil {
			uc.logger.Error("image upload failed", zap.String("fileName", up.FileName), zap.Error(err))
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
