package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/sysconfig/domain"
)

// The whole site configuration lives in one well-known document.
const systemConfigID = "system"

type systemConfigDocument struct {
	ID                    string    `bson:"_id"`
	SiteName              string    `bson:"site_name"`
	SiteDescription       string    `bson:"site_description,omitempty"`
	ContactEmail          string    `bson:"contact_email,omitempty"`
	ContactPhone          string    `bson:"contact_phone,omitempty"`
	MaxImagesPerAd        int       `bson:"max_images_per_ad"`
	MaxAdDurationDays     int       `bson:"max_ad_duration_days"`
	RequireModeration     bool      `bson:"require_moderation"`
	AllowUserRegistration bool      `bson:"allow_user_registration"`
	MaintenanceMode       bool      `bson:"maintenance_mode"`
	DisclaimerText        string    `bson:"disclaimer_text,omitempty"`
	TermsOfService        string    `bson:"terms_of_service,omitempty"`
	UpdatedBy             string    `bson:"updated_by,omitempty"`
	UpdatedAt             time.Time `bson:"updated_at"`
}

type SystemConfigRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewSystemConfigRepository(db *mongo.Database, logger *zap.Logger) *SystemConfigRepository {
	return &SystemConfigRepository{
		collection: db.Collection("system_config"),
		logger:     logger.Named("SystemConfigRepository"),
	}
}

// Load returns (nil, nil) when the config was never saved; callers fall back
// to domain.Defaults.
func (r *SystemConfigRepository) Load(ctx context.Context) (*domain.SystemConfig, error) {
	var doc systemConfigDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": systemConfigID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.SystemConfig{
		SiteName:              doc.SiteName,
		SiteDescription:       doc.SiteDescription,
		ContactEmail:          doc.ContactEmail,
		ContactPhone:          doc.ContactPhone,
		MaxImagesPerAd:        doc.MaxImagesPerAd,
		MaxAdDurationDays:     doc.MaxAdDurationDays,
		RequireModeration:     doc.RequireModeration,
		AllowUserRegistration: doc.AllowUserRegistration,
		MaintenanceMode:       doc.MaintenanceMode,
		DisclaimerText:        doc.DisclaimerText,
		TermsOfService:        doc.TermsOfService,
		UpdatedBy:             doc.UpdatedBy,
		UpdatedAt:             doc.UpdatedAt,
	}, nil
}

func (r *SystemConfigRepository) Save(ctx context.Context, cfg *domain.SystemConfig) error {
	doc := systemConfigDocument{
		ID:                    systemConfigID,
		SiteName:              cfg.SiteName,
		SiteDescription:       cfg.SiteDescription,
		ContactEmail:          cfg.ContactEmail,
		ContactPhone:          cfg.ContactPhone,
		MaxImagesPerAd:        cfg.MaxImagesPerAd,
		MaxAdDurationDays:     cfg.MaxAdDurationDays,
		RequireModeration:     cfg.RequireModeration,
		AllowUserRegistration: cfg.AllowUserRegistration,
		MaintenanceMode:       cfg.MaintenanceMode,
		DisclaimerText:        cfg.DisclaimerText,
		TermsOfService:        cfg.TermsOfService,
		UpdatedBy:             cfg.UpdatedBy,
		UpdatedAt:             cfg.UpdatedAt,
	}
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": systemConfigID}, doc,
		options.Replace().SetUpsert(true))
	return err
}
