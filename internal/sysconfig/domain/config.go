package domain

import (
	"context"
	"time"
)

// SystemConfig is the single site-wide settings document. There is exactly
// one; reads fall back to Defaults until an admin first saves it.
type SystemConfig struct {
	SiteName              string    `json:"siteName"`
	SiteDescription       string    `json:"siteDescription"`
	ContactEmail          string    `json:"contactEmail"`
	ContactPhone          string    `json:"contactPhone"`
	MaxImagesPerAd        int       `json:"maxImagesPerAd"`
	MaxAdDurationDays     int       `json:"maxAdDurationDays"`
	RequireModeration     bool      `json:"requireModeration"`
	AllowUserRegistration bool      `json:"allowUserRegistration"`
	MaintenanceMode       bool      `json:"maintenanceMode"`
	DisclaimerText        string    `json:"disclaimerText"`
	TermsOfService        string    `json:"termsOfService"`
	UpdatedBy             string    `json:"updatedBy,omitempty"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func Defaults() SystemConfig {
	return SystemConfig{
		SiteName:              "Freecosystem",
		SiteDescription:       "Community classifieds marketplace",
		MaxImagesPerAd:        5,
		MaxAdDurationDays:     30,
		RequireModeration:     true,
		AllowUserRegistration: true,
	}
}

type Repository interface {
	Load(ctx context.Context) (*SystemConfig, error)
	Save(ctx context.Context, cfg *SystemConfig) error
}
