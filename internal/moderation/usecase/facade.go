package usecase

import (
	"context"

	"github.com/freecosystem/marketplace/internal/moderation/domain"
)

// The admin and moderator surfaces share one workflow. Each façade scopes the
// engine to the action set its role is given at the transport edge; the
// transition rules themselves live in the status machine and are not
// re-derived per surface.

var moderatorActions = map[domain.Action]bool{
	domain.ActionApprove: true,
	domain.ActionReject:  true,
}

var adminActions = map[domain.Action]bool{
	domain.ActionApprove:    true,
	domain.ActionReject:     true,
	domain.ActionActivate:   true,
	domain.ActionDeactivate: true,
	domain.ActionSuspend:    true,
	domain.ActionSetRole:    true,
	domain.ActionDelete:     true,
}

// FamilyCounts groups per-family totals for a single status bucket.
type FamilyCounts struct {
	Listings  int64 `json:"listings"`
	Users     int64 `json:"users"`
	Interests int64 `json:"interests"`
}

// ModeratorDashboard mirrors the moderation queue view: how much work is
// pending and what has already been decided.
type ModeratorDashboard struct {
	Pending  FamilyCounts `json:"pending"`
	Approved FamilyCounts `json:"approved"`
	Rejected struct {
		Listings int64 `json:"listings"`
	} `json:"rejected"`
}

// AdminDashboard aggregates marketplace-wide totals by status and listing type.
type AdminDashboard struct {
	TotalAdsLive          int64            `json:"totalAdsLive"`
	TotalAdsPending       int64            `json:"totalAdsPending"`
	TotalAdsRejected      int64            `json:"totalAdsRejected"`
	TotalAdsInactive      int64            `json:"totalAdsInactive"`
	TotalActiveUsers      int64            `json:"totalActiveUsers"`
	TotalDeactivatedUsers int64            `json:"totalDeactivatedUsers"`
	ListingsByType        map[string]int64 `json:"listingsByType"`
}

// ListingTypeCounter is implemented by the listing repository; the dashboard
// is the only moderation consumer of per-type counts.
type ListingTypeCounter interface {
	CountByType(ctx context.Context) (map[string]int64, error)
}

type UserTotalCounter interface {
	CountAll(ctx context.Context) (int64, error)
}

// ModeratorFacade exposes the approve/reject workflow and the queue dashboard.
type ModeratorFacade struct {
	engine *Engine
	store  EntityStore
}

func NewModeratorFacade(engine *Engine, store EntityStore) *ModeratorFacade {
	return &ModeratorFacade{engine: engine, store: store}
}

func (f *ModeratorFacade) Moderate(ctx context.Context, req ModerateRequest) (*domain.Snapshot, error) {
	if !moderatorActions[req.Action] {
		return nil, domain.ErrInvalidAction
	}
	return f.engine.Moderate(ctx, req)
}

func (f *ModeratorFacade) BulkModerate(ctx context.Context, req BulkRequest) (BulkResult, error) {
	if !moderatorActions[req.Action] {
		return BulkResult{}, domain.ErrInvalidAction
	}
	return f.engine.BulkModerate(ctx, req)
}

func (f *ModeratorFacade) Dashboard(ctx context.Context) (*ModeratorDashboard, error) {
	dash := &ModeratorDashboard{}
	counts := []struct {
		family domain.Family
		status domain.Status
		target *int64
	}{
		{domain.FamilyListing, domain.StatusPending, &dash.Pending.Listings},
		{domain.FamilyUser, domain.StatusPending, &dash.Pending.Users},
		{domain.FamilyInterest, domain.StatusPending, &dash.Pending.Interests},
		{domain.FamilyListing, domain.StatusActive, &dash.Approved.Listings},
		{domain.FamilyUser, domain.StatusActive, &dash.Approved.Users},
		{domain.FamilyInterest, domain.StatusApproved, &dash.Approved.Interests},
		{domain.FamilyListing, domain.StatusRejected, &dash.Rejected.Listings},
	}
	for _, c := range counts {
		n, err := f.store.Count(ctx, c.family, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = n
	}
	return dash, nil
}

// AdminFacade exposes the full action vocabulary, including role assignment
// and hard deletion, plus the marketplace-wide dashboard.
type AdminFacade struct {
	engine       *Engine
	store        EntityStore
	listingTypes ListingTypeCounter
	userTotals   UserTotalCounter
}

func NewAdminFacade(engine *Engine, store EntityStore, listingTypes ListingTypeCounter, userTotals UserTotalCounter) *AdminFacade {
	return &AdminFacade{
		engine:       engine,
		store:        store,
		listingTypes: listingTypes,
		userTotals:   userTotals,
	}
}

func (f *AdminFacade) Moderate(ctx context.Context, req ModerateRequest) (*domain.Snapshot, error) {
	if !adminActions[req.Action] {
		return nil, domain.ErrInvalidAction
	}
	return f.engine.Moderate(ctx, req)
}

func (f *AdminFacade) BulkModerate(ctx context.Context, req BulkRequest) (BulkResult, error) {
	if !adminActions[req.Action] {
		return BulkResult{}, domain.ErrInvalidAction
	}
	return f.engine.BulkModerate(ctx, req)
}

func (f *AdminFacade) Dashboard(ctx context.Context) (*AdminDashboard, error) {
	dash := &AdminDashboard{}
	counts := []struct {
		status domain.Status
		target *int64
	}{
		{domain.StatusActive, &dash.TotalAdsLive},
		{domain.StatusPending, &dash.TotalAdsPending},
		{domain.StatusRejected, &dash.TotalAdsRejected},
		{domain.StatusInactive, &dash.TotalAdsInactive},
	}
	for _, c := range counts {
		n, err := f.store.Count(ctx, domain.FamilyListing, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = n
	}

	activeUsers, err := f.store.Count(ctx, domain.FamilyUser, domain.StatusActive)
	if err != nil {
		return nil, err
	}
	totalUsers, err := f.userTotals.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	dash.TotalActiveUsers = activeUsers
	dash.TotalDeactivatedUsers = totalUsers - activeUsers

	byType, err := f.listingTypes.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	dash.ListingsByType = byType

	return dash, nil
}
