package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/moderation/domain"
)

// TransitionPatch is the single atomic update applied to one entity: status,
// audit stamp and rejection reason change together or not at all.
type TransitionPatch struct {
	Status          domain.Status
	ModeratedBy     string
	ModeratedAt     time.Time
	RejectionReason string // empty means leave the stored reason untouched
	Role            domain.Role
}

// EntityStore is the persistence port for the moderation engine. Single-id
// operations are atomic per document; bulk variants are atomic per matched
// document, not across the whole set.
type EntityStore interface {
	FindByID(ctx context.Context, family domain.Family, id string) (*domain.Snapshot, error)
	FindManyByIDs(ctx context.Context, family domain.Family, ids []string) ([]domain.Snapshot, error)
	ApplyTransition(ctx context.Context, family domain.Family, id string, patch TransitionPatch) (*domain.Snapshot, error)
	ApplyTransitionMany(ctx context.Context, family domain.Family, ids []string, patch TransitionPatch) (int64, error)
	Delete(ctx context.Context, family domain.Family, id string) error
	DeleteMany(ctx context.Context, family domain.Family, ids []string) (int64, error)
	Count(ctx context.Context, family domain.Family, status domain.Status) (int64, error)
}

// Dispatcher durably records a notification. Delivery is best-effort from the
// engine's perspective: a dispatch failure never rolls back a transition.
type Dispatcher interface {
	Dispatch(ctx context.Context, event domain.NotificationEvent) error
}

// ModerateRequest names one entity and the transition to apply to it.
type ModerateRequest struct {
	Family   domain.Family
	EntityID string
	Action   domain.Action
	Actor    domain.Actor
	Reason   string
	Role     domain.Role
}

// BulkRequest applies one action to a set of entity ids.
type BulkRequest struct {
	Family    domain.Family
	EntityIDs []string
	Action    domain.Action
	Actor     domain.Actor
	Reason    string
	Role      domain.Role
}

// BulkResult reports how many entities were actually changed or deleted,
// which may be fewer than the number of requested ids.
type BulkResult struct {
	MatchedCount int64
}

// Engine orchestrates moderation transitions for all three entity families.
// Both the admin and the moderator surfaces go through this one implementation.
type Engine struct {
	store      EntityStore
	dispatcher Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func NewEngine(store EntityStore, dispatcher Dispatcher, logger *zap.Logger) *Engine {
	return &Engine{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger.Named("ModerationEngine"),
		now:        time.Now,
	}
}

// Moderate applies one transition to one entity and requests notification
// delivery for the affected parties.
func (e *Engine) Moderate(ctx context.Context, req ModerateRequest) (*domain.Snapshot, error) {
	if strings.TrimSpace(req.EntityID) == "" {
		return nil, domain.ErrValidation
	}

	plan, err := domain.Evaluate(domain.Request{
		Family: req.Family,
		Action: req.Action,
		Actor:  req.Actor,
		Reason: req.Reason,
		Role:   req.Role,
	}, e.now())
	if err != nil {
		return nil, err
	}

	if plan.Delete {
		snap, err := e.store.FindByID(ctx, req.Family, req.EntityID)
		if err != nil {
			return nil, err
		}
		if err := e.store.Delete(ctx, req.Family, req.EntityID); err != nil {
			return nil, err
		}
		e.logger.Info("entity deleted",
			zap.String("family", string(req.Family)),
			zap.String("entityID", req.EntityID),
			zap.String("actorID", req.Actor.ID))
		return snap, nil
	}

	snap, err := e.store.ApplyTransition(ctx, req.Family, req.EntityID, patchFromPlan(plan))
	if err != nil {
		return nil, err
	}

	e.dispatch(ctx, plan.Notifications(*snap))

	e.logger.Info("entity moderated",
		zap.String("family", string(req.Family)),
		zap.String("entityID", req.EntityID),
		zap.String("action", string(req.Action)),
		zap.String("newStatus", string(plan.NewStatus)),
		zap.String("actorID", req.Actor.ID))
	return snap, nil
}

// BulkModerate applies one action to a set of ids as a single batched store
// update. Ids with no matching entity are silently excluded from the result;
// a structurally invalid request fails wholesale before touching the store.
func (e *Engine) BulkModerate(ctx context.Context, req BulkRequest) (BulkResult, error) {
	if len(req.EntityIDs) == 0 {
		return BulkResult{}, domain.ErrValidation
	}
	for _, id := range req.EntityIDs {
		if strings.TrimSpace(id) == "" {
			return BulkResult{}, domain.ErrValidation
		}
	}

	plan, err := domain.Evaluate(domain.Request{
		Family: req.Family,
		Action: req.Action,
		Actor:  req.Actor,
		Reason: req.Reason,
		Role:   req.Role,
	}, e.now())
	if err != nil {
		return BulkResult{}, err
	}

	if plan.Delete {
		deleted, err := e.store.DeleteMany(ctx, req.Family, req.EntityIDs)
		if err != nil {
			return BulkResult{}, err
		}
		e.logger.Info("bulk delete applied",
			zap.String("family", string(req.Family)),
			zap.Int("requested", len(req.EntityIDs)),
			zap.Int64("deleted", deleted),
			zap.String("actorID", req.Actor.ID))
		return BulkResult{MatchedCount: deleted}, nil
	}

	matched, err := e.store.ApplyTransitionMany(ctx, req.Family, req.EntityIDs, patchFromPlan(plan))
	if err != nil {
		return BulkResult{}, err
	}

	// Notifications are derived from post-update snapshots so that each
	// affected entity produces exactly one fan-out, and unknown ids none.
	snaps, err := e.store.FindManyByIDs(ctx, req.Family, req.EntityIDs)
	if err != nil {
		e.logger.Error("failed to load entities for bulk notification fan-out",
			zap.String("family", string(req.Family)), zap.Error(err))
	} else {
		for _, snap := range snaps {
			e.dispatch(ctx, plan.Notifications(snap))
		}
	}

	e.logger.Info("bulk moderation applied",
		zap.String("family", string(req.Family)),
		zap.String("action", string(req.Action)),
		zap.Int("requested", len(req.EntityIDs)),
		zap.Int64("matched", matched),
		zap.String("actorID", req.Actor.ID))
	return BulkResult{MatchedCount: matched}, nil
}

func (e *Engine) dispatch(ctx context.Context, events []domain.NotificationEvent) {
	for _, ev := range events {
		if err := e.dispatcher.Dispatch(ctx, ev); err != nil {
			// Best-effort: moderation already succeeded.
			e.logger.Error("failed to dispatch notification",
				zap.String("recipient", ev.Recipient),
				zap.String("type", ev.Type),
				zap.Error(err))
		}
	}
}

func patchFromPlan(plan *domain.TransitionPlan) TransitionPatch {
	return TransitionPatch{
		Status:          plan.NewStatus,
		ModeratedBy:     plan.Stamp.By,
		ModeratedAt:     plan.Stamp.At,
		RejectionReason: plan.RejectionReason,
		Role:            plan.NewRole,
	}
}
