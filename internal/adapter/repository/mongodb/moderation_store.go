package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/moderation/domain"
	"github.com/freecosystem/marketplace/internal/moderation/usecase"
)

// ModerationStore serves the moderation engine across the three entity
// collections. One implementation, dispatched by family.
type ModerationStore struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewModerationStore(db *mongo.Database, logger *zap.Logger) *ModerationStore {
	return &ModerationStore{
		db:     db,
		logger: logger.Named("ModerationStore"),
	}
}

func (s *ModerationStore) collection(family domain.Family) (*mongo.Collection, error) {
	switch family {
	case domain.FamilyUser:
		return s.db.Collection("users"), nil
	case domain.FamilyListing:
		return s.db.Collection("listings"), nil
	case domain.FamilyInterest:
		return s.db.Collection("interests"), nil
	}
	return nil, fmt.Errorf("unknown entity family %q", family)
}

func (s *ModerationStore) FindByID(ctx context.Context, family domain.Family, id string) (*domain.Snapshot, error) {
	coll, err := s.collection(family)
	if err != nil {
		return nil, err
	}
	var doc snapshotDocument
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	snap := doc.toSnapshot(family)
	return &snap, nil
}

func (s *ModerationStore) FindManyByIDs(ctx context.Context, family domain.Family, ids []string) ([]domain.Snapshot, error) {
	coll, err := s.collection(family)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var docs []snapshotDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	snaps := make([]domain.Snapshot, 0, len(docs))
	for i := range docs {
		snaps = append(snaps, docs[i].toSnapshot(family))
	}
	return snaps, nil
}

// patchUpdate builds the single $set for a transition. Status, audit stamp,
// rejection reason and role land in one update so the change is atomic per
// document.
func patchUpdate(patch usecase.TransitionPatch) bson.M {
	set := bson.M{
		"moderated_by": patch.ModeratedBy,
		"moderated_at": patch.ModeratedAt,
	}
	if patch.Status != "" {
		set["status"] = string(patch.Status)
	}
	if patch.RejectionReason != "" {
		set["rejection_reason"] = patch.RejectionReason
	}
	if patch.Role != "" {
		set["role"] = string(patch.Role)
	}
	return bson.M{"$set": set}
}

func (s *ModerationStore) ApplyTransition(ctx context.Context, family domain.Family, id string, patch usecase.TransitionPatch) (*domain.Snapshot, error) {
	coll, err := s.collection(family)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc snapshotDocument
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, patchUpdate(patch), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	snap := doc.toSnapshot(family)
	return &snap, nil
}

func (s *ModerationStore) ApplyTransitionMany(ctx context.Context, family domain.Family, ids []string, patch usecase.TransitionPatch) (int64, error) {
	coll, err := s.collection(family)
	if err != nil {
		return 0, err
	}
	res, err := coll.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, patchUpdate(patch))
	if err != nil {
		return 0, err
	}
	// MatchedCount, not ModifiedCount: an entity already in the target
	// status still counts as processed.
	return res.MatchedCount, nil
}

func (s *ModerationStore) Delete(ctx context.Context, family domain.Family, id string) error {
	coll, err := s.collection(family)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ModerationStore) DeleteMany(ctx context.Context, family domain.Family, ids []string) (int64, error) {
	coll, err := s.collection(family)
	if err != nil {
		return 0, err
	}
	res, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *ModerationStore) Count(ctx context.Context, family domain.Family, status domain.Status) (int64, error) {
	coll, err := s.collection(family)
	if err != nil {
		return 0, err
	}
	query := bson.M{}
	if status != "" {
		query["status"] = string(status)
	}
	return coll.CountDocuments(ctx, query)
}
