package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/interest/domain"
	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
)

type InterestRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewInterestRepository(db *mongo.Database, logger *zap.Logger) *InterestRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("interests")
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "listing_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("failed to ensure indexes for interests collection", zap.Error(err))
	}

	return &InterestRepository{
		collection: collection,
		logger:     logger.Named("InterestRepository"),
	}
}

func (r *InterestRepository) Create(ctx context.Context, interest *domain.Interest) error {
	if interest.ID == "" {
		interest.ID = primitive.NewObjectID().Hex()
	}
	if interest.CreatedAt.IsZero() {
		interest.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, toInterestDocument(interest))
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateInterest
	}
	return err
}

func (r *InterestRepository) FindByID(ctx context.Context, id string) (*domain.Interest, error) {
	var doc interestDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, err
	}
	return toDomainInterest(&doc), nil
}

func (r *InterestRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Interest, int64, error) {
	query := bson.M{}
	if filter.SenderID != "" {
		query["sender_id"] = filter.SenderID
	}
	if filter.ReceiverID != "" {
		query["receiver_id"] = filter.ReceiverID
	}
	if filter.ListingID != "" {
		query["listing_id"] = filter.ListingID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
		if filter.Page > 1 {
			opts.SetSkip((filter.Page - 1) * filter.Limit)
		}
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	var docs []*interestDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	interests := make([]*domain.Interest, 0, len(docs))
	for _, doc := range docs {
		interests = append(interests, toDomainInterest(doc))
	}
	return interests, total, nil
}

func (r *InterestRepository) Exists(ctx context.Context, senderID, listingID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"sender_id": senderID, "listing_id": listingID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *InterestRepository) UpdateStatus(ctx context.Context, id string, status moderation.Status) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrInterestNotFound
	}
	return nil
}
