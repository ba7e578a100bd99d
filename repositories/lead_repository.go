package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"estate-api/domain"
)

const leadsCollection = "leads"

// LeadRepository guarda las consultas recibidas
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	List(ctx context.Context, skip int64, limit int) ([]domain.Lead, error)
	Count(ctx context.Context) (int64, error)
}

type leadRepository struct {
	mongo *MongoHandle
}

// NewLeadRepository crea un repositorio sobre la colección "leads"
func NewLeadRepository(handle *MongoHandle) LeadRepository {
	return &leadRepository{mongo: handle}
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	coll, err := r.mongo.Collection(leadsCollection)
	if err != nil {
		return err
	}
	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	if _, err := coll.InsertOne(ctx, lead); err != nil {
		return fmt.Errorf("error inserting lead: %w", err)
	}
	return nil
}

// List devuelve las consultas, las más nuevas primero
func (r *leadRepository) List(ctx context.Context, skip int64, limit int) ([]domain.Lead, error) {
	coll, err := r.mongo.Collection(leadsCollection)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding leads: %w", err)
	}
	defer cursor.Close(ctx)

	leads := make([]domain.Lead, 0, limit)
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("error decoding leads: %w", err)
	}
	return leads, nil
}

func (r *leadRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.mongo.Collection(leadsCollection)
	if err != nil {
		return 0, err
	}
	total, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("error counting leads: %w", err)
	}
	return total, nil
}
