package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"estate-api/domain"
	"estate-api/query"
)

const propertiesCollection = "properties"

// summaryProjection limita las lecturas de listados a los campos de
// PropertySummary
var summaryProjection = bson.D{
	{Key: "description", Value: 0},
	{Key: "updatedAt", Value: 0},
}

// PropertyRepository es la colección de propiedades en MongoDB: lecturas de
// listados y escrituras del back-office.
type PropertyRepository interface {
	PropertyStore
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Property, error)
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type propertyRepository struct {
	mongo *MongoHandle
}

// NewPropertyRepository crea un repositorio sobre la colección "properties"
func NewPropertyRepository(handle *MongoHandle) PropertyRepository {
	return &propertyRepository{mongo: handle}
}

func (r *propertyRepository) collection() (*mongo.Collection, error) {
	return r.mongo.Collection(propertiesCollection)
}

// Find aplica el filtro, el orden y la ventana de paginación del plan
func (r *propertyRepository) Find(ctx context.Context, plan query.Plan) ([]domain.PropertySummary, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}
	filter, err := BuildMongoFilter(plan.Filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(BuildMongoSort(plan.Sort)).
		SetSkip(plan.Pagination.Skip()).
		SetLimit(int64(plan.Pagination.Limit)).
		SetProjection(summaryProjection)

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding properties: %w", err)
	}
	defer cursor.Close(ctx)

	rows := make([]domain.PropertySummary, 0, plan.Pagination.Limit)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding properties: %w", err)
	}
	for i := range rows {
		rows[i].SetCover()
	}
	return rows, nil
}

// Count cuenta los documentos que cumplen el filtro
func (r *propertyRepository) Count(ctx context.Context, filter query.Filter) (int64, error) {
	coll, err := r.collection()
	if err != nil {
		return 0, err
	}
	doc, err := BuildMongoFilter(filter)
	if err != nil {
		return 0, err
	}

	total, err := coll.CountDocuments(ctx, doc)
	if err != nil {
		return 0, fmt.Errorf("error counting properties: %w", err)
	}
	return total, nil
}

// GetByID carga una propiedad
func (r *propertyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	var property domain.Property
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&property); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error loading property %s: %w", id.Hex(), err)
	}
	return &property, nil
}

// Create inserta una propiedad y le asigna el ID
func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	if _, err := coll.InsertOne(ctx, property); err != nil {
		return fmt.Errorf("error inserting property: %w", err)
	}
	return nil
}

// Update reemplaza el documento de una propiedad
func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}
	res, err := coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: property.ID}}, property)
	if err != nil {
		return fmt.Errorf("error updating property %s: %w", property.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete elimina una propiedad
func (r *propertyRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("error deleting property %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsurePropertyIndexes crea los índices que usan los filtros y órdenes del
// listado
func EnsurePropertyIndexes(ctx context.Context, handle *MongoHandle) error {
	coll, err := handle.Collection(propertiesCollection)
	if err != nil {
		return err
	}
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "verified", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "agentId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "amenities", Value: 1}}},
	}
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("error creating property indexes: %w", err)
	}
	return nil
}
