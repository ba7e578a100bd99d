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

const agentsCollection = "agents"

// AgentRepository lee el directorio de agentes
type AgentRepository interface {
	AgentStore
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Agent, error)
}

type agentRepository struct {
	mongo *MongoHandle
}

// NewAgentRepository crea un repositorio sobre la colección "agents"
func NewAgentRepository(handle *MongoHandle) AgentRepository {
	return &agentRepository{mongo: handle}
}

func (r *agentRepository) Find(ctx context.Context, plan query.Plan) ([]domain.Agent, error) {
	coll, err := r.mongo.Collection(agentsCollection)
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
		SetLimit(int64(plan.Pagination.Limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding agents: %w", err)
	}
	defer cursor.Close(ctx)

	agents := make([]domain.Agent, 0, plan.Pagination.Limit)
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, fmt.Errorf("error decoding agents: %w", err)
	}
	return agents, nil
}

func (r *agentRepository) Count(ctx context.Context, filter query.Filter) (int64, error) {
	coll, err := r.mongo.Collection(agentsCollection)
	if err != nil {
		return 0, err
	}
	doc, err := BuildMongoFilter(filter)
	if err != nil {
		return 0, err
	}
	total, err := coll.CountDocuments(ctx, doc)
	if err != nil {
		return 0, fmt.Errorf("error counting agents: %w", err)
	}
	return total, nil
}

func (r *agentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Agent, error) {
	coll, err := r.mongo.Collection(agentsCollection)
	if err != nil {
		return nil, err
	}
	var agent domain.Agent
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&agent); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error loading agent %s: %w", id.Hex(), err)
	}
	return &agent, nil
}
