package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var errClosed = errors.New("mongo handle closed")

// MongoHandle es dueño del cliente de MongoDB. El cliente se crea en el primer
// uso y una sola vez, aunque lo pidan varias goroutines a la vez.
type MongoHandle struct {
	uri      string
	database string

	once   sync.Once
	client *mongo.Client
	err    error
}

// NewMongoHandle crea un handle; todavía no se conecta
func NewMongoHandle(uri, database string) *MongoHandle {
	return &MongoHandle{uri: uri, database: database}
}

func (h *MongoHandle) connect() {
	opts := options.Client().
		ApplyURI(h.uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		h.err = fmt.Errorf("error connecting to MongoDB: %w", err)
		return
	}
	h.client = client
	log.Info().Str("database", h.database).Msg("MongoDB client initialized")
}

// Database devuelve la base configurada y crea el cliente si hace falta
func (h *MongoHandle) Database() (*mongo.Database, error) {
	h.once.Do(h.connect)
	if h.err != nil {
		return nil, h.err
	}
	return h.client.Database(h.database), nil
}

// Collection es un atajo para Database().Collection(name)
func (h *MongoHandle) Collection(name string) (*mongo.Collection, error) {
	db, err := h.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// Ping verifica que el primario responda
func (h *MongoHandle) Ping(ctx context.Context) error {
	db, err := h.Database()
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

// Close desconecta el cliente si llegó a crearse. Espera a una conexión en
// curso y después de Close no se crea ningún cliente.
func (h *MongoHandle) Close(ctx context.Context) error {
	h.once.Do(func() { h.err = errClosed })
	if h.client == nil {
		return nil
	}
	return h.client.Disconnect(ctx)
}
