package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

type Service interface {
	Collection(ctx context.Context, name string) (*mongo.Collection, error)
	Health() map[string]string
	Disconnect(ctx context.Context) error
}

// service holds a lazily established client. Connection failures surface as
// errors on the affected request; the process stays alive and the next
// request retries. The driver's own pool handles reconnects once a client
// exists.
type service struct {
	uri    string
	dbName string

	mu     sync.Mutex
	client *mongo.Client
}

func New(uri, dbName string) Service {
	return &service{uri: uri, dbName: dbName}
}

func (s *service) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	client, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(s.dbName).Collection(name), nil
}

func (s *service) connect(ctx context.Context) (*mongo.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	if s.uri == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable not set")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(s.uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB")
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		log.Error().Err(err).Msg("MongoDB ping failed")
		return nil, fmt.Errorf("failed to reach MongoDB: %w", err)
	}

	log.Info().Str("db", s.dbName).Msg("Database connected successfully")
	s.client = client
	return s.client, nil
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	client, err := s.connect(ctx)
	if err == nil {
		err = client.Ping(ctx, nil)
	}
	if err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		return map[string]string{
			"message": "db down",
			"error":   err.Error(),
		}
	}

	return map[string]string{
		"message": "It's healthy",
	}
}

func (s *service) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	if err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	log.Info().Msg("MongoDB disconnected")
	return nil
}
