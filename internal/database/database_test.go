package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

var testURI string

func mustStartMongoContainer() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	dbContainer, err := mongodb.Run(context.Background(), "mongo:latest")
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "27017/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	testURI = fmt.Sprintf("mongodb://%s:%s", dbHost, dbPort.Port())

	return dbContainer.Terminate, err
}

func TestMain(m *testing.M) {
	teardown, err := mustStartMongoContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not start mongodb container")
	}

	m.Run()

	if teardown != nil && teardown(context.Background()) != nil {
		log.Fatal().Err(err).Msg("Could not teardown mongodb container")
	}
}

func TestNew(t *testing.T) {
	srv := New(testURI, "travelling")
	if srv == nil {
		t.Fatal("New() returned nil")
	}
}

func TestHealth(t *testing.T) {
	srv := New(testURI, "travelling")

	stats := srv.Health()

	if stats["message"] != "It's healthy" {
		t.Fatalf("expected message to be 'It's healthy', got %s", stats["message"])
	}
}

func TestCollection(t *testing.T) {
	srv := New(testURI, "travelling")

	coll, err := srv.Collection(context.Background(), "trending_items")
	if err != nil {
		t.Fatalf("expected collection, got error: %v", err)
	}
	if coll == nil {
		t.Fatal("Collection() returned nil")
	}
	if coll.Name() != "trending_items" {
		t.Fatalf("expected collection name 'trending_items', got %s", coll.Name())
	}

	if err := srv.Disconnect(context.Background()); err != nil {
		t.Fatalf("expected clean disconnect, got error: %v", err)
	}
}

func TestMissingURIFailsPerRequest(t *testing.T) {
	srv := New("", "travelling")

	if _, err := srv.Collection(context.Background(), "trending_items"); err == nil {
		t.Fatal("expected error for empty URI, got nil")
	}

	stats := srv.Health()
	if stats["message"] != "db down" {
		t.Fatalf("expected message to be 'db down', got %s", stats["message"])
	}
}
