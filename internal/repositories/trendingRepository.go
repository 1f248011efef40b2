package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"easybooking/internal/database"
	"easybooking/internal/models"
	"easybooking/internal/utils"
)

const trendingCollection = "trending_items"

type TrendingRepository interface {
	Create(ctx context.Context, item *models.TrendingItem) (*models.TrendingItem, error)
	FindAll(ctx context.Context) ([]models.TrendingItem, error)
	DeleteByName(ctx context.Context, name string) (*models.TrendingItem, error)
}

type trendingRepository struct {
	db        database.Service
	indexOnce sync.Once
}

func NewTrendingRepository(db database.Service) TrendingRepository {
	return &trendingRepository{db: db}
}

func (r *trendingRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, trendingCollection)
}

// ensureIndexes creates the unique name index on first use. A failure is
// logged and retried implicitly via duplicate-key errors on insert.
func (r *trendingRepository) ensureIndexes(ctx context.Context, collection *mongo.Collection) {
	r.indexOnce.Do(func() {
		_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to create unique name index for trending items")
		}
	})
}

func (r *trendingRepository) Create(ctx context.Context, item *models.TrendingItem) (*models.TrendingItem, error) {
	queryType := "create"
	repository := "trending"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	collection, err := r.collection(ctx)
	if err != nil {
		status = "error"
		return nil, err
	}
	r.ensureIndexes(ctx, collection)

	_, err = collection.InsertOne(ctx, item)
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Str("name", item.Name).Msg("Failed to insert trending item into database")
		if mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create trending item: %w", err)
	}
	return item, nil
}

func (r *trendingRepository) FindAll(ctx context.Context) ([]models.TrendingItem, error) {
	queryType := "findAll"
	repository := "trending"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	collection, err := r.collection(ctx)
	if err != nil {
		status = "error"
		return nil, err
	}

	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Msg("Failed to find trending items")
		return nil, fmt.Errorf("failed to find trending items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.TrendingItem{}
	if err = cursor.All(ctx, &items); err != nil {
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Msg("Failed to decode trending items")
		return nil, fmt.Errorf("failed to decode trending items: %w", err)
	}
	return items, nil
}

func (r *trendingRepository) DeleteByName(ctx context.Context, name string) (*models.TrendingItem, error) {
	queryType := "deleteByName"
	repository := "trending"
	status := "success"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.DBQueryDurationSeconds.WithLabelValues(queryType, repository, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	collection, err := r.collection(ctx)
	if err != nil {
		status = "error"
		return nil, err
	}

	var deleted models.TrendingItem
	err = collection.FindOneAndDelete(ctx, bson.M{"name": name}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		status = "error"
		utils.DBQueryErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Str("name", name).Msg("Failed to delete trending item")
		return nil, fmt.Errorf("failed to delete trending item: %w", err)
	}
	return &deleted, nil
}
