package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blinktech/pkg/config"
	"blinktech/pkg/model"
)

const (
	OptionsCollectionName = "AppointmentOptions"
)

type OptionRepository interface {
	FindAll(ctx context.Context) ([]*model.AppointmentOption, error)
}

type mongoOptionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoOptionRepository(cfg *config.Config) OptionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoOptionRepository{
		cfg:        cfg,
		collection: db.Collection(OptionsCollectionName),
	}
}

func (r *mongoOptionRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoOptionRepository) FindAll(ctx context.Context) ([]*model.AppointmentOption, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment options: %w", err)
	}
	defer cursor.Close(ctx)

	var templates []*model.AppointmentOption
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode appointment options: %w", err)
	}

	return templates, nil
}
