package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blinktech/internal/migrations/mongo/validators"
)

var (
	ProductsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "name", Value: "text"},
			{Key: "description", Value: "text"},
		}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	OrdersIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "email", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "appointment_date", Value: 1},
				{Key: "service", Value: 1},
				{Key: "email", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	UsersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	AppointmentOptionsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("🚀 Running Blink Tech Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Products": {
			Indexes:   ProductsIndexes,
			Validator: validators.ProductValidator,
		},
		"Orders": {
			Indexes:   OrdersIndexes,
			Validator: validators.OrderValidator,
		},
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"Users": {
			Indexes:   UsersIndexes,
			Validator: validators.UserValidator,
		},
		"AppointmentOptions": {
			Indexes:   AppointmentOptionsIndexes,
			Validator: validators.AppointmentOptionValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	if err := NormalizeProductPrices(ctx, db); err != nil {
		return fmt.Errorf("failed to normalize product prices: %w", err)
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists — updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}

// NormalizeProductPrices converts legacy string prices to doubles. Documents
// already carrying numeric prices are left untouched, so the pass is
// idempotent and safe to run on every migration.
func NormalizeProductPrices(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("Products")

	result, err := coll.UpdateMany(ctx,
		bson.M{"price": bson.M{"$type": "string"}},
		mongo.Pipeline{
			{{Key: "$set", Value: bson.M{
				"price": bson.M{"$toDouble": "$price"},
			}}},
		},
	)
	if err != nil {
		return err
	}

	if result.ModifiedCount > 0 {
		fmt.Printf("💲 Normalized %d legacy product prices\n", result.ModifiedCount)
	}
	return nil
}
