package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Aleph-Alpha/gpucatalog/v1/logger"
)

// CollectionName is the card collection.
const CollectionName = "graphics_cards"

var indexedFields = []string{"manufacturer", "memory_gb", "price_usd", "name"}

func indexModels() []mongo.IndexModel {
	models := make([]mongo.IndexModel, 0, len(indexedFields))
	for _, field := range indexedFields {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetCollation(CaseInsensitive),
		})
	}
	return models
}

// EnsureIndexes creates the secondary indexes. A failure is logged and
// returned; callers treat it as a warning since queries work without them.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log logger.Logger) error {
	names, err := db.Collection(CollectionName).Indexes().CreateMany(ctx, indexModels())
	if err != nil {
		log.Warn("Failed to create MongoDB indexes", err, map[string]interface{}{
			"collection": CollectionName,
		})
		return err
	}

	log.Info("MongoDB indexes ready", nil, map[string]interface{}{
		"collection": CollectionName,
		"indexes":    names,
	})
	return nil
}
