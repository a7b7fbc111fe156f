package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"veriface.io/infrastructure/logger"
)

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	c, cancel := repo.createCtx(ctx)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(c, parsed)
	if err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindOneByField(filter map[string]interface{}, opts ...FindOptions) (*T, error) {
	c, cancel := repo.createCtx(context.Background())
	defer cancel()

	var result T
	err := repo.Model.FindOne(c, normaliseFilter(filter)).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByField", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) CountDocs(filter map[string]interface{}) (int64, error) {
	c, cancel := repo.createCtx(context.Background())
	defer cancel()

	count, err := repo.Model.CountDocuments(c, normaliseFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return count, nil
}

func (repo *MongoRepository[T]) UpdatePartialByFilter(filter map[string]interface{}, payload map[string]interface{}) (bool, error) {
	c, cancel := repo.createCtx(context.Background())
	defer cancel()

	result, err := repo.Model.UpdateOne(c, normaliseFilter(filter), bson.M{"$set": payload})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (repo *MongoRepository[T]) DeleteByField(filter map[string]interface{}) (int64, error) {
	c, cancel := repo.createCtx(context.Background())
	defer cancel()

	result, err := repo.Model.DeleteOne(c, normaliseFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running DeleteByField", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return result.DeletedCount, nil
}

func (repo *MongoRepository[T]) createCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, 15*time.Second)
}

func normaliseFilter(filter map[string]interface{}) bson.M {
	parsed := bson.M{}
	for key, value := range filter {
		parsed[key] = value
	}
	return parsed
}
