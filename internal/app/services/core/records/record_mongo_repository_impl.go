package records

import (
	"context"
	"sync"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dedup"
	"theracare-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const mongoEntriesField = "entries"

type recordMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

var (
	recordMongoRepositoryInstance contracts.RecordRepository
	onceRecordMongoRepository     sync.Once
)

// NewRecordMongoRepository stores one document per user and category with the
// entries kept as a BSON array.
func NewRecordMongoRepository(client *mongo.Client, dbName, collectionName string, logger *zap.Logger) contracts.RecordRepository {
	onceRecordMongoRepository.Do(func() {
		recordMongoRepositoryInstance = &recordMongoRepository{
			Collection: client.Database(dbName).Collection(collectionName),
			Log:        logger,
		}
	})
	return recordMongoRepositoryInstance
}

func (r *recordMongoRepository) Get(ctx context.Context, userID string, category dedup.Category) (*models.RecordCollection, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("recordMongoRepository.Get called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingCategoryKey, string(category)),
	)

	var document bson.Raw
	err := r.Collection.FindOne(ctx, bson.M{"userId": userID, "category": string(category)}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			r.Log.Warn("recordMongoRepository.Get no document found",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return nil, nil
		}
		r.Log.Error("recordMongoRepository.Get error finding document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	var collection models.RecordCollection
	if err := bson.Unmarshal(document, &collection); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	entries, err := entriesFromBSON(document.Lookup(mongoEntriesField))
	if err != nil {
		r.Log.Error("recordMongoRepository.Get error converting entries",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	collection.Entries = entries

	r.Log.Info("recordMongoRepository.Get succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntriesCountKey, len(collection.Entries)),
	)
	return &collection, nil
}

func (r *recordMongoRepository) Put(ctx context.Context, collection *models.RecordCollection) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("recordMongoRepository.Put called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, collection.UserID),
		zap.String(constvars.LoggingCategoryKey, collection.Category),
	)

	entries, err := entriesToBSON(collection.Entries)
	if err != nil {
		r.Log.Error("recordMongoRepository.Put error converting entries",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrMongoDBUpsertDocument(err)
	}

	now := time.Now()
	set := bson.M{
		mongoEntriesField: entries,
		"updatedAt":       now,
	}
	if collection.GorillaID != nil {
		set["gorillaId"] = *collection.GorillaID
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": now},
	}
	filter := bson.M{"userId": collection.UserID, "category": collection.Category}

	_, err = r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		r.Log.Error("recordMongoRepository.Put error upserting document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrMongoDBUpsertDocument(err)
	}

	r.Log.Info("recordMongoRepository.Put succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntriesCountKey, len(collection.Entries)),
	)
	return nil
}

// entriesToBSON converts the JSON entries into a BSON array. Entries go through
// a wrapping document since extended JSON only decodes documents.
func entriesToBSON(entries []json.RawMessage) (bson.A, error) {
	if entries == nil {
		entries = []json.RawMessage{}
	}
	wrapped, err := json.Marshal(map[string][]json.RawMessage{mongoEntriesField: entries})
	if err != nil {
		return nil, err
	}

	var document bson.D
	if err := bson.UnmarshalExtJSON(wrapped, false, &document); err != nil {
		return nil, err
	}
	array, _ := document[0].Value.(bson.A)
	return array, nil
}

func entriesFromBSON(value bson.RawValue) ([]json.RawMessage, error) {
	if value.Type == 0 {
		return nil, nil
	}
	wrapped, err := bson.MarshalExtJSON(bson.D{{Key: mongoEntriesField, Value: value}}, false, false)
	if err != nil {
		return nil, err
	}
	return dedup.Entries([]byte(gjson.GetBytes(wrapped, mongoEntriesField).Raw)), nil
}
