package messagelog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/contracts"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/models"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
)

type HL7MessageMongoRepository struct {
	Collection *mongo.Collection
}

func NewHL7MessageMongoRepository(db *mongo.Client, dbName string) contracts.MessageJournal {
	return &HL7MessageMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionHL7Messages),
	}
}

func (repo *HL7MessageMongoRepository) Record(ctx context.Context, entry *models.HL7Message) error {
	result, err := repo.Collection.InsertOne(ctx, entry)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	if objectID, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = objectID.Hex()
	}
	return nil
}

// FindByControlID returns every journaled delivery of a message, newest first.
func (repo *HL7MessageMongoRepository) FindByControlID(ctx context.Context, controlID string) ([]models.HL7Message, error) {
	var messages []models.HL7Message
	findOptions := options.Find().SetSort(bson.D{{Key: "received_at", Value: -1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{"control_id": controlID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return messages, nil
}

type noopJournal struct{}

func NewNoopJournal() contracts.MessageJournal {
	return noopJournal{}
}

func (noopJournal) Record(ctx context.Context, entry *models.HL7Message) error { return nil }

func (noopJournal) FindByControlID(ctx context.Context, controlID string) ([]models.HL7Message, error) {
	return nil, nil
}
