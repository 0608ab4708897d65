package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mhersche/isoline/pkg/errors"
)

// collectionName holds contour sets within the configured database.
const collectionName = "contour_sets"

// MongoStore persists sets in a MongoDB collection, for server
// deployments where sets outlive the process.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the MongoDB instance at uri and verifies the
// connection with a ping. Sets live in the "contour_sets" collection of
// the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping %s", uri)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
	}, nil
}

// Put stores a set, replacing any set with the same ID.
func (m *MongoStore) Put(ctx context.Context, s Set) error {
	if s.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "set ID cannot be empty")
	}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": s.ID}, s, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "store set %s", s.ID)
	}
	return nil
}

// Get retrieves a set by ID.
func (m *MongoStore) Get(ctx context.Context, id string) (Set, error) {
	var s Set
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return Set{}, errors.New(errors.ErrCodeSetNotFound, "no contour set with ID %s", id)
	}
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeStore, err, "load set %s", id)
	}
	return s, nil
}

// List returns summaries of all sets, newest first.
func (m *MongoStore) List(ctx context.Context) ([]Summary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list sets")
	}
	var sets []Set
	if err := cursor.All(ctx, &sets); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode sets")
	}

	summaries := make([]Summary, len(sets))
	for i, s := range sets {
		summaries[i] = Summarize(s)
	}
	return summaries, nil
}

// Delete removes a set by ID.
func (m *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete set %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeSetNotFound, "no contour set with ID %s", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
