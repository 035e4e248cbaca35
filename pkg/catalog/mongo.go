package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
)

// MongoStore is a MongoDB-backed registry for the preview server.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database name. Defaults to "swatchtower".
	Database string

	// Collection name. Defaults to "palettes".
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "swatchtower"
	}
	if cfg.Collection == "" {
		cfg.Collection = "palettes"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ensure palette index")
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Put records an issued palette.
func (s *MongoStore) Put(ctx context.Context, doc *palette.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if doc.ID == "" {
		return errors.New(errors.ErrCodeInvalidPalette, "palette has no ID")
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store palette %s", doc.ID)
	}
	return nil
}

// Get retrieves an issued palette by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*palette.Document, error) {
	var doc palette.Document
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodePaletteNotFound, "palette %s not issued", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load palette %s", id)
	}
	return &doc, nil
}

// List returns all issued palettes, ordered by ID.
func (s *MongoStore) List(ctx context.Context) ([]*palette.Document, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list palettes")
	}
	defer cur.Close(ctx)

	var docs []*palette.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode palettes")
	}
	return docs, nil
}

// Delete removes a record.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete palette %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodePaletteNotFound, "palette %s not issued", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
