package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/haguru/filmdb/config"
	"github.com/haguru/filmdb/pkg/databases"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	MAXPOOLSIZE = 20
	// COUNTERS is the collection holding one sequence document per auto-increment collection.
	COUNTERS = "counters"
)

// MongoDBClient implements the interfaces.DBClient interface for MongoDB operations.
// Documents keep their own "id" field; the driver's _id is never exposed.
type MongoDBClient struct {
	ServerOpts       *options.ServerAPIOptions
	client           *mongo.Client
	db               *mongo.Database
	timeout          time.Duration
	validCollections map[string]bool // A map to validate collection names
	validFields      map[string]bool // A map to validate field names

	mu        sync.RWMutex
	sequences map[string]string // collection -> auto-increment field
}

// NewMongoDB returns a MongoDB client restricted to the given collections and fields.
func NewMongoDB(dbConfig config.MongoDBConfig, validCollections, validFields []string) *MongoDBClient {
	return &MongoDBClient{
		timeout:          dbConfig.Timeout,
		ServerOpts:       config.BuildServerAPIOptions(dbConfig.Options),
		validCollections: config.ListToMap(validCollections),
		validFields:      config.ListToMap(validFields),
		sequences:        make(map[string]string),
	}
}

// Connect establishes a connection to the MongoDB database using the provided DSN (Data Source Name).
// The DSN should be in the format "mongodb://<host>:<port>/<database>"; the path names the database.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return fmt.Errorf("MongoDBClient: Invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}

	databaseName, err := getDBNameFromMongoDSN(dsn)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to extract database name from datasource name(dsn): %w", err)
	}

	// Set a timeout for the connection
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	clientOptions := options.Client().ApplyURI(dsn)
	if m.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	m.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err = m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to connect to MongoDB server: %w", err)
	}

	m.db = m.client.Database(databaseName)
	return nil
}

// Disconnect closes the connection to the MongoDB database.
func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}

// Ping verifies the MongoDB connection health using a ping command.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return databases.ErrNotConnected
	}
	return m.client.Ping(ctx, nil)
}

// EnsureSchema creates a unique index for every unique or primary key column
// and remembers which field is filled from the counters collection.
// Collections are created implicitly on first write.
func (m *MongoDBClient) EnsureSchema(ctx context.Context, collectionName string, spec databases.TableSpec) error {
	if m.db == nil {
		return databases.ErrNotConnected
	}
	if err := m.checkCollection(collectionName); err != nil {
		return err
	}

	var models []mongo.IndexModel
	for _, col := range spec.Columns {
		if err := m.checkField(col.Name); err != nil {
			return err
		}
		if col.Unique || col.PrimaryKey {
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: col.Name, Value: 1}},
				Options: options.Index().SetUnique(true),
			})
		}
	}

	if len(models) > 0 {
		if _, err := m.db.Collection(collectionName).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("MongoDBClient: Failed to create indexes on %s: %w", collectionName, err)
		}
	}

	if field, ok := spec.AutoIncrementColumn(); ok {
		m.mu.Lock()
		m.sequences[collectionName] = field
		m.mu.Unlock()
	}
	return nil
}

// InsertOne inserts a document and returns its id. A missing auto-increment id
// is taken from the counters collection, so ids are never handed out twice.
func (m *MongoDBClient) InsertOne(ctx context.Context, collectionName string, document databases.Document) (interface{}, error) {
	if m.db == nil {
		return nil, databases.ErrNotConnected
	}
	if err := m.checkCollection(collectionName); err != nil {
		return nil, err
	}

	sanitized, err := m.sanitizeDocument(document)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	seqField, hasSequence := m.sequences[collectionName]
	m.mu.RUnlock()
	if hasSequence {
		if _, set := sanitized[seqField]; !set {
			next, err := m.nextSequence(ctx, collectionName)
			if err != nil {
				return nil, err
			}
			sanitized[seqField] = next
		}
	}

	if _, err := m.db.Collection(collectionName).InsertOne(ctx, sanitized); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %v", databases.ErrDuplicateKey, err)
		}
		return nil, fmt.Errorf("MongoDBClient: Failed to insert one into %s: %w", collectionName, err)
	}

	return sanitized[databases.IDFIELD], nil
}

// FindOne retrieves a single document from the specified collection using a filter.
func (m *MongoDBClient) FindOne(ctx context.Context, collectionName string, filter databases.Document) (databases.Document, error) {
	if m.db == nil {
		return nil, databases.ErrNotConnected
	}
	if err := m.checkCollection(collectionName); err != nil {
		return nil, err
	}
	if len(filter) == 0 {
		return nil, fmt.Errorf("MongoDBClient: FindOne on %s requires a non-empty filter", collectionName)
	}

	sanitizedFilter, err := m.sanitizeDocument(filter)
	if err != nil {
		return nil, err
	}

	opts := options.FindOne().SetProjection(bson.M{"_id": 0})
	var result bson.M
	err = m.db.Collection(collectionName).FindOne(ctx, sanitizedFilter, opts).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, databases.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: Failed to find one in %s: %w", collectionName, err)
	}

	return databases.Document(result), nil
}

// FindMany retrieves multiple documents from the specified collection.
func (m *MongoDBClient) FindMany(ctx context.Context, collectionName string, filter databases.Document, opts *databases.FindOptions) ([]databases.Document, error) {
	if m.db == nil {
		return nil, databases.ErrNotConnected
	}
	if err := m.checkCollection(collectionName); err != nil {
		return nil, err
	}

	sanitizedFilter, err := m.sanitizeDocument(filter)
	if err != nil {
		return nil, err
	}

	findOpts, err := m.buildFindOptions(opts)
	if err != nil {
		return nil, err
	}

	cursor, err := m.db.Collection(collectionName).Find(ctx, sanitizedFilter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: Finding many in %s failed: %w", collectionName, err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	results := make([]databases.Document, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("MongoDBClient: Failed to decode cursor: %w", err)
		}
		results = append(results, databases.Document(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("MongoDBClient: Cursor error on %s: %w", collectionName, err)
	}

	return results, nil
}

// UpdateOne sets the fields in update on the first document matching filter.
// Returns the count of matched documents.
func (m *MongoDBClient) UpdateOne(ctx context.Context, collectionName string, filter databases.Document, update databases.Document) (int64, error) {
	if m.db == nil {
		return 0, databases.ErrNotConnected
	}
	if err := m.checkCollection(collectionName); err != nil {
		return 0, err
	}
	if len(filter) == 0 || len(update) == 0 {
		return 0, fmt.Errorf("MongoDBClient: UpdateOne on %s requires a filter and an update", collectionName)
	}

	sanitizedFilter, err := m.sanitizeDocument(filter)
	if err != nil {
		return 0, err
	}
	sanitizedUpdate, err := m.sanitizeDocument(update)
	if err != nil {
		return 0, err
	}

	res, err := m.db.Collection(collectionName).UpdateOne(ctx, sanitizedFilter, bson.M{"$set": sanitizedUpdate})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, fmt.Errorf("%w: %v", databases.ErrDuplicateKey, err)
		}
		return 0, fmt.Errorf("MongoDBClient: Failed updating one in %s: %w", collectionName, err)
	}

	return res.MatchedCount, nil
}

// DeleteOne removes a single document from the specified collection using a filter.
// Returns the count of deleted documents.
func (m *MongoDBClient) DeleteOne(ctx context.Context, collectionName string, filter databases.Document) (int64, error) {
	if m.db == nil {
		return 0, databases.ErrNotConnected
	}
	if err := m.checkCollection(collectionName); err != nil {
		return 0, err
	}
	if len(filter) == 0 {
		return 0, fmt.Errorf("MongoDBClient: DeleteOne on %s requires a non-empty filter", collectionName)
	}

	sanitizedFilter, err := m.sanitizeDocument(filter)
	if err != nil {
		return 0, err
	}

	res, err := m.db.Collection(collectionName).DeleteOne(ctx, sanitizedFilter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed deleting one from %s: %w", collectionName, err)
	}

	return res.DeletedCount, nil
}

func (m *MongoDBClient) nextSequence(ctx context.Context, collectionName string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := m.db.Collection(COUNTERS).FindOneAndUpdate(ctx,
		bson.M{"_id": collectionName},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed to advance counter for %s: %w", collectionName, err)
	}
	return counter.Seq, nil
}

func (m *MongoDBClient) buildFindOptions(opts *databases.FindOptions) (*options.FindOptions, error) {
	findOpts := options.Find().SetProjection(bson.M{"_id": 0})
	if opts == nil {
		return findOpts, nil
	}

	if opts.SortField != "" {
		if err := m.checkField(opts.SortField); err != nil {
			return nil, err
		}
		direction := 1
		if opts.Descending {
			direction = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.SortField, Value: direction}})
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	return findOpts, nil
}

func (m *MongoDBClient) checkCollection(name string) error {
	if name == "" || !m.validCollections[name] {
		return fmt.Errorf("%w: %q", databases.ErrInvalidTable, name)
	}
	return nil
}

func (m *MongoDBClient) checkField(name string) error {
	if name == "" || !m.validFields[name] || strings.ContainsAny(name, "$.") {
		return fmt.Errorf("%w: %q", databases.ErrInvalidField, name)
	}
	return nil
}

// sanitizeDocument copies document into a bson.M, rejecting unknown field names
// and operator values such as {"$ne": ""} that would turn an equality match
// into a query.
func (m *MongoDBClient) sanitizeDocument(document databases.Document) (bson.M, error) {
	sanitized := bson.M{}
	for key, value := range document {
		if err := m.checkField(key); err != nil {
			return nil, err
		}

		switch value.(type) {
		case map[string]interface{}, bson.M, bson.D:
			return nil, fmt.Errorf("%w: %q holds a nested document", databases.ErrInvalidField, key)
		}

		sanitized[key] = value
	}
	return sanitized, nil
}

// getDBNameFromMongoDSN extracts the database name from a MongoDB DSN.
func getDBNameFromMongoDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("no database name found in MongoDB DSN path: %s", dsn)
	}

	// If the path contains additional segments (e.g., /db/collection), use only the first as the database name.
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}

	return dbName, nil
}
