package interfaces

import (
	"context"

	"github.com/haguru/filmdb/pkg/databases"
)

// DBClient defines the interface for a generic database client.
// It abstracts the record operations the repositories need across SQL and document stores.
// Table and field names are checked against the client's allow-lists; values are always bound.
type DBClient interface {
	// Connect establishes a connection to the database described by dsn.
	Connect(ctx context.Context, dsn string) error

	// Disconnect releases the connection. It is safe to call on a client that never connected.
	Disconnect(ctx context.Context) error

	// Ping checks the health of the database connection.
	Ping(ctx context.Context) error

	// EnsureSchema creates the table (or indexes) described by spec if missing.
	EnsureSchema(ctx context.Context, tableName string, spec databases.TableSpec) error

	// InsertOne inserts document and returns its id. When the table has an
	// auto-increment id and the document carries none, the store assigns it.
	InsertOne(ctx context.Context, tableName string, document databases.Document) (interface{}, error)

	// FindOne returns the first document matching filter or databases.ErrNotFound.
	FindOne(ctx context.Context, tableName string, filter databases.Document) (databases.Document, error)

	// FindMany returns every document matching filter, sorted and limited by opts when given.
	FindMany(ctx context.Context, tableName string, filter databases.Document, opts *databases.FindOptions) ([]databases.Document, error)

	// UpdateOne sets the fields in update on the document matching filter.
	// Returns the count of matched documents.
	UpdateOne(ctx context.Context, tableName string, filter databases.Document, update databases.Document) (int64, error)

	// DeleteOne deletes the document matching filter. Returns the count of deleted documents.
	DeleteOne(ctx context.Context, tableName string, filter databases.Document) (int64, error)
}
