// Package sqldb implements interfaces.DBClient on top of database/sql through sqlx.
// The same client serves SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq); the
// dialects only differ in placeholders, the id column type and duplicate-key errors.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/haguru/filmdb/config"
	"github.com/haguru/filmdb/pkg/databases"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect selects the SQL flavour the client renders.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second

	pgUniqueViolation = "23505"
)

// Client implements the DBClient interface for SQL databases.
type Client struct {
	db              *sqlx.DB
	dialect         Dialect
	bindType        int
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	validTables     map[string]bool
	validFields     map[string]bool
}

// NewSQLiteClient returns a client for a SQLite database file. SQLite allows a
// single writer, so the pool is pinned to one connection.
func NewSQLiteClient(validTables, validFields []string) *Client {
	return &Client{
		dialect:      DialectSQLite,
		bindType:     sqlx.QUESTION,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		validTables:  config.ListToMap(validTables),
		validFields:  config.ListToMap(validFields),
	}
}

// NewPostgresClient returns a client for PostgreSQL with the given pool settings.
// Zero values fall back to the package defaults.
func NewPostgresClient(opts config.PostgresServerOptions, validTables, validFields []string) *Client {
	c := &Client{
		dialect:         DialectPostgres,
		bindType:        sqlx.DOLLAR,
		MaxOpenConns:    opts.MaxOpenConns,
		MaxIdleConns:    opts.MaxIdleConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
		validTables:     config.ListToMap(validTables),
		validFields:     config.ListToMap(validFields),
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = DefaultMaxOpenConns
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	return c
}

// NewWithDB wraps an already opened handle, e.g. one backed by sqlmock.
func NewWithDB(db *sqlx.DB, dialect Dialect, validTables, validFields []string) *Client {
	c := &Client{
		db:          db,
		dialect:     dialect,
		bindType:    sqlx.QUESTION,
		validTables: config.ListToMap(validTables),
		validFields: config.ListToMap(validFields),
	}
	if dialect == DialectPostgres {
		c.bindType = sqlx.DOLLAR
	}
	return c
}

// Connect opens the database and verifies it answers.
func (c *Client) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("sqldb: dsn is empty")
	}

	db, err := sqlx.Open(string(c.dialect), dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", c.dialect, err)
	}

	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(c.ConnMaxLifetime)
	c.db = db

	if err := c.Ping(ctx); err != nil {
		_ = db.Close()
		c.db = nil
		return fmt.Errorf("failed to connect to %s database: %w", c.dialect, err)
	}
	return nil
}

// Disconnect closes the database handle.
func (c *Client) Disconnect(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Ping checks the health of the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.db == nil {
		return databases.ErrNotConnected
	}
	return c.db.PingContext(ctx)
}

// EnsureSchema creates the table described by spec if it does not exist yet.
func (c *Client) EnsureSchema(ctx context.Context, tableName string, spec databases.TableSpec) error {
	if c.db == nil {
		return databases.ErrNotConnected
	}

	stmt, err := c.createTableSQL(tableName, spec)
	if err != nil {
		return err
	}

	if _, err := c.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	return nil
}

// InsertOne inserts document and returns the value of its id column. Columns
// are written in sorted order so the statement text is stable.
func (c *Client) InsertOne(ctx context.Context, tableName string, document databases.Document) (interface{}, error) {
	if c.db == nil {
		return nil, databases.ErrNotConnected
	}
	if len(document) == 0 {
		return nil, fmt.Errorf("sqldb: cannot insert an empty document into %s", tableName)
	}

	table, err := c.table(tableName)
	if err != nil {
		return nil, err
	}

	keys := sortedKeys(document)
	columns := make([]string, 0, len(keys))
	placeholders := make([]string, 0, len(keys))
	values := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		col, err := c.field(key)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
		placeholders = append(placeholders, "?")
		values = append(values, document[key])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		quote(databases.IDFIELD),
	) // #nosec G201 -- identifiers are allow-listed and quoted

	var insertedID interface{}
	if err := c.db.QueryRowxContext(ctx, c.rebind(query), values...).Scan(&insertedID); err != nil {
		return nil, c.mapError(fmt.Errorf("failed to insert into %s: %w", tableName, err))
	}
	return normalize(insertedID), nil
}

// FindOne returns the first row matching filter or databases.ErrNotFound.
func (c *Client) FindOne(ctx context.Context, tableName string, filter databases.Document) (databases.Document, error) {
	if c.db == nil {
		return nil, databases.ErrNotConnected
	}
	if len(filter) == 0 {
		return nil, fmt.Errorf("sqldb: FindOne on %s requires a non-empty filter", tableName)
	}

	table, err := c.table(tableName)
	if err != nil {
		return nil, err
	}
	where, args, err := c.whereClause(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT * FROM %s%s LIMIT 1", table, where) // #nosec G201

	doc := databases.Document{}
	err = c.db.QueryRowxContext(ctx, c.rebind(query), args...).MapScan(doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, databases.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find in %s: %w", tableName, err)
	}
	return normalizeRow(doc), nil
}

// FindMany returns every row matching filter. An empty filter matches all rows.
func (c *Client) FindMany(ctx context.Context, tableName string, filter databases.Document, opts *databases.FindOptions) ([]databases.Document, error) {
	if c.db == nil {
		return nil, databases.ErrNotConnected
	}

	table, err := c.table(tableName)
	if err != nil {
		return nil, err
	}
	where, args, err := c.whereClause(filter)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT * FROM %s%s", table, where)
	if opts != nil {
		if opts.SortField != "" {
			col, err := c.field(opts.SortField)
			if err != nil {
				return nil, err
			}
			direction := "ASC"
			if opts.Descending {
				direction = "DESC"
			}
			fmt.Fprintf(&b, " ORDER BY %s %s", col, direction)
		}
		if opts.Limit > 0 {
			b.WriteString(" LIMIT ?")
			args = append(args, opts.Limit)
		}
	}

	rows, err := c.db.QueryxContext(ctx, c.rebind(b.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", tableName, err)
	}
	defer rows.Close()

	results := make([]databases.Document, 0)
	for rows.Next() {
		doc := databases.Document{}
		if err := rows.MapScan(doc); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", tableName, err)
		}
		results = append(results, normalizeRow(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows from %s: %w", tableName, err)
	}
	return results, nil
}

// UpdateOne sets the columns in update on the rows matching filter and returns
// how many rows matched.
func (c *Client) UpdateOne(ctx context.Context, tableName string, filter databases.Document, update databases.Document) (int64, error) {
	if c.db == nil {
		return 0, databases.ErrNotConnected
	}
	if len(filter) == 0 || len(update) == 0 {
		return 0, fmt.Errorf("sqldb: UpdateOne on %s requires a filter and an update", tableName)
	}

	table, err := c.table(tableName)
	if err != nil {
		return 0, err
	}

	keys := sortedKeys(update)
	setClauses := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys)+len(filter))
	for _, key := range keys {
		col, err := c.field(key)
		if err != nil {
			return 0, err
		}
		setClauses = append(setClauses, col+" = ?")
		args = append(args, update[key])
	}

	where, whereArgs, err := c.whereClause(filter)
	if err != nil {
		return 0, err
	}
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s", table, strings.Join(setClauses, ", "), where) // #nosec G201

	res, err := c.db.ExecContext(ctx, c.rebind(query), args...)
	if err != nil {
		return 0, c.mapError(fmt.Errorf("failed to update %s: %w", tableName, err))
	}
	return res.RowsAffected()
}

// DeleteOne deletes the rows matching filter. Callers filter on the id column,
// so at most one row goes.
func (c *Client) DeleteOne(ctx context.Context, tableName string, filter databases.Document) (int64, error) {
	if c.db == nil {
		return 0, databases.ErrNotConnected
	}
	if len(filter) == 0 {
		return 0, fmt.Errorf("sqldb: DeleteOne on %s requires a non-empty filter", tableName)
	}

	table, err := c.table(tableName)
	if err != nil {
		return 0, err
	}
	where, args, err := c.whereClause(filter)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("DELETE FROM %s%s", table, where) // #nosec G201

	res, err := c.db.ExecContext(ctx, c.rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", tableName, err)
	}
	return res.RowsAffected()
}

func (c *Client) createTableSQL(tableName string, spec databases.TableSpec) (string, error) {
	table, err := c.table(tableName)
	if err != nil {
		return "", err
	}
	if len(spec.Columns) == 0 {
		return "", fmt.Errorf("sqldb: table %s has no columns", tableName)
	}

	defs := make([]string, 0, len(spec.Columns))
	for _, col := range spec.Columns {
		name, err := c.field(col.Name)
		if err != nil {
			return "", err
		}
		defs = append(defs, name+" "+c.columnDefinition(col))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", ")), nil
}

func (c *Client) columnDefinition(col databases.ColumnSpec) string {
	if col.AutoIncrement {
		if c.dialect == DialectPostgres {
			return "BIGSERIAL PRIMARY KEY"
		}
		// AUTOINCREMENT keeps SQLite from reusing the ids of deleted rows.
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	var parts []string
	switch col.Type {
	case databases.Integer:
		if c.dialect == DialectPostgres {
			parts = append(parts, "BIGINT")
		} else {
			parts = append(parts, "INTEGER")
		}
	default:
		parts = append(parts, "TEXT")
	}
	if col.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if col.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if col.Unique && !col.PrimaryKey {
		parts = append(parts, "UNIQUE")
	}
	return strings.Join(parts, " ")
}

func (c *Client) whereClause(filter databases.Document) (string, []interface{}, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	keys := sortedKeys(filter)
	clauses := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		col, err := c.field(key)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, col+" = ?")
		args = append(args, filter[key])
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func (c *Client) table(name string) (string, error) {
	if name == "" || !c.validTables[name] {
		return "", fmt.Errorf("%w: %q", databases.ErrInvalidTable, name)
	}
	return quote(name), nil
}

func (c *Client) field(name string) (string, error) {
	if name == "" || !c.validFields[name] {
		return "", fmt.Errorf("%w: %q", databases.ErrInvalidField, name)
	}
	return quote(name), nil
}

func (c *Client) rebind(query string) string {
	return sqlx.Rebind(c.bindType, query)
}

// mapError marks unique constraint violations with databases.ErrDuplicateKey.
func (c *Client) mapError(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", databases.ErrDuplicateKey, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE")
		}
	}
	return false
}

// quote wraps an identifier in double quotes; "user" is reserved in PostgreSQL.
func quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

func sortedKeys(doc databases.Document) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeRow converts driver []byte values to strings.
func normalizeRow(doc databases.Document) databases.Document {
	for k, v := range doc {
		doc[k] = normalize(v)
	}
	return doc
}

func normalize(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
