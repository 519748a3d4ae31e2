// Package databases holds the types shared by every DBClient implementation:
// the document shape, table specs used to bootstrap a schema, find options and
// the sentinel errors callers match with errors.Is.
package databases

import (
	"errors"
)

const (
	// IDFIELD is the primary key column every table and collection carries.
	IDFIELD = "id"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidTable = errors.New("invalid table name")
	ErrInvalidField = errors.New("invalid field name")
	ErrNotConnected = errors.New("database client is not connected")
)

// Document is a single record with its fields addressable by column name.
type Document = map[string]interface{}

// ColumnType is the storage type of a column.
type ColumnType int

const (
	Text ColumnType = iota
	Integer
)

// ColumnSpec describes one column of a table.
type ColumnSpec struct {
	Name          string
	Type          ColumnType
	PrimaryKey    bool
	AutoIncrement bool
	Unique        bool
	NotNull       bool
}

// TableSpec is a backend-neutral description of a table. SQL clients render it
// as CREATE TABLE IF NOT EXISTS, the mongo client turns unique columns into indexes.
type TableSpec struct {
	Columns []ColumnSpec
}

// AutoIncrementColumn returns the name of the auto-increment column, if any.
func (t TableSpec) AutoIncrementColumn() (string, bool) {
	for _, c := range t.Columns {
		if c.AutoIncrement {
			return c.Name, true
		}
	}
	return "", false
}

// FindOptions narrows a FindMany call. SortField must be an allowed field.
type FindOptions struct {
	SortField  string
	Descending bool
	Limit      int64
}
