// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles connection setup through the pgx stdlib driver, schema migrations
// with goose, query execution, and mapping between domain entities and rows.
package postgres
