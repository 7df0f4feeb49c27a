// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying document store (PostgreSQL or
// MongoDB) from the application's core logic. Implementations live under
// internal/platform.
package store
