// Package mongo provides MongoDB implementations of the store interfaces.
//
// Documents use the string form of a UUID as their _id so identifiers are
// interchangeable with the PostgreSQL backend. EnsureIndexes must run once
// at startup to create the unique username index.
package mongo
