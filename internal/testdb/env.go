package testdb

import (
	"os"

	"github.com/phrazzld/taskr-api/internal/redact"
)

// Environment variables consulted for test servers, in priority order.
const (
	EnvTestDatabaseURL = "TASKR_TEST_DB_URL"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvMongoURL        = "MONGO_URL"
)

// GetTestDatabaseURL returns the postgres URL for integration tests, or ""
// when none is configured.
func GetTestDatabaseURL() string {
	return firstSet(EnvTestDatabaseURL, EnvDatabaseURL)
}

// GetTestMongoURL returns the mongo URL for integration tests, or "".
func GetTestMongoURL() string {
	return firstSet(EnvMongoURL)
}

// ShouldSkipDatabaseTest reports whether no postgres server is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// ShouldSkipMongoTest reports whether no mongo server is configured.
func ShouldSkipMongoTest() bool {
	return GetTestMongoURL() == ""
}

// MaskURL hides credentials in a connection URL so it can be printed.
func MaskURL(url string) string {
	return redact.String(url)
}

func firstSet(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
