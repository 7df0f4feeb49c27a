// Package testdb provides helpers for integration tests that talk to real
// database servers.
//
// Tests locate their servers through environment variables and skip cleanly
// when none is configured:
//
//	func TestMain(m *testing.M) {
//		if testdb.ShouldSkipDatabaseTest() {
//			os.Exit(0)
//		}
//		...
//	}
//
// WithTx runs a test body inside a transaction that is always rolled back, so
// postgres tests can share one database without cleaning up after themselves.
package testdb
