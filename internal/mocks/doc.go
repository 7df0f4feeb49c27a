// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout the application,
// facilitating consistent and DRY testing across the codebase. Instead of defining
// inline mocks in individual test files, these standardized mock implementations
// can be reused.
//
// The store mocks keep their data in memory and count calls, so tests can
// assert both on results and on whether the backing store was consulted.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tasks := mocks.NewMockTaskStore()
//	    tasks.FindAllErr = errors.New("db down")
//
//	    // Use the mock in your test...
//	}
package mocks
