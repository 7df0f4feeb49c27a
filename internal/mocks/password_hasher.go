package mocks

import (
	"errors"
	"sync"
)

// ErrPasswordMismatch is returned by MockHasher.Compare on a mismatch.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockHasher implements auth.Hasher with a reversible, non-cryptographic
// scheme so tests need not pay for bcrypt.
type MockHasher struct {
	mu sync.Mutex

	// HashFn allows for custom hashing logic in tests
	HashFn func(password string) (string, error)

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Hash implements auth.PasswordHasher
func (m *MockHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordVerifier
func (m *MockHasher) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.CompareCallCount++
	m.mu.Unlock()

	if hashedPassword != "hashed:"+password {
		return ErrPasswordMismatch
	}
	return nil
}

// Compares returns the number of Compare calls so far.
func (m *MockHasher) Compares() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CompareCallCount
}
