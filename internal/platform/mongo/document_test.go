package mongo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDocument_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	user := &domain.User{
		ID:             uuid.New(),
		Username:       "alice",
		HashedPassword: "hash",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	got, err := newUserDocument(user).toDomain()
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserDocument_BadID(t *testing.T) {
	_, err := userDocument{ID: "not-a-uuid"}.toDomain()
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestTaskDocument_ToDomain(t *testing.T) {
	id := uuid.New()
	task, err := taskDocument{ID: id.String(), Title: "t", Status: "complete"}.toDomain()
	require.NoError(t, err)
	assert.Equal(t, id, task.ID)
	assert.Equal(t, domain.TaskStatusComplete, task.Status)

	_, err = taskDocument{ID: "42"}.toDomain()
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}
