package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("defaults to pending and trims the title", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask("  buy milk  ")
		require.NoError(t, err)
		assert.Equal(t, "buy milk", task.Title)
		assert.Equal(t, TaskStatusPending, task.Status)
	})

	for _, title := range []string{"", "   ", "\t\n"} {
		title := title
		t.Run("rejects blank title "+`"`+title+`"`, func(t *testing.T) {
			t.Parallel()
			task, err := NewTask(title)
			assert.Nil(t, task)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "title", vErr.Field)
		})
	}
}

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    TaskStatus
		wantErr bool
	}{
		{raw: "pending", want: TaskStatusPending},
		{raw: "complete", want: TaskStatusComplete},
		{raw: "completed", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "PENDING", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTaskStatus(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTaskStatus)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskValidate_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	task := &Task{Title: "write report", Status: "archived"}
	assert.ErrorIs(t, task.Validate(), ErrInvalidTaskStatus)
}
