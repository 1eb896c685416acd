package activity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository/memory"
)

func TestCreateLog(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("UTC+10", 10*3600)
	// 20:00 UTC on the 18th is already the 19th in UTC+10.
	clock := domain.Clock{Location: loc, Now: func() time.Time { return time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC) }}
	uc := New(memory.NewStore().Logs(), clock, nil)

	entry, err := uc.CreateLog(ctx, "alice", Input{Hours: 1.5, Notes: "deep work", Mood: 4})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), entry.Date)

	backdated, err := uc.CreateLog(ctx, "alice", Input{Hours: 0, Mood: 1, Date: "2026-10-01"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01", domain.FormatDate(backdated.Date))

	logs, err := uc.ListLogs(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, backdated.ID, logs[0].ID, "ordered by date")
}

func TestCreateLogValidation(t *testing.T) {
	ctx := context.Background()
	uc := New(memory.NewStore().Logs(), domain.NewClock(time.UTC), nil)

	for name, in := range map[string]Input{
		"negative hours": {Hours: -1, Mood: 3},
		"mood too low":   {Hours: 1, Mood: 0},
		"mood too high":  {Hours: 1, Mood: 6},
		"bad date":       {Hours: 1, Mood: 3, Date: "19/10/2026"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.CreateLog(ctx, "alice", in)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid), "got %v", err)
		})
	}

	_, err := uc.ListLogs(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
