package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository/memory"
)

var day = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func TestTasksRoundTrip(t *testing.T) {
	tasks := []domain.Task{
		{ID: 1, Username: "alice", Name: "Read, then summarize", Category: domain.CategoryStudy, Priority: domain.PriorityHigh, Status: domain.StatusCompleted, CreatedDate: day},
		{ID: 2, Username: "alice", Name: `Say "hi"`, Category: domain.CategoryPersonal, Priority: domain.PriorityLow, Status: domain.StatusPending, CreatedDate: day.AddDate(0, 0, -3)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTasks(&buf, tasks))
	assert.True(t, strings.HasPrefix(buf.String(), "id,username,task_name,category,priority,status,date\n"))

	parsed, err := ReadTasks(&buf)
	require.NoError(t, err)
	assert.Equal(t, tasks, parsed)
}

func TestLogsRoundTrip(t *testing.T) {
	logs := []domain.LogEntry{
		{ID: 4, Username: "alice", Hours: 2.5, Notes: "line one\nline two", Mood: 4, Date: day},
		{ID: 5, Username: "alice", Hours: 0, Notes: "", Mood: 1, Date: day.AddDate(0, 0, -1)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLogs(&buf, logs))

	parsed, err := ReadLogs(&buf)
	require.NoError(t, err)
	assert.Equal(t, logs, parsed)
}

func TestEmptyExportHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTasks(&buf, nil))
	assert.Equal(t, "id,username,task_name,category,priority,status,date\n", buf.String())

	parsed, err := ReadTasks(&buf)
	require.NoError(t, err)
	assert.Empty(t, parsed)
}

func TestReadRejectsForeignHeader(t *testing.T) {
	_, err := ReadTasks(strings.NewReader("a,b,c,d,e,f,g\n"))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = ReadLogs(strings.NewReader(""))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestToDirOnlyExportsOwnRows(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := store.Tasks().Create(ctx, &domain.Task{Username: "alice", Name: "mine", Category: domain.CategoryStudy, Priority: domain.PriorityHigh, Status: domain.StatusPending, CreatedDate: day})
	require.NoError(t, err)
	_, err = store.Tasks().Create(ctx, &domain.Task{Username: "bob", Name: "theirs", Category: domain.CategoryStudy, Priority: domain.PriorityHigh, Status: domain.StatusPending, CreatedDate: day})
	require.NoError(t, err)
	_, err = store.Logs().Create(ctx, &domain.LogEntry{Username: "bob", Hours: 1, Mood: 3, Date: day})
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := New(store.Tasks(), store.Logs(), nil).ToDir(ctx, "alice", dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, TasksFile), filepath.Join(dir, LogsFile)}, paths)

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()
	tasks, err := ReadTasks(f)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Name)

	raw, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "id,username,hours,notes,mood,date\n", string(raw))
}
