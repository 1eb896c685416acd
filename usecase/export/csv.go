package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fastygo/progress/domain"
)

var (
	TaskHeader = []string{"id", "username", "task_name", "category", "priority", "status", "date"}
	LogHeader  = []string{"id", "username", "hours", "notes", "mood", "date"}
)

// WriteTasks writes a header row followed by one row per task.
func WriteTasks(w io.Writer, tasks []domain.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TaskHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Username,
			t.Name,
			string(t.Category),
			string(t.Priority),
			string(t.Status),
			domain.FormatDate(t.CreatedDate),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLogs writes a header row followed by one row per log entry.
func WriteLogs(w io.Writer, logs []domain.LogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LogHeader); err != nil {
		return err
	}
	for _, l := range logs {
		if err := cw.Write([]string{
			strconv.FormatInt(l.ID, 10),
			l.Username,
			strconv.FormatFloat(l.Hours, 'f', -1, 64),
			l.Notes,
			strconv.Itoa(l.Mood),
			domain.FormatDate(l.Date),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTasks parses the output of WriteTasks.
func ReadTasks(r io.Reader) ([]domain.Task, error) {
	rows, err := readRows(r, TaskHeader)
	if err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, rowError(i, "id", err)
		}
		date, err := domain.ParseDate(row[6])
		if err != nil {
			return nil, rowError(i, "date", err)
		}
		tasks = append(tasks, domain.Task{
			ID:          id,
			Username:    row[1],
			Name:        row[2],
			Category:    domain.Category(row[3]),
			Priority:    domain.Priority(row[4]),
			Status:      domain.Status(row[5]),
			CreatedDate: date,
		})
	}
	return tasks, nil
}

// ReadLogs parses the output of WriteLogs.
func ReadLogs(r io.Reader) ([]domain.LogEntry, error) {
	rows, err := readRows(r, LogHeader)
	if err != nil {
		return nil, err
	}
	logs := make([]domain.LogEntry, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, rowError(i, "id", err)
		}
		hours, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, rowError(i, "hours", err)
		}
		mood, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, rowError(i, "mood", err)
		}
		date, err := domain.ParseDate(row[5])
		if err != nil {
			return nil, rowError(i, "date", err)
		}
		logs = append(logs, domain.LogEntry{
			ID:       id,
			Username: row[1],
			Hours:    hours,
			Notes:    row[3],
			Mood:     mood,
			Date:     date,
		})
	}
	return logs, nil
}

func readRows(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	got, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.Invalid("missing header")
		}
		return nil, err
	}
	for i := range header {
		if got[i] != header[i] {
			return nil, domain.Invalid("unexpected column %q, want %q", got[i], header[i])
		}
	}
	return cr.ReadAll()
}

func rowError(i int, field string, err error) error {
	return domain.WrapError(domain.ErrCodeInvalid, fmt.Sprintf("row %d: bad %s", i+1, field), err)
}
