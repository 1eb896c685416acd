// Package navigation holds the per-interaction session state machine and
// routes screen selections to the use cases behind them.
package navigation

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/usecase/activity"
	"github.com/fastygo/progress/usecase/auth"
	"github.com/fastygo/progress/usecase/dashboard"
	"github.com/fastygo/progress/usecase/export"
	"github.com/fastygo/progress/usecase/habit"
	"github.com/fastygo/progress/usecase/task"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Screen is one entry of the navigation menu.
type Screen string

const (
	ScreenAddTask      Screen = "Add Task"
	ScreenTasks        Screen = "Tasks"
	ScreenUpdateStatus Screen = "Update Status"
	ScreenAddLog       Screen = "Daily Log"
	ScreenHabits       Screen = "Habits"
	ScreenAddHabit     Screen = "Add Habit"
	ScreenMarkHabit    Screen = "Mark Habit Done"
	ScreenDashboard    Screen = "Dashboard"
	ScreenExport       Screen = "Export Data"
	ScreenLogout       Screen = "Logout"
)

// Menu lists the screens offered to an authenticated user, in order.
var Menu = []Screen{
	ScreenAddTask,
	ScreenTasks,
	ScreenAddLog,
	ScreenHabits,
	ScreenDashboard,
	ScreenExport,
	ScreenLogout,
}

// StatusInput selects a task and its new status.
type StatusInput struct {
	TaskID int64
	Status string
}

// HabitInput names a new habit.
type HabitInput struct {
	Title string
}

// MarkHabitInput selects the habit checked in for today.
type MarkHabitInput struct {
	HabitID int64
}

// ExportInput names the directory that receives tasks.csv and logs.csv.
type ExportInput struct {
	Dir string
}

// Services are the use cases the controller routes to.
type Services struct {
	Auth      *auth.UseCase
	Tasks     *task.UseCase
	Logs      *activity.UseCase
	Habits    *habit.UseCase
	Dashboard *dashboard.UseCase
	Export    *export.UseCase
}

// Controller tracks who is logged in for a single interaction. It is never
// shared between interactions; calls are serialized.
type Controller struct {
	mu         sync.Mutex
	state      State
	username   string
	sessionID  string
	auth       *auth.UseCase
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func NewController(svc Services, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		auth:       svc.Auth,
		dispatcher: NewDispatcher(),
		logger:     logger,
	}
	c.registerActions(svc)
	return c
}

func (c *Controller) registerActions(svc Services) {
	c.dispatcher.Register(ScreenAddTask, func(ctx context.Context, username string, input interface{}) (interface{}, error) {
		in, ok := input.(task.Input)
		if !ok {
			return nil, domain.ErrInvalidPayload
		}
		return svc.Tasks.CreateTask(ctx, username, in)
	})
	c.dispatcher.Register(ScreenTasks, func(ctx context.Context, username string, _ interface{}) (interface{}, error) {
		return svc.Tasks.ListTasks(ctx, username)
	})
	c.dispatcher.Register(ScreenUpdateStatus, func(ctx context.Context, username string, input interface{}) (interface{}, error) {
		in, ok := input.(StatusInput)
		if !ok {
			return nil, domain.ErrInvalidPayload
		}
		return nil, svc.Tasks.UpdateStatus(ctx, username, in.TaskID, in.Status)
	})
	c.dispatcher.Register(ScreenAddLog, func(ctx context.Context, username string, input interface{}) (interface{}, error) {
		in, ok := input.(activity.Input)
		if !ok {
			return nil, domain.ErrInvalidPayload
		}
		return svc.Logs.CreateLog(ctx, username, in)
	})
	c.dispatcher.Register(ScreenHabits, func(ctx context.Context, username string, _ interface{}) (interface{}, error) {
		return svc.Habits.ListHabits(ctx, username)
	})
	c.dispatcher.Register(ScreenAddHabit, func(ctx context.Context, username string, input interface{}) (interface{}, error) {
		in, ok := input.(HabitInput)
		if !ok {
			return nil, domain.ErrInvalidPayload
		}
		return svc.Habits.CreateHabit(ctx, username, in.Title)
	})
	c.dispatcher.Register(ScreenMarkHabit, func(ctx context.Context, username string, input interface{}) (interface{}, error) {
		in, ok := input.(MarkHabitInput)
		if !ok {
			return nil, domain.ErrInvalidPayload
		}
		return svc.Habits.MarkDone(ctx, username, in.HabitID)
	})
	c.dispatcher.Register(ScreenDashboard, func(ctx context.Context, username string, _ interface{}) (interface{}, error) {
		return svc.Dashboard.Dashboard(ctx, username)
	})
	c.dispatcher.Register(ScreenExport, func(ctx context.Context, username string, input interface{}) (interface{}, error) {
		in, ok := input.(ExportInput)
		if !ok || in.Dir == "" {
			return nil, domain.Invalid("export directory is required")
		}
		return svc.Export.ToDir(ctx, username, in.Dir)
	})
}

// State reports the current state and the held username, if any.
func (c *Controller) State() (State, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.username
}

// SignUp creates an account without logging in.
func (c *Controller) SignUp(ctx context.Context, username, password string) (*domain.User, error) {
	return c.auth.SignUp(ctx, username, password)
}

// Login authenticates and moves to Authenticated. A failed attempt leaves the
// current state unchanged.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	res, err := c.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.mu.Lock()
	previous := c.sessionID
	c.state = Authenticated
	c.username = res.Session.Username
	c.sessionID = res.Session.ID
	c.mu.Unlock()

	if previous != "" && previous != res.Session.ID {
		_ = c.auth.Logout(ctx, previous)
	}
	c.logger.Info("logged in", zap.String("username", res.Session.Username))
	return nil
}

// Logout revokes the session and discards the username.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logoutLocked(ctx)
}

func (c *Controller) logoutLocked(ctx context.Context) error {
	sessionID, username := c.sessionID, c.username
	c.state = Unauthenticated
	c.username = ""
	c.sessionID = ""

	if sessionID == "" {
		return nil
	}
	if err := c.auth.Logout(ctx, sessionID); err != nil {
		c.logger.Warn("session revoke failed", zap.String("username", username), zap.Error(err))
		return err
	}
	c.logger.Info("logged out", zap.String("username", username))
	return nil
}

// Select routes a navigation choice to exactly one action. The held session
// is re-validated first so an expired or revoked session logs the user out.
func (c *Controller) Select(ctx context.Context, screen Screen, input interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Authenticated {
		return nil, domain.ErrUnauthorized
	}
	if screen == ScreenLogout {
		return nil, c.logoutLocked(ctx)
	}

	if _, err := c.auth.GetSession(ctx, c.sessionID); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			c.state, c.username, c.sessionID = Unauthenticated, "", ""
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	out, err := c.dispatcher.Execute(ctx, screen, c.username, input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", screen, err)
	}
	return out, nil
}
