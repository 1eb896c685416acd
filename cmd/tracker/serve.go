package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/progress/api/handler"
	"github.com/fastygo/progress/internal/app"
	"github.com/fastygo/progress/internal/middleware"
	"github.com/fastygo/progress/internal/router"
	"github.com/fastygo/progress/pkg/httpcontext"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, zapLogger, err := setup("")
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(appCtx, cfg, zapLogger)
	if err != nil {
		return err
	}
	stopSignals := a.Lifecycle.Listen(cancel)
	defer stopSignals()
	a.StartBackground()

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:      apiHandler.NewAuthHandler(a.Auth, ctxAdapter, zapLogger, cfg.Sessions.TTL),
		Profile:   apiHandler.NewProfileHandler(a.Profile, ctxAdapter, zapLogger),
		Task:      apiHandler.NewTaskHandler(a.Tasks, ctxAdapter, zapLogger),
		Log:       apiHandler.NewLogHandler(a.Logs, ctxAdapter, zapLogger),
		Habit:     apiHandler.NewHabitHandler(a.Habits, ctxAdapter, zapLogger),
		Dashboard: apiHandler.NewDashboardHandler(a.Dashboard, ctxAdapter, zapLogger),
		Export:    apiHandler.NewExportHandler(a.Export, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(a.Monitor, map[string]string{
			"storage":  cfg.Storage.Driver,
			"sessions": cfg.Sessions.Driver,
		}, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(a.Auth, cfg.Context.RequestTimeout, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("sessions", cfg.Sessions.Driver))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Error("server crashed", zap.Error(err))
			cancel()
		}
	}()

	a.Lifecycle.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := a.Close(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
		return err
	}
	return nil
}
