package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taskflow/taskflow-go/internal/core/ports"
	"github.com/taskflow/taskflow-go/internal/core/service"
	"github.com/taskflow/taskflow-go/internal/infrastructure/api"
	"github.com/taskflow/taskflow-go/internal/infrastructure/config"
	"github.com/taskflow/taskflow-go/internal/infrastructure/credentials"
	"github.com/taskflow/taskflow-go/pkg/logger"
)

// app bundles the wired SDK the commands run against.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	session *service.Session
	guard   service.RouteGuard
	tasks   ports.TaskGateway
	jobs    ports.JobGateway
	close   func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	store, closeStore, err := newCredentialStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIURL, cfg.HTTPTimeout, store, log)

	return &app{
		cfg:     cfg,
		log:     log,
		session: service.NewSession(api.NewAuthGateway(client), store, log),
		guard:   service.NewRouteGuard(),
		tasks:   api.NewTaskGateway(client),
		jobs:    api.NewJobGateway(client),
		close:   closeStore,
	}, nil
}

func newCredentialStore(ctx context.Context, cfg *config.Config) (ports.CredentialStore, func(), error) {
	switch cfg.Credentials.Backend {
	case "memory":
		return credentials.NewMemory(), func() {}, nil
	case "redis":
		store, err := credentials.ConnectRedis(ctx, credentials.RedisConfig{
			Addr: cfg.Credentials.Redis.Addr,
			DB:   cfg.Credentials.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "file", "":
		store, err := credentials.NewFile(cfg.Credentials.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown credentials backend %q", cfg.Credentials.Backend)
	}
}

// requireAccess boots the session and runs the route guard for the view a
// command corresponds to. It returns an error describing the redirect when
// access is denied.
func (a *app) requireAccess(ctx context.Context, view string, roles ...string) error {
	a.session.Initialize(ctx)

	decision := a.guard.Decide(a.session.Snapshot(), roles, view)
	switch decision.Action {
	case service.GuardRender:
		return nil
	case service.GuardRedirectLogin:
		return fmt.Errorf("not logged in, run `taskflow login` first (wanted %s)", decision.ReturnTo)
	case service.GuardRedirectDefault:
		return fmt.Errorf("your role is not allowed to access %s", view)
	default:
		return fmt.Errorf("session still resolving, try again")
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "taskflow",
		Short:         "Terminal client for the TaskFlow dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		tasksCmd(),
		activityCmd(),
		jobsCmd(),
	)
	return cmd
}
