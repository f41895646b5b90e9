package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/eugenenazirov/stubd/internal/application"
	"github.com/eugenenazirov/stubd/internal/buildinfo"
	"github.com/eugenenazirov/stubd/internal/config"
	"github.com/eugenenazirov/stubd/internal/framework"
	"github.com/eugenenazirov/stubd/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, newRuntime))
}

// runtimeFactory builds the framework collaborator the app runs under, the
// context that ends with it and a function releasing it.
type runtimeFactory func() (framework.Runtime, context.Context, func())

func newRuntime() (framework.Runtime, context.Context, func()) {
	rt := framework.NewSignalRuntime(context.Background())
	return rt, rt.Context(), rt.Shutdown
}

// run executes the daemon and returns the process exit code.
func run(args []string, stdout, stderr io.Writer, newRT runtimeFactory) int {
	logger, err := logging.New(logging.Options{
		Format: os.Getenv(buildinfo.EnvPrefix() + "_LOG_FORMAT"),
		Output: stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("starting", zap.String("product", buildinfo.Name), zap.String("version", buildinfo.Version))

	defaults := config.Defaults(buildinfo.Name, buildinfo.LocalStateDir, buildinfo.SysConfDir)
	resolver := config.NewResolver(buildinfo.Name, defaults, logger,
		config.WithVersion(buildinfo.Version),
		config.WithOutput(stdout),
	)

	settings, err := resolver.Resolve(args)
	switch {
	case errors.Is(err, config.ErrHelp), errors.Is(err, config.ErrVersion):
		return 0
	case err != nil:
		logger.Error("failed to resolve configuration", zap.Error(err))
		return 1
	}

	rt, ctx, stop := newRT()
	defer stop()

	app, err := application.New(settings, rt, logger, application.WithArgs(args))
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return 1
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("daemon failed", zap.Error(err))
		return 1
	}
	return 0
}
