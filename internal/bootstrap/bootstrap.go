package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	progressinadapter "thrivehub/internal/modules/progress/adapter/in"
	progressoutadapter "thrivehub/internal/modules/progress/adapter/out"
	progressservice "thrivehub/internal/modules/progress/service"
	progressusecase "thrivehub/internal/modules/progress/usecase"
	quoteinadapter "thrivehub/internal/modules/quote/adapter/in"
	quoteoutadapter "thrivehub/internal/modules/quote/adapter/out"
	quoteout "thrivehub/internal/modules/quote/port/out"
	quoteservice "thrivehub/internal/modules/quote/service"
	quoteusecase "thrivehub/internal/modules/quote/usecase"
	reflectioninadapter "thrivehub/internal/modules/reflection/adapter/in"
	reflectionoutadapter "thrivehub/internal/modules/reflection/adapter/out"
	reflectionservice "thrivehub/internal/modules/reflection/service"
	reflectionusecase "thrivehub/internal/modules/reflection/usecase"
	"thrivehub/internal/platform/clock"
	"thrivehub/internal/platform/config"
	"thrivehub/internal/platform/watch"
	uiapp "thrivehub/internal/ui/app"
	"thrivehub/internal/web"
)

type App struct {
	Config        config.Config
	Logger        *zap.Logger
	QuoteCLI      quoteinadapter.CLIHandler
	ReflectionCLI reflectioninadapter.CLIHandler
	ProgressCLI   progressinadapter.CLIHandler

	closers []io.Closer
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := clock.SystemClock{}

	var source quoteout.QuoteSource = quoteoutadapter.NewBuiltinSource()
	if cfg.QuotesPath != "" {
		source = quoteoutadapter.NewYAMLFileSource(cfg.QuotesPath)
	}
	quotes, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load quotes: %w", err)
	}
	quoteUC := quoteusecase.NewInteractor(quoteservice.NewQuoteService(quotes, quoteoutadapter.NewRandomPicker()), clk)

	app := &App{Config: cfg, Logger: logger}

	reflectionProjector, err := reflectionoutadapter.NewSQLiteReflectionProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new reflection projector: %w", err)
	}
	app.track(reflectionProjector)
	reflectionUC := reflectionusecase.NewInteractor(reflectionservice.NewReflectionService(
		reflectionoutadapter.NewCSVReflectionStore(cfg.ReflectionsPath),
		reflectionProjector,
	).WithLogger(logger), clk)

	progressProjector, err := progressoutadapter.NewSQLiteProgressProjector(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new progress projector: %w", err)
	}
	app.track(progressProjector)
	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		progressoutadapter.NewJSONProgressStore(cfg.ProgressPath),
		progressProjector,
	).WithLogger(logger), clk)

	app.QuoteCLI = quoteinadapter.NewCLIHandler(quoteUC)
	app.ReflectionCLI = reflectioninadapter.NewCLIHandler(reflectionUC)
	app.ProgressCLI = progressinadapter.NewCLIHandler(progressUC)
	logger.Debug("app wired",
		zap.String("data_dir", cfg.DataDir),
		zap.Int("quotes", quotes.Len()),
		zap.String("db", cfg.DBPath),
	)
	return app, nil
}

func (a *App) track(v any) {
	if c, ok := v.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
}

// Close releases the index connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	watcher, err := watch.New(app.Config.ReflectionsPath, app.Config.ProgressPath)
	if err != nil {
		app.Logger.Warn("data dir watch unavailable", zap.Error(err))
		watcher = nil
	}
	if watcher != nil {
		defer watcher.Close()
	}
	model := uiapp.NewModel(app.QuoteCLI, app.ReflectionCLI, app.ProgressCLI, clock.SystemClock{}, watcher)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// RunServer serves the web form until ctx is cancelled.
func RunServer(ctx context.Context, app *App) error {
	srv := web.NewServer(web.Deps{
		Quotes:      app.QuoteCLI,
		Reflections: app.ReflectionCLI,
		Progress:    app.ProgressCLI,
		Clock:       clock.SystemClock{},
		Logger:      app.Logger,
	})
	return srv.Run(ctx, app.Config.Server.Addr())
}
