// Package web serves the journal as a single-page HTML form.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	progressdto "thrivehub/internal/modules/progress/dto"
	quotedto "thrivehub/internal/modules/quote/dto"
	reflectiondto "thrivehub/internal/modules/reflection/dto"
	"thrivehub/internal/platform/clock"
	apperrors "thrivehub/internal/platform/errors"
	"thrivehub/internal/platform/id"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	defaultSlider   = 50
	shutdownTimeout = 5 * time.Second
	timeLayout      = "2006-01-02 15:04:05"
)

type quotePort interface {
	Daily(ctx context.Context, cache *quotedto.QuoteCache) (quotedto.DailyQuoteOutput, error)
}

type reflectionPort interface {
	Append(ctx context.Context, text string) (reflectiondto.EntryOutput, error)
}

type progressPort interface {
	Save(ctx context.Context, value int) (progressdto.EntryOutput, error)
	History(ctx context.Context) ([]progressdto.EntryOutput, error)
}

type Deps struct {
	Quotes      quotePort
	Reflections reflectionPort
	Progress    progressPort
	Clock       clock.Clock
	IDs         id.Generator
	Logger      *zap.Logger
	// MaxSessions caps the per-browser quote caches; zero means 1024.
	MaxSessions int
}

type Server struct {
	echo     *echo.Echo
	deps     Deps
	logger   *zap.Logger
	metrics  *Metrics
	sessions *sessions

	// writeMu serializes appends; echo runs handlers concurrently and the
	// stores rewrite whole files.
	writeMu sync.Mutex
}

func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.IDs == nil {
		deps.IDs = id.UUID{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = &templateRenderer{tmpl: template.Must(template.ParseFS(templateFS, "templates/*.html"))}

	s := &Server{
		echo:     e,
		deps:     deps,
		logger:   deps.Logger,
		metrics:  NewMetrics(),
		sessions: newSessions(deps.IDs, deps.MaxSessions),
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.requestLogger())
	e.Use(s.metrics.Middleware())

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.POST("/reflection", s.handleReflection)
	s.echo.POST("/progress", s.handleProgress)
	s.echo.GET("/api/progress", s.handleProgressAPI)
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", s.metrics.Handler())
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			s.logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	}
}

// ServeHTTP lets tests drive the server without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web form", zap.String("addr", addr))
		errCh <- s.echo.Start(addr)
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}
	s.logger.Info("shutting down web form")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown web form: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}

type flash struct {
	Kind    string
	Message string
}

type page struct {
	Quote      string
	Flash      *flash
	Draft      string
	Slider     int
	Chart      chart
	HasHistory bool
	Now        string
}

func (s *Server) render(c echo.Context, status int, slider int, draft string, f *flash) error {
	ctx := c.Request().Context()
	sid := s.sessions.resolve(c)
	var quote quotedto.DailyQuoteOutput
	if err := s.sessions.with(sid, s.deps.Clock.Now(), func(cache *quotedto.QuoteCache) error {
		var err error
		quote, err = s.deps.Quotes.Daily(ctx, cache)
		return err
	}); err != nil {
		s.logger.Error("daily quote failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not pick a quote")
	}
	history, err := s.deps.Progress.History(ctx)
	if err != nil {
		s.logger.Error("load progress failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "progress history is unreadable")
	}
	return c.Render(status, "index.html", page{
		Quote:      quote.Quote,
		Flash:      f,
		Draft:      draft,
		Slider:     slider,
		Chart:      newChart(history),
		HasHistory: len(history) > 0,
		Now:        s.deps.Clock.Now().Format(timeLayout),
	})
}

func (s *Server) handleIndex(c echo.Context) error {
	return s.render(c, http.StatusOK, defaultSlider, "", nil)
}

func (s *Server) handleReflection(c echo.Context) error {
	text := c.FormValue("reflection")
	s.writeMu.Lock()
	_, err := s.deps.Reflections.Append(c.Request().Context(), text)
	s.writeMu.Unlock()
	switch {
	case err == nil:
		s.metrics.ReflectionsSaved.Inc()
		return s.render(c, http.StatusOK, defaultSlider, "", &flash{Kind: "success", Message: "Thank you for sharing! Keep growing! 🌱"})
	case errors.Is(err, apperrors.ErrEmptyReflection):
		s.metrics.SubmissionsRejected.WithLabelValues("empty_reflection").Inc()
		return s.render(c, http.StatusUnprocessableEntity, defaultSlider, text, &flash{Kind: "warning", Message: "Please write something before submitting."})
	default:
		s.logger.Error("save reflection failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save reflection")
	}
}

func (s *Server) handleProgress(c echo.Context) error {
	raw := strings.TrimSpace(c.FormValue("progress"))
	value, convErr := strconv.Atoi(raw)
	if convErr != nil {
		s.metrics.SubmissionsRejected.WithLabelValues("invalid_progress").Inc()
		return s.render(c, http.StatusUnprocessableEntity, defaultSlider, "", &flash{Kind: "warning", Message: "Progress must be a whole number between 0 and 100."})
	}
	s.writeMu.Lock()
	_, err := s.deps.Progress.Save(c.Request().Context(), value)
	s.writeMu.Unlock()
	switch {
	case err == nil:
		s.metrics.ProgressSaved.Inc()
		return s.render(c, http.StatusOK, value, "", &flash{Kind: "success", Message: "Your progress has been saved! 📈"})
	case errors.Is(err, apperrors.ErrProgressOutOfRange):
		s.metrics.SubmissionsRejected.WithLabelValues("out_of_range").Inc()
		return s.render(c, http.StatusUnprocessableEntity, defaultSlider, "", &flash{Kind: "warning", Message: "Progress must be between 0 and 100."})
	default:
		s.logger.Error("save progress failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save progress")
	}
}

func (s *Server) handleProgressAPI(c echo.Context) error {
	history, err := s.deps.Progress.History(c.Request().Context())
	if err != nil {
		s.logger.Error("load progress failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "progress history is unreadable")
	}
	return c.JSON(http.StatusOK, history)
}

type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Sessions: s.sessions.len()})
}

type templateRenderer struct {
	tmpl *template.Template
}

func (r *templateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}
