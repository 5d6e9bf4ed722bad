package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/cotyledon/internal/config"
	"github.com/danmuck/cotyledon/internal/garden"
	"github.com/danmuck/cotyledon/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownGrace = 10 * time.Second

// Garden is the HTTP front of a Gardener. It keeps no per-client state: the
// client carries its garden in every request.
type Garden struct {
	Name     string
	Addr     string
	Appeared time.Time

	gardener     *garden.Gardener
	router       *gin.Engine
	limiter      *RateLimiter
	metricsToken string
}

func Appear(cfg config.ServerConfig, gardener *garden.Gardener) *Garden {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestID())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Name))
	r.Use(cors.New(corsConfig(cfg.CorsOrigins)))
	_ = r.SetTrustedProxies(cfg.TrustedProxies)

	g := &Garden{
		Name:         cfg.Name,
		Addr:         cfg.Addr,
		Appeared:     time.Now(),
		gardener:     gardener,
		router:       r,
		metricsToken: cfg.MetricsToken,
	}
	if cfg.RateLimit.RPS > 0 {
		g.limiter = NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		r.Use(g.limiter.Middleware())
	}
	return g
}

func (g *Garden) HTTPRouter() *gin.Engine {
	return g.router
}

// Serve registers routes and blocks until ctx is cancelled or the listener fails.
func (g *Garden) Serve(ctx context.Context) error {
	g.RegisterRoutes()
	srv := &http.Server{
		Addr:              g.Addr,
		Handler:           g.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info().Str("name", g.Name).Str("addr", g.Addr).Msg("garden listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Str("name", g.Name).Msg("garden stopped")
	return nil
}

// requestLogger returns the global logger tagged with the request id.
func (g *Garden) requestLogger(c *gin.Context) zerolog.Logger {
	return log.Logger.With().
		Str("node", g.Name).
		Str("request_id", observability.GetRequestID(c)).
		Logger()
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", observability.HeaderRequestID},
		ExposeHeaders: []string{observability.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if strings.TrimSpace(origin) == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = normalizeOrigins(origins)
	return cfg
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		if v := strings.TrimSpace(origin); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return []string{"http://localhost:3000"}
	}
	return out
}
