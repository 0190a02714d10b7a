package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/Chekke24/challenger-premios-backend/internal/domain/banner"
	"github.com/Chekke24/challenger-premios-backend/internal/domain/publication"
	"github.com/Chekke24/challenger-premios-backend/internal/metrics"
	"github.com/Chekke24/challenger-premios-backend/internal/middleware"
	"github.com/Chekke24/challenger-premios-backend/internal/pkg/response"
)

const healthMessage = "Servidor funcionando correctamente"

type Options struct {
	CORSAllowedOrigins []string
	MultipartMemory    int64

	// StaticPrefix and StaticDir serve locally stored images. Empty disables it.
	StaticPrefix string
	StaticDir    string

	// Metrics and Gatherer enable request metrics and GET /metrics.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func NewRouter(opts Options, publications *publication.Handler, banners *banner.Handler) *gin.Engine {
	r := gin.New()
	if opts.MultipartMemory > 0 {
		r.MaxMultipartMemory = opts.MultipartMemory
	}

	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(opts.CORSAllowedOrigins))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	r.Use(middleware.NoCache())

	r.GET("/", func(c *gin.Context) {
		response.Message(c, http.StatusOK, healthMessage)
	})

	if opts.StaticPrefix != "" && opts.StaticDir != "" {
		r.Static(opts.StaticPrefix, opts.StaticDir)
	}
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(opts.Gatherer)))
	}

	publications.RegisterRoutes(r)
	banners.RegisterRoutes(r)

	return r
}

// Run serves handler on addr until ctx is cancelled, then shuts down within
// shutdownTimeout.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
