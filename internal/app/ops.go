package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codexs/hirebot/core/buildinfo"
	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/report"
)

// OpsOptions configure the operational HTTP server.
type OpsOptions struct {
	Listen   string
	Reporter *report.Reporter
	Gatherer prometheus.Gatherer
	// Active reports the number of in-memory conversations.
	Active func() int
	Start  time.Time
}

// OpsRouter serves health, Prometheus metrics and the record totals.
func OpsRouter(opts OpsOptions) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), accessLog())

	r.GET("/healthz", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"version": buildinfo.Version,
			"commit":  buildinfo.Commit,
			"uptime":  time.Since(opts.Start).Round(time.Second).String(),
		}
		if opts.Active != nil {
			body["active_sessions"] = opts.Active()
		}
		c.JSON(http.StatusOK, body)
	})

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	r.GET("/stats", func(c *gin.Context) {
		if opts.Reporter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reporter unavailable"})
			return
		}
		totals, err := opts.Reporter.Totals(c.Request.Context())
		if err != nil {
			logger.Error(c.Request.Context(), "ops", "stats",
				slog.String("status", "fail"),
				slog.String("err", err.Error()),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
			return
		}
		c.JSON(http.StatusOK, totals)
	})
	return r
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug(c.Request.Context(), "ops", "http.request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("code", c.Writer.Status()),
			slog.Duration("duration", logger.Took(start)),
		)
	}
}

// ServeOps runs the ops server until ctx is done.
func ServeOps(ctx context.Context, opts OpsOptions) error {
	srv := &http.Server{
		Addr:              opts.Listen,
		Handler:           OpsRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "ops", "ops.listen", slog.String("addr", opts.Listen))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
