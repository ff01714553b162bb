package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kassa/internal/amqp"
	"kassa/internal/config"
	apphttp "kassa/internal/http"
	applog "kassa/internal/log"
	"kassa/internal/moysklad"
	"kassa/internal/report"
)

func createServeCmd() *cobra.Command {
	var s serveRunner

	c := &cobra.Command{
		Use:   "serve",
		Short: "run the report HTTP server",
		Long:  `Serve the report API. POST /api/report renders a workbook synchronously, POST /api/report/async queues a request for the worker.`,

		Args: cobra.NoArgs,
		Run:  s.run,
	}
	s.setupFlags(c)
	return c
}

type serveRunner struct {
	port string
}

func (s *serveRunner) setupFlags(c *cobra.Command) {
	c.Flags().StringVar(&s.port, "port", "", "listen port (overrides PORT)")
}

func (s *serveRunner) run(cmd *cobra.Command, args []string) {
	if err := s.execute(cmd); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (s *serveRunner) execute(cmd *cobra.Command) error {
	logger := slog.Default().With(applog.FieldComponent, applog.ComponentApp)

	cfg := config.Load()
	if s.port != "" {
		cfg.Port = s.port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := moysklad.NewClient(cfg.BaseURL, cfg.Username, cfg.Password)
	generator := report.NewGenerator(client, cfg.Normalizer())

	// The async endpoint needs a broker. Without one the server still
	// serves synchronous reports and answers 503 on /api/report/async.
	var publisher apphttp.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return fmt.Errorf("connect to broker: %w", err)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("Async report queue enabled", applog.FieldQueue, cfg.AMQPQueue)
	} else {
		logger.Info("No AMQP_URL configured, async reports disabled")
	}

	srv := apphttp.NewServer(":"+cfg.Port, generator, publisher)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
			return
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting kassa server", "addr", ":"+cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
	return nil
}
