package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/zugferd/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for identifying, validating and converting invoices.

The API provides endpoints for:
  - POST /api/v1/identify  - Dialect, version and profile of a document
  - POST /api/v1/inspect   - Decoded invoice as JSON
  - POST /api/v1/convert   - Re-encode (?version=&dialect=&profile=)
  - POST /api/v1/validate  - Business rules (?profile=&mode=collect)
  - GET  /health           - Health check
  - GET  /metrics          - Prometheus metrics

Settings come from HTTP_ADDRESS, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT and
MAX_BODY_BYTES; flags override them.

Examples:
  # Start server on the configured address
  zugferd serve

  # Start on custom port in debug mode
  zugferd serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (env: HTTP_ADDRESS)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout (env: HTTP_READ_TIMEOUT)")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout (env: HTTP_WRITE_TIMEOUT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Target:       configuredTarget(),
		Collect:      cfg.CollectViolations(),
		Debug:        serverDebug,
	}
	if serverAddr != "" {
		config.Address = serverAddr
	}
	if readTimeout > 0 {
		config.ReadTimeout = readTimeout
	}
	if writeTimeout > 0 {
		config.WriteTimeout = writeTimeout
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.NewServer(config).Run(ctx)
}
