package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"elenco/cmd/app"
	"elenco/internal/config"
	handlers "elenco/internal/handler"
	"elenco/internal/logger"
	"elenco/internal/middleware"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "elenco",
	Short:         "Single-admin blog for the cast",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to read .env: %w", err)
		}

		log, err = logger.New(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  serve,
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the stored records",
	RunE:  dump,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the stored records with the welcome posts and defaults",
	RunE:  reset,
}

func init() {
	serveCmd.Flags().IntVar(&portOverride, "port", 0, "listen port (overrides SERVER_PORT)")
	rootCmd.AddCommand(serveCmd, dumpCmd, resetCmd)
}

var portOverride int

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := app.App(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer components.Close()

	h := handlers.NewHandlers(components.Services, cfg, log)

	handlerChain := middleware.Chain(
		handlers.NewRouter(h),
		middleware.AuthMiddleware(components.Services.Auth),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(log),
	)

	port := cfg.ServerPort
	if portOverride > 0 {
		port = portOverride
	}
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started",
			zap.String("addr", server.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("auth", components.Services.Auth.Enabled()),
			zap.Bool("assist", components.Services.Assist.Available()),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func dump(cmd *cobra.Command, args []string) error {
	st, db, err := app.OpenStore(cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.CloseDB()
	}

	records, err := st.Dump(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}

	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	for _, k := range keys {
		fmt.Fprintf(out, "%s\t%s\n", k, records[k])
	}
	return nil
}

func reset(cmd *cobra.Command, args []string) error {
	st, db, err := app.OpenStore(cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.CloseDB()
	}

	if err := st.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset records: %w", err)
	}
	log.Info("records reset to defaults")
	return nil
}
