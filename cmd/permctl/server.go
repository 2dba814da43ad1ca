package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevy33/permissions-in-go/pkg/audit"
	"github.com/sevy33/permissions-in-go/pkg/db"
	"github.com/sevy33/permissions-in-go/pkg/server"
	"github.com/sevy33/permissions-in-go/pkg/server/endpoints"
)

const shutdownTimeout = 15 * time.Second

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the permissions server",
	Long: `Run the permissions server.

Requires the DATABASE_URL environment variable. Database migrations are run
on startup unless --no-migrate is given. SIGINT or SIGTERM drains in-flight
requests before exiting.

Example:
  permctl server
  permctl server --port 9000 --no-migrate`,
	Run: func(cmd *cobra.Command, args []string) {
		if db.URL() == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg, log := loadConfig()
		audit.SetEnabled(cfg.AuditEnabled)

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Info("running database migrations")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{Log: log})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(database, cfg, log, host, port)
		endpoints.RegisterAll(s)

		if !s.TokenGate.Enabled() {
			log.Warn("admin_token_secret is not set; the admin API is open")
		}

		errCh := make(chan error, 1)
		go func() {
			log.Infof("running server at http://%s", s.Addr())
			errCh <- s.Start()
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Fatal("server stopped")
			}
		case sig := <-sigChan:
			log.WithField("signal", sig.String()).Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := s.Shutdown(ctx); err != nil {
				log.WithError(err).Error("graceful shutdown failed")
			}
		}

		if audit.DefaultStore != nil {
			_ = audit.DefaultStore.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
