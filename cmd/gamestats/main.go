// Package main is the entrypoint for the gamestats binary.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/morezero/gamestats/internal/config"
	"github.com/morezero/gamestats/internal/server"
)

const envHelp = `Environment: STATS_API_KEY (required for serve/call), STATS_REGION (default na),
STATS_CATALOG_FILE, STATS_CATALOG_SOURCE (file|db), DATABASE_URL, MIGRATION_PATH,
COMMS_URL, GATEWAY_SUBJECT, CALL_EVENT_SUBJECT, STATS_HTTP_ADDR, HTTP_PORT, LOG_LEVEL.`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gamestats: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gamestats",
		Short:         "Region-sharded game stats client and call gateway",
		Long:          "gamestats serves stats calls over COMMS and HTTP, and manages the persisted endpoint catalog.\n\n" + envHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run()
		},
	}
	root.AddCommand(
		newServeCmd(),
		newCallCmd(),
		newMethodsCmd(),
		newCatalogCmd(),
		newValidateCatalogCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newEnsureDBCmd(),
		newClearCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway (COMMS subscription, HTTP health, catalog and metrics)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run()
		},
	}
}

// loadConfig loads the environment config and installs the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	server.SetupLogging(cfg.LogLevel)
	return cfg, nil
}
