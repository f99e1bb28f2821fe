package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clientry/clientry"
	"github.com/clientry/clientry/config"
	"github.com/clientry/clientry/core/cache"
	"github.com/clientry/clientry/core/logger"
	"github.com/clientry/clientry/core/registry"
	infracache "github.com/clientry/clientry/infra/cache"
	infralogger "github.com/clientry/clientry/infra/logger"
)

var (
	cfgPath      string
	settingsPath string
)

var rootCmd = &cobra.Command{
	Use:           "clientry",
	Short:         "Inspect and build clients from a declarative definition file",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "clients.yaml", "client definition file")
	rootCmd.PersistentFlags().StringVarP(&settingsPath, "settings", "s", "", "tool settings file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// buildRegistry assembles a registry from the definition file, wiring the
// cache backend the settings select.
func buildRegistry() (*registry.Registry, error) {
	s, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	log := infralogger.NewZerologLoggerWithLevel("clientry", infralogger.ParseLevel(s.LogLevel))

	opts := []clientry.Option{clientry.WithLogger(log)}
	store, err := openStore(s, log)
	if err != nil {
		return nil, err
	}
	if store != nil {
		opts = append(opts, clientry.WithCache(store, s.TTL()))
	}
	return clientry.Build(cfgPath, opts...)
}

func openStore(s *config.Settings, log logger.Logger) (cache.Store, error) {
	switch s.Cache.Backend {
	case "memory":
		return infracache.NewMemoryStore(s.TTL(), infracache.DefaultCleanupInterval), nil
	case "file":
		store, err := infracache.NewFileStore(s.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file cache: %w", err)
		}
		return store, nil
	default:
		log.Debugf("no cache backend configured")
		return nil, nil
	}
}
