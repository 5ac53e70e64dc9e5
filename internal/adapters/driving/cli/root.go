// Package cli implements the praxis command line interface.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/praxis-labs/praxis-cli/internal/core/ports/driving"
	"github.com/praxis-labs/praxis-cli/internal/logger"
)

var (
	configPath string
	verbose    bool
	version    = "dev"
)

// Services bundles the driving ports the commands depend on.
type Services struct {
	Domain  driving.DomainService
	Context driving.ContextService
	Index   driving.IndexService

	// Analysis is nil when no generation model is configured.
	Analysis driving.AnalysisService
}

var (
	services *Services
	initFn   func(configPath string) (*Services, error)
)

var rootCmd = &cobra.Command{
	Use:   "praxis",
	Short: "Tiered expertise retrieval for analysis tasks",
	Long: `Praxis manages domain expertise packs and assembles token-budgeted
analysis contexts from them.

A domain directory holds principles.md, rubrics/, examples/ and
frameworks/. Examples are indexed into a vector store and retrieved
by semantic similarity at analysis time.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.praxis/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetInitializer installs the service factory. Construction is deferred
// until a command needs services, so commands like version work without
// a valid configuration.
func SetInitializer(fn func(configPath string) (*Services, error)) {
	initFn = fn
}

// SetServices injects pre-built services, mainly for tests.
func SetServices(s *Services) {
	services = s
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// getServices returns the injected services, building them on first use.
func getServices() (*Services, error) {
	if services != nil {
		return services, nil
	}
	if initFn == nil {
		return nil, errors.New("services not configured")
	}
	s, err := initFn(configPath)
	if err != nil {
		return nil, err
	}
	services = s
	return services, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
