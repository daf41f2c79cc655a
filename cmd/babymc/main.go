package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/babymc/internal/config"
	"github.com/san-kum/babymc/internal/logging"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string

	// cfg is resolved once per invocation by the root pre-run hook.
	cfg *config.Config
)

// main registers the commands and exits with status 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "babymc",
		Short:         "BABY neutronics model builder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveConfig()
			if err != nil {
				return err
			}
			cfg = c
			return logging.Initialize(cfg.Logging)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".babymc", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "apply a preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(
		newBuildCmd(),
		newRunCmd(),
		newCheckCmd(),
		newLayersCmd(),
		newMaterialsCmd(),
		newSourcesCmd(),
		newProfileCmd(),
		newPlotCmd(),
		newViewCmd(),
		newMeshCmd(),
		newListCmd(),
		newExportCmd(),
		newSummaryCmd(),
		newPresetsCmd(),
		newConfigCmd(),
	)

	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig loads the config file or the defaults, then applies the
// preset and flag overrides.
func resolveConfig() (*config.Config, error) {
	c := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		c = loaded
	}
	if preset != "" {
		apply, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		apply(c)
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	return c, c.Validate()
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
}
