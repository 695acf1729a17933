package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hdrgen/internal/config"
	"hdrgen/internal/generator"
	"hdrgen/internal/logging"
)

// app carries what every subcommand needs once configuration is loaded
type app struct {
	fs      afero.Fs
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	a := &app{fs: fsys, v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "hdrgen",
		Short: "Generate gtest skeletons and stubs from C++ headers",
		Long: `hdrgen scans C++ headers line by line and generates:

- gtest test skeletons, one TEST_F case per public function
- stub headers and sources with empty bodies for every function
- a scan report of what was recognized and what will generate poorly`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./configs/hdrgen.yaml or ./hdrgen.yaml)")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console, json)")
	flags.Int("workers", 4, "Headers processed concurrently")
	flags.Int("max-continuation", 64, "Lines a signature may span before it is abandoned")
	flags.StringSlice("exclude", nil, "Directory names skipped while walking")

	for key, flag := range map[string]string{
		"log.level":              "log-level",
		"log.format":             "log-format",
		"workers":                "workers",
		"max_continuation_lines": "max-continuation",
		"exclude":                "exclude",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind %s: %v", flag, err))
		}
	}

	rootCmd.AddCommand(newGtestCmd(a))
	rootCmd.AddCommand(newStubCmd(a))
	rootCmd.AddCommand(newScanCmd(a))

	return rootCmd
}

func (a *app) loadConfig() error {
	v := a.v
	v.SetFs(a.fs)
	config.SetDefaults(v)

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.SetConfigName("hdrgen")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HDRGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := config.New(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.Setup(cfg.Log.Level, cfg.Log.Format, nil)
	return nil
}

func (a *app) generator() *generator.Generator {
	return generator.New(a.fs, a.cfg)
}
