// Package cli implements the clayconfig command tree.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-clayconfig/internal/config"
	"github.com/goliatone/go-clayconfig/internal/logging"
	"github.com/goliatone/go-clayconfig/pkg/catalog"
	"github.com/goliatone/go-clayconfig/pkg/descriptor"
)

// app carries state shared by every subcommand once the root pre-run has
// resolved configuration.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     zerolog.Logger
	store   *catalog.Store
}

// NewRootCmd creates the root command.
func NewRootCmd(version string) *cobra.Command {
	a := &app{
		v:   config.NewViper(),
		cfg: config.Defaults(),
		log: zerolog.Nop(),
	}

	cmd := &cobra.Command{
		Use:           "clayconfig",
		Short:         "Inspect, lint and export watch face configuration pages",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./clayconfig.yaml)")
	flags.StringSlice("catalog", nil, "directory of descriptor files to load (repeatable)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	flags.String("log-format", "", "log format: console or json")
	bindFlag(a.v, config.KeyCatalog, flags.Lookup("catalog"))
	bindFlag(a.v, config.KeyLogLevel, flags.Lookup("log-level"))
	bindFlag(a.v, config.KeyLogFormat, flags.Lookup("log-format"))

	cmd.AddCommand(
		newListCmd(a),
		newExportCmd(a),
		newLintCmd(a),
		newDefaultsCmd(a),
		newSchemaCmd(a),
		newDecodeCmd(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cmd.ErrOrStderr()
	a.log = logging.New(logCfg).With().Str("command", cmd.Name()).Logger()

	if used := config.ConfigFileUsed(a.v); used != "" {
		a.log.Debug().Str("file", used).Msg("config loaded")
	}
	return nil
}

// catalog lazily builds the descriptor store from the presets plus every
// configured catalog directory.
func (a *app) catalog() (*catalog.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	options := []catalog.Option{catalog.WithPresets()}
	for _, dir := range a.cfg.Catalog {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("catalog %s: not a directory", dir)
		}
		options = append(options, catalog.WithFS(os.DirFS(dir)))
	}
	store, err := catalog.New(options...)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Int("descriptors", store.Len()).Strs("dirs", a.cfg.Catalog).Msg("catalog ready")
	a.store = store
	return store, nil
}

func (a *app) descriptor(name string) (descriptor.Descriptor, error) {
	store, err := a.catalog()
	if err != nil {
		return descriptor.Descriptor{}, err
	}
	return store.Get(strings.TrimSpace(name))
}

// bindFlag wires a flag into viper so it overrides file and env values when
// set. A missing flag is a programming error.
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("cli: bind %s: %v", key, err))
	}
}
