package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/milk9111/polarity/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	v   *viper.Viper
	log *zap.Logger
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop(), out: out}
	var cfgFile string

	root := &cobra.Command{
		Use:           "fieldscan",
		Short:         "Inspect the magnet fields of a level.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(cfgFile); err != nil {
				return err
			}
			logger, err := logging.New(a.logConfig(), nil)
			if err != nil {
				return err
			}
			a.log = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.SetOut(out)

	defaults := logging.DefaultConfig()
	a.v.SetDefault("log.level", "warn")
	a.v.SetDefault("log.format", defaults.Format)
	a.v.SetDefault("log.max_size_mb", defaults.MaxSizeMB)
	a.v.SetDefault("log.max_backups", defaults.MaxBackups)
	a.v.SetDefault("log.max_age_days", defaults.MaxAgeDays)
	a.v.SetDefault("jobs", 4)

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./fieldscan.yaml)")
	pf.String("log-level", "warn", "debug, info, warn or error")
	pf.String("log-file", "", "also write JSON logs to this file")
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.file", pf.Lookup("log-file"))

	root.AddCommand(
		newRegionsCmd(a),
		newSampleCmd(a),
		newGridCmd(a),
	)
	return root
}

func (a *app) logConfig() logging.Config {
	return logging.Config{
		Level:      a.v.GetString("log.level"),
		Format:     a.v.GetString("log.format"),
		File:       a.v.GetString("log.file"),
		MaxSizeMB:  a.v.GetInt("log.max_size_mb"),
		MaxBackups: a.v.GetInt("log.max_backups"),
		MaxAgeDays: a.v.GetInt("log.max_age_days"),
	}
}

// initConfig reads an optional config file and FIELDSCAN_* environment variables.
func (a *app) initConfig(cfgFile string) error {
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("fieldscan")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("FIELDSCAN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
