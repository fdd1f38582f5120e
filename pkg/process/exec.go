// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package process

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

// Error is a process error class.
var Error = errs.Class("process")

// EnvPrefix prefixes every environment variable read as configuration.
const EnvPrefix = "layoutbench"

// ConfigFlag is the name of the flag selecting the configuration file.
const ConfigFlag = "config"

// DefaultConfigPath returns $HOME/.layoutbench/<name>.yaml.
func DefaultConfigPath(name string) string {
	if name == "" {
		name = filepath.Base(os.Args[0])
	}
	path := filepath.Join(".layoutbench", fmt.Sprintf("%s.yaml", name))
	home, err := homedir.Dir()
	if err != nil {
		log.Println(err)
		return path
	}
	return filepath.Join(home, path)
}

// Exec runs cmd. Before any command in the tree runs, flags left unset on
// the command line are filled from the environment and the config file,
// and the process logger is installed as the zap global. A failing command
// terminates the process.
func Exec(cmd *cobra.Command) {
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	if cmd.PersistentFlags().Lookup(ConfigFlag) == nil {
		cmd.PersistentFlags().String(ConfigFlag, DefaultConfigPath(cmd.Name()), "config file")
	}

	wrapCommands(cmd)

	Must(cmd.Execute())
}

func wrapCommands(cmd *cobra.Command) {
	for _, child := range cmd.Commands() {
		wrapCommands(child)
	}

	runE := cmd.RunE
	if runE == nil {
		return
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		vip, err := Viper(cmd)
		if err != nil {
			return err
		}
		if err := ApplyConfig(cmd.Flags(), vip); err != nil {
			return err
		}

		logger, err := NewLogger()
		if err != nil {
			return Error.Wrap(err)
		}
		defer func() { _ = logger.Sync() }()
		defer zap.ReplaceGlobals(logger)()

		err = runE(cmd, args)
		if err != nil {
			logger.Error("command failed", zap.String("command", cmd.Name()), zap.Error(err))
		}
		return err
	}
}

// Viper returns a viper reading the environment and, when present, the
// config file named by the config flag.
func Viper(cmd *cobra.Command) (*viper.Viper, error) {
	vip := viper.New()
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vip.AutomaticEnv()

	cfgFlag := cmd.Flags().Lookup(ConfigFlag)
	if cfgFlag == nil || cfgFlag.Value.String() == "" {
		return vip, nil
	}

	cfgFile := cfgFlag.Value.String()
	if _, err := os.Stat(cfgFile); err != nil {
		if os.IsNotExist(err) && !cfgFlag.Changed {
			return vip, nil
		}
		return nil, Error.Wrap(err)
	}

	vip.SetConfigFile(cfgFile)
	if err := vip.ReadInConfig(); err != nil {
		return nil, Error.New("reading %q: %v", cfgFile, err)
	}
	return vip, nil
}

// ApplyConfig sets every flag not given on the command line to the value
// vip holds for it.
func ApplyConfig(flags *pflag.FlagSet, vip *viper.Viper) error {
	var group errs.Group
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == ConfigFlag || !vip.IsSet(f.Name) {
			return
		}
		if err := f.Value.Set(configString(vip.Get(f.Name))); err != nil {
			group.Add(Error.New("invalid value for %q: %v", f.Name, err))
			return
		}
		f.Changed = true
	})
	return group.Err()
}

func configString(value interface{}) string {
	switch value := value.(type) {
	case []interface{}:
		xs := make([]string, 0, len(value))
		for _, x := range value {
			xs = append(xs, fmt.Sprint(x))
		}
		return strings.Join(xs, ",")
	case []string:
		return strings.Join(value, ",")
	}
	return fmt.Sprint(value)
}

// Ctx returns a context that is canceled on SIGINT or SIGTERM.
func Ctx(cmd *cobra.Command) (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-signals:
			zap.L().Info("stopping", zap.String("command", cmd.Name()), zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(signals)
	}()

	return ctx, cancel
}

// Must checks for errors.
func Must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
