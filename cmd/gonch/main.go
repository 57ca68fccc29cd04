package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/gonch-sh/gonch/internal/config"
	"github.com/gonch-sh/gonch/internal/core"
	"github.com/gonch-sh/gonch/internal/history"
	"github.com/gonch-sh/gonch/internal/render"
	"github.com/gonch-sh/gonch/internal/resolver"
	"github.com/gonch-sh/gonch/internal/shell"
	"github.com/gonch-sh/gonch/internal/styles"
	"github.com/gonch-sh/gonch/internal/trust"
)

var BUILD_VERSION = "dev"

//go:embed .gonchrc.default
var defaultRcContent string

var (
	nameFlag  string
	shellFlag string
	fileFlag  string
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:     "gonch",
	Short:   "Customizes your Go shell",
	Version: BUILD_VERSION,
	Long: `gonch starts a customized interactive Go session.

It loads a .gonchrc configuration script from the current directory (or an
ancestor), injects the configured context variables into the session, and
starts one of the available shell backends.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launch()
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "named config to use")
	rootCmd.Flags().StringVarP(&shellFlag, "shell", "s", "",
		fmt.Sprintf("shell backend to use (one of %v); overrides the config file", shell.Names()))
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "path of the config file to execute")

	rootCmd.AddCommand(initCmd, editCmd, allowCmd, denyCmd, trustedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}
}

func initializeLogger() (*zap.Logger, error) {
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	if debugFlag || BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	// Logs only go to file to avoid interfering with the interactive UI.
	// Use `tail -f ~/.gonch/gonch.log` to monitor logs in real-time.

	return loggerConfig.Build()
}

func launch() error {
	logger, err := initializeLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("-------- new gonch session --------", zap.Any("args", os.Args))

	configFile, err := findConfigFile()
	if err != nil {
		return err
	}

	registry := config.NewRegistry()
	if configFile != "" {
		if err := ensureTrusted(configFile); err != nil {
			return err
		}

		result, err := config.NewLoader(logger).LoadFromFile(configFile)
		if err != nil {
			return err
		}
		for _, loadErr := range result.Errors {
			fmt.Fprintln(os.Stderr, styles.WARNING(loadErr.Error()))
		}
		registry = result.Registry
		logger.Info("loaded config file",
			zap.String("path", configFile),
			zap.Strings("profiles", registry.Names()))
	} else {
		fmt.Fprintln(os.Stderr, styles.LOG("no config file found, using defaults"))
	}

	if nameFlag != "" {
		if _, ok := registry.Get(nameFlag); !ok {
			logger.Debug("named config not found, using default", zap.String("name", nameFlag))
		}
	}
	cfg := registry.Resolve(nameFlag)

	// The command line wins over the config file.
	if shellFlag != "" {
		cfg.Shell = shellFlag
	}

	bannerText := cfg.Banner
	if bannerText == "" {
		bannerText = config.Speak()
	}
	banner := render.Banner(render.BannerInfo{
		Version:     runtime.Version(),
		Text:        bannerText,
		Context:     cfg.Context,
		HideContext: cfg.HideContext,
	}, terminalWidth())

	var historyManager *history.Manager
	historyManager, err = history.NewManager(core.HistoryFile())
	if err != nil {
		logger.Warn("history disabled", zap.Error(err))
		historyManager = nil
	}

	sh := shell.New(cfg.Shell, shell.Options{
		Context: cfg.Context,
		Banner:  banner,
		Prompt:  cfg.Prompt,
		Output:  cfg.Output,
		History: historyManager,
		Logger:  logger,
	})

	err = sh.Start(context.Background())
	if errors.Is(err, shell.ErrShellNotAvailable) {
		return fmt.Errorf("shell backend %q: %w", cfg.Shell, err)
	}
	return err
}

// findConfigFile returns the config file to execute: the explicit --file
// path (which must exist), or the nearest .gonchrc found by walking up
// from the working directory. Empty means no config file.
func findConfigFile() (string, error) {
	if fileFlag != "" {
		abs, err := filepath.Abs(fileFlag)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(abs); err != nil {
			return "", fmt.Errorf("config file %s not found", abs)
		}
		return abs, nil
	}

	path, err := resolver.Resolve(core.ConfigFileName)
	if errors.Is(err, resolver.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// ensureTrusted gates execution of the config file on the trust store,
// prompting the user when the file is new or has changed.
func ensureTrusted(configFile string) error {
	store, err := trust.NewStore(core.TrustFile())
	if err != nil {
		return err
	}

	state, err := store.Check(configFile)
	if err != nil {
		return err
	}
	if state == trust.StateTrusted {
		return nil
	}

	if !trust.Confirm(os.Stdin, os.Stderr, configFile, state) {
		return fmt.Errorf("not executing untrusted config file %s (use `gonch allow` to trust it)", configFile)
	}
	return store.Allow(configFile)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
