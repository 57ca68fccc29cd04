package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gonch-sh/gonch/internal/core"
	"github.com/gonch-sh/gonch/internal/resolver"
	"github.com/gonch-sh/gonch/internal/trust"
)

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Create a starter .gonchrc file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile := core.ConfigFileName
		if len(args) > 0 {
			configFile = args[0]
		}

		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("%s already exists in this directory", configFile)
		}

		if err := os.WriteFile(configFile, []byte(defaultRcContent), 0644); err != nil {
			return err
		}

		store, err := trust.NewStore(core.TrustFile())
		if err != nil {
			return err
		}
		if err := store.Allow(configFile); err != nil {
			return err
		}

		fmt.Printf("Initialized gonch. Edit %s to your needs and run `gonch` to start an interactive session.\n", configFile)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Open the config file in $EDITOR and re-trust it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, err := argOrResolved(args)
		if err != nil {
			return err
		}

		editor := os.Getenv("GONCH_EDITOR")
		if editor == "" {
			editor = os.Getenv("EDITOR")
		}
		if editor == "" {
			editor = "vi"
		}

		editorCmd := exec.Command(editor, configFile)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr
		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("editor exited with an error: %w", err)
		}

		// The user just wrote the file, so it is trusted by definition.
		store, err := trust.NewStore(core.TrustFile())
		if err != nil {
			return err
		}
		return store.Allow(configFile)
	},
}

var allowCmd = &cobra.Command{
	Use:   "allow [file]",
	Short: "Trust a config file in its current form",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, err := argOrResolved(args)
		if err != nil {
			return err
		}

		store, err := trust.NewStore(core.TrustFile())
		if err != nil {
			return err
		}
		if err := store.Allow(configFile); err != nil {
			return err
		}

		fmt.Printf("Trusted %s\n", configFile)
		return nil
	},
}

var denyCmd = &cobra.Command{
	Use:   "deny [file]",
	Short: "Revoke trust in a config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, err := argOrResolved(args)
		if err != nil {
			return err
		}

		store, err := trust.NewStore(core.TrustFile())
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(configFile)
		if err != nil {
			return err
		}
		if err := store.Deny(abs); err != nil {
			return err
		}

		fmt.Printf("Removed %s from the trust store\n", abs)
		return nil
	},
}

var trustedCmd = &cobra.Command{
	Use:   "trusted",
	Short: "List trusted config files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := trust.NewStore(core.TrustFile())
		if err != nil {
			return err
		}

		entries := store.Entries()
		if len(entries) == 0 {
			fmt.Println("No trusted config files.")
			return nil
		}

		paths := make([]string, 0, len(entries))
		for path := range entries {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		for _, path := range paths {
			entry := entries[path]
			fmt.Printf("%s\t%s\t(allowed %s)\n", path, shortDigest(entry.Digest), humanize.Time(entry.AllowedAt))
		}
		return nil
	},
}

// argOrResolved returns the file named on the command line, or the nearest
// .gonchrc when none was given.
func argOrResolved(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	path, err := resolver.Resolve(core.ConfigFileName)
	if errors.Is(err, resolver.ErrNotFound) {
		return "", fmt.Errorf("no %s found; pass a file path explicitly", core.ConfigFileName)
	}
	return path, err
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
