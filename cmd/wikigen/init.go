package main

import (
	"fmt"
	"os"
	"path/filepath"

	"wikigen/internal/wikiconfig"

	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .wikigen/config.json in the current repository",
	Long:  "Creates a .wikigen directory with default configuration in the current repository root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing .wikigen/config.json")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, ".wikigen", "config.json")
	if _, statErr := os.Stat(configPath); statErr == nil && !initForce {
		fmt.Println("wikigen already initialized.")
		fmt.Printf("Configuration at: %s\n", configPath)
		fmt.Println("\nRun 'wikigen init --force' to overwrite it.")
		return nil
	}

	cfg := wikiconfig.DefaultConfig()
	cfg.RepoRoot = "."
	if err := cfg.Save(cwd); err != nil {
		return err
	}

	fmt.Printf("Configuration written to: %s\n", configPath)
	fmt.Println("\nNext step: run 'wikigen build' to generate the wiki.")
	return nil
}
