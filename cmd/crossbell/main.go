// Package main provides the crossbell CLI: a command-line front end over
// the link-graph and note ledger engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iavl/crossbell/internal/modules"
	"github.com/iavl/crossbell/pkg/entry"
	"github.com/iavl/crossbell/pkg/types"
)

// Well-known addresses the CLI registers its built-in modules under.
const (
	approvalMintModuleAddr = types.Address("module:approval-mint")
	approvalLinkModuleAddr = types.Address("module:approval-link")
)

var (
	// configFile is set by the --config flag.
	configFile string

	// caller is the identity mutations run as, set by the --as flag.
	caller string

	// ledger is the global engine instance, initialized on startup.
	ledger types.Entry

	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crossbell",
	Short: "Crossbell is a social-graph and note ledger",
	Long: `Crossbell manages profiles, typed links between them, published notes,
and per-note issuance contracts through a single-writer ledger engine.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initLedger,
	PersistentPostRunE: closeLedger,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: .crossbell/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&caller, "as", "", "address mutations run as")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(mintCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(eventsCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the ledger storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The ledger is attached by PersistentPreRunE; just confirm.
		fmt.Println("Ledger initialized successfully")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("crossbell v0.1.0")
	},
}

// initLedger loads config, builds the logger, and attaches the engine.
func initLedger(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err = zap.NewProduction()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	e := entry.New(logger)
	if err := e.Attach(cfg); err != nil {
		return fmt.Errorf("attach ledger: %w", err)
	}

	// Built-in modules are registered under well-known addresses so notes
	// and categories can reference them by name.
	if err := e.RegisterMintModule(approvalMintModuleAddr, modules.NewApprovalMintModule()); err != nil {
		return fmt.Errorf("register mint module: %w", err)
	}
	if err := e.RegisterLinkModule(approvalLinkModuleAddr, modules.NewApprovalLinkModule()); err != nil {
		return fmt.Errorf("register link module: %w", err)
	}

	ledger = e
	return nil
}

// closeLedger detaches the engine and flushes the logger.
func closeLedger(cmd *cobra.Command, args []string) error {
	if logger != nil {
		defer logger.Sync()
	}
	if ledger != nil {
		return ledger.Detach()
	}
	return nil
}

// callerAddr returns the --as identity, required for mutations.
func callerAddr() (types.Address, error) {
	if caller == "" {
		return types.AddressZero, fmt.Errorf("--as is required for this command")
	}
	return types.Address(caller), nil
}
