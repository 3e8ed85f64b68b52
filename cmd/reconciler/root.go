package main

import (
	"github.com/spf13/cobra"

	"dirf-ecf-reconciliation/internal/config"
	"dirf-ecf-reconciliation/internal/logger"
)

var (
	cfgFile  string
	envFile  string
	logLevel string
	format   string

	keyPolicy    string
	raggedPolicy string

	// cfg is filled by the root PersistentPreRunE before any subcommand runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "reconciler",
	Short: "Cross-check DIRF withholding against SPED ECF Y570 entries",
	Long: `reconciler reads a DIRF text export and a SPED ECF text export, splits the
DIRF withheld amounts into PIS, COFINS, CSLL and IR by income code, sums both
sources per CNPJ/CPF and reports the IR and CSLL differences.

Example Usage:
  reconciler run --dirf dirf.txt --ecf ecf.txt
  reconciler run --dirf dirf.txt --ecf ecf.txt --format json --no-export
  reconciler parse ecf ecf.txt`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}

		loaded, err := config.Load(cfgFile, !cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if cmd.Flags().Changed("format") {
			loaded.OutputFormat = format
		}
		if cmd.Flags().Changed("key-policy") {
			loaded.KeyPolicy = keyPolicy
		}
		if cmd.Flags().Changed("ragged-policy") {
			loaded.RaggedPolicy = raggedPolicy
		}
		if err := loaded.Validate(); err != nil {
			return err
		}

		cfg = loaded
		logger.Init(cfg.LogLevel, cmd.ErrOrStderr())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "reconciler.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional .env file with RECONCILER_* variables")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "Screen output: table or json")
	rootCmd.PersistentFlags().StringVar(&keyPolicy, "key-policy", "trim", "CNPJ/CPF normalization before joining: trim or digits")
	rootCmd.PersistentFlags().StringVar(&raggedPolicy, "ragged-policy", "exclude", "ECF rows with a field count unlike the first row: exclude or pad (full SPED exports start with a narrower |0000| record and need pad)")
}
