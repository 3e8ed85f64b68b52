package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dirf-ecf-reconciliation/internal/gateway"
	"dirf-ecf-reconciliation/internal/logger"
	"dirf-ecf-reconciliation/internal/usecase"
)

var (
	dirfFile   string
	ecfFile    string
	outputFile string
	noExport   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile a DIRF file against a SPED ECF file",
	Long: `run parses both files, reconciles them per CNPJ/CPF, prints the consolidated
table and the grand total, and exports a workbook with the Consolidado, DIRF
and ECF sheets.

Lines that do not match the expected layouts are skipped. A file with no usable
lines is reported as empty, not as an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("out") {
			cfg.OutputFile = outputFile
		}
		if noExport {
			cfg.OutputFile = ""
		}
		return runReconcile(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&dirfFile, "dirf", "", "Path to the DIRF .txt file (required)")
	runCmd.Flags().StringVar(&ecfFile, "ecf", "", "Path to the SPED ECF .txt file (required)")
	runCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Workbook to write (default from config: analise_dirf_ecf.xlsx)")
	runCmd.Flags().BoolVar(&noExport, "no-export", false, "Only print, do not write the workbook")
	_ = runCmd.MarkFlagRequired("dirf")
	_ = runCmd.MarkFlagRequired("ecf")
}

func runReconcile(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runID := uuid.NewString()
	log := logger.L.With("run_id", runID)
	ctx = logger.WithContext(ctx, log)

	log.Info("Starting reconciliation", "dirf", dirfFile, "ecf", ecfFile,
		"key_policy", cfg.KeyPolicy, "ragged_policy", cfg.RaggedPolicy)

	// --- Dependency Injection (Wiring the application) ---
	repo := gateway.NewFileSourceRepository(cfg.Ragged())
	exporter := gateway.NewXLSXExporter()
	uc := usecase.NewReconciliationUseCase(repo, exporter, usecase.Options{
		KeyPolicy: cfg.Keys(),
		RunID:     runID,
	})

	// --- Execute the Usecase ---
	report, err := uc.Reconcile(ctx, dirfFile, ecfFile)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Reconciliation interrupted")
		}
		return err
	}

	// --- Present the Output ---
	if err := gateway.NewPrinter(cmd.OutOrStdout(), cfg.Format()).PrintReport(report); err != nil {
		return err
	}

	if cfg.OutputFile == "" {
		return nil
	}
	return uc.Export(ctx, cfg.OutputFile, report)
}
