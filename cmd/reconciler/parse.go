package main

import (
	"github.com/spf13/cobra"

	"dirf-ecf-reconciliation/internal/extractor"
	"dirf-ecf-reconciliation/internal/gateway"
	"dirf-ecf-reconciliation/internal/usecase"
)

var parseCmd = &cobra.Command{
	Use:   "parse dirf|ecf <file>",
	Short: "Print the table extracted from a single DIRF or ECF file",
	Long: `parse shows what the extractor reads from one file. DIRF records include the
PIS, COFINS, CS and IR split and the VERIFICACAO residual.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := extractor.ParseFormat(args[0])
		if err != nil {
			return err
		}

		repo := gateway.NewFileSourceRepository(cfg.Ragged())
		printer := gateway.NewPrinter(cmd.OutOrStdout(), cfg.Format())

		switch kind {
		case extractor.FormatDIRF:
			records, err := repo.GetWithholdingRecords(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			usecase.AllocateAll(records)
			return printer.PrintWithholding(records)
		default:
			table, err := repo.GetBookkeepingTable(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			return printer.PrintBookkeeping(table)
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
