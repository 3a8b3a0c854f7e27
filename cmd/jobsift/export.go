package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobsift/internal/console"
	"github.com/amishk599/jobsift/internal/export"
	"github.com/amishk599/jobsift/internal/triage"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the category stores to an XLSX workbook",
	Long:  "Writes one sheet per category with company, title, link and description columns.",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "jobsift.xlsx", "workbook path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	stores, err := triage.LoadStores(cfg.Files, logger)
	if err != nil {
		return err
	}

	if err := export.NewExporter(logger).WriteFile(exportOut, stores); err != nil {
		return err
	}

	con := console.NewTerminal(os.Stdout)
	con.Println(console.Success, "Exported %d jobs to %s", len(stores.Accepted)+len(stores.Rejected)+len(stores.NoDescription)+len(stores.Other), exportOut)
	return nil
}
