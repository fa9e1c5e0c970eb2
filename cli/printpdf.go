package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/menuforge/menuforge/renderer/browserprint"
)

func newPrintPDFCmd(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "printpdf",
		Short: "Print the running preview through headless Chrome",
		Long:  "Drives a headless browser against the preview URL of a running `menuforge serve` and saves the browser-printed PDF. Useful for checking that the preview and the native PDF paginate identically.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd.Context())
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			exporter := browserprint.New(browserprint.Options{
				ChromePath: cfg.ChromePath,
				Logger:     logger,
			})
			url := cfg.BaseURL + "/preview"
			pdf, err := exporter.ExportPDF(cmd.Context(), url)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, pdf, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Info("wrote browser-printed pdf", "path", output, "bytes", len(pdf), "url", url)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "menu-print.pdf", "output file")
	return cmd
}
