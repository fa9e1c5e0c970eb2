package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/menuforge/menuforge/layout"
	"github.com/menuforge/menuforge/renderer/canvaspdf"
	"github.com/menuforge/menuforge/store"
)

func newPDFCmd(configPath *string) *cobra.Command {
	var (
		output string
		debug  string
	)

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Export the menu as a PDF file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd.Context())
			env, err := setup(*configPath, logger)
			if err != nil {
				return err
			}
			defer env.close()

			doc, err := env.pipeline.BuildDocument(cmd.Context())
			if errors.Is(err, store.ErrNoActiveLayout) {
				return fmt.Errorf("no active print layout; run `menuforge import` first")
			}
			if err != nil {
				return err
			}

			if debug != "" {
				if err := layout.WriteDebugJSON(doc, debug); err != nil {
					return err
				}
				logger.Info("wrote page dump", "path", debug)
			}

			r := canvaspdf.New(canvaspdf.Options{
				Fonts:   env.fonts,
				Logger:  logger,
				BaseDir: env.cfg.AssetsDir,
			})
			pdf, err := r.Render(doc)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, pdf, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Info("wrote pdf", "path", output, "bytes", len(pdf),
				"pages", 2+len(doc.Pages)+len(doc.AllergensPages))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "menu.pdf", "output file")
	cmd.Flags().StringVar(&debug, "debug", "", "also write the paginated document as JSON")
	return cmd
}
