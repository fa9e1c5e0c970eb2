package cli

import (
	"github.com/spf13/cobra"

	"github.com/menuforge/menuforge/renderer/canvaspdf"
	"github.com/menuforge/menuforge/renderer/htmlpreview"
	"github.com/menuforge/menuforge/server"
)

func newServeCmd(configPath *string) *cobra.Command {
	var overlay bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTML preview and the PDF download",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd.Context())
			env, err := setup(*configPath, logger)
			if err != nil {
				return err
			}
			defer env.close()

			srv := server.New(server.Options{
				Pipeline: env.pipeline,
				Store:    env.store,
				Preview: htmlpreview.New(htmlpreview.Options{
					WebfontURL:    env.cfg.WebfontURL,
					MarginOverlay: overlay,
					EventsPath:    "/events",
				}),
				PDF: canvaspdf.New(canvaspdf.Options{
					Fonts:   env.fonts,
					Logger:  logger,
					BaseDir: env.cfg.AssetsDir,
				}),
				Logger: logger,
			})
			return srv.Serve(cmd.Context(), env.cfg.Listen)
		},
	}
	cmd.Flags().BoolVar(&overlay, "overlay", false, "draw the content margins in the preview")
	return cmd
}
