package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/menuforge/menuforge/menu"
	"github.com/menuforge/menuforge/menudsl"
)

func newImportCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.menu>",
		Short: "Load a menu seed file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd.Context())
			env, err := setup(*configPath, logger)
			if err != nil {
				return err
			}
			defer env.close()

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			parsed, err := menudsl.Parse(args[0], file)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			set, err := menudsl.Build(parsed)
			if err != nil {
				return err
			}
			if err := env.store.ReplaceMenu(cmd.Context(), set); err != nil {
				return err
			}
			logger.Info("imported menu", "name", string(parsed.Name),
				"categories", len(set.Categories), "products", len(set.Products))

			// seed a default layout so the preview works right away
			layouts, err := env.store.Layouts(cmd.Context())
			if err != nil {
				return err
			}
			if len(layouts) == 0 {
				l := menu.DefaultPrintLayout()
				l.Name = "Default"
				if err := env.store.SaveLayout(cmd.Context(), &l); err != nil {
					return err
				}
				if err := env.store.ActivateLayout(cmd.Context(), l.ID); err != nil {
					return err
				}
				logger.Info("created default print layout", "id", l.ID)
			}
			return nil
		},
	}
	return cmd
}
