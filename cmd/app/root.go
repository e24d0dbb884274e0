package main

import (
	"github.com/0x0FACED/go-sweepline/pkg/config"
	"github.com/spf13/cobra"
)

// appCtx - состояние, общее для подкоманд.
type appCtx struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	app := &appCtx{}

	root := &cobra.Command{
		Use:   "app",
		Short: "диаграмма Вороного методом прямой сканирования",
		Long: `
Строит диаграмму Вороного для целочисленных сайтов алгоритмом Форчуна.

serve поднимает страницу просмотра с графиком и журналом построения,
build печатает готовую диаграмму в GeoJSON или WKT.
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.configPath)
			if err != nil {
				return err
			}
			app.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&app.configPath, "config", "", "путь к YAML-файлу настроек")

	root.AddCommand(newServeCmd(app), newBuildCmd(app))
	return root
}
