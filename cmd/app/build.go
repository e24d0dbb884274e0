package main

import (
	"fmt"

	"github.com/0x0FACED/go-sweepline/pkg/config"
	"github.com/0x0FACED/go-sweepline/pkg/export"
	"github.com/0x0FACED/go-sweepline/pkg/logger"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	formatGeoJSON = "geojson"
	formatWKT     = "wkt"
)

func newBuildCmd(app *appCtx) *cobra.Command {
	var (
		flags  config.Diagram
		format string
	)

	cmd := &cobra.Command{
		Use:   "build [--width=W --height=H --sites=N --random --seed=S] [--format=geojson|wkt]",
		Short: "построить диаграмму и напечатать ее",
		Long: `
Строит диаграмму для сетки или случайного набора сайтов и печатает ее в stdout.
Ребра обрезаются прямоугольником [0, width] x [0, height].

С --debug журнал построения печатается в stderr.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := mergeDiagramFlags(app.cfg.Diagram, flags, cmd.Flags())
			if err := p.Validate(); err != nil {
				return err
			}
			if format != formatGeoJSON && format != formatWKT {
				return errors.Newf("unknown format %q, want %s or %s", format, formatGeoJSON, formatWKT)
			}

			log := logger.NewNop()
			if p.Debug {
				log = newRequestLogger(p)
				defer func() { fmt.Fprint(cmd.ErrOrStderr(), log.Text()) }()
			}

			res, err := buildDiagram(cmd.Context(), p, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatWKT {
				sites, edges, err := export.WKT(res.diagram, res.segments)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, sites)
				fmt.Fprintln(out, edges)
				return nil
			}

			data, err := export.GeoJSON(res.diagram, res.segments)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.Width, "width", 0, "ширина прямоугольника")
	f.IntVar(&flags.Height, "height", 0, "высота прямоугольника")
	f.IntVar(&flags.Sites, "sites", 0, "количество сайтов")
	f.BoolVar(&flags.Random, "random", false, "случайные сайты вместо сетки")
	f.Int64Var(&flags.Seed, "seed", 0, "seed генератора случайных сайтов")
	f.BoolVar(&flags.Debug, "debug", false, "печатать журнал построения")
	f.StringVar(&format, "format", formatGeoJSON, "формат вывода: geojson или wkt")
	return cmd
}

// mergeDiagramFlags берет из флагов только явно заданные значения.
func mergeDiagramFlags(base, flags config.Diagram, set *pflag.FlagSet) config.Diagram {
	p := base
	if set.Changed("width") {
		p.Width = flags.Width
	}
	if set.Changed("height") {
		p.Height = flags.Height
	}
	if set.Changed("sites") {
		p.Sites = flags.Sites
	}
	if set.Changed("random") {
		p.Random = flags.Random
	}
	if set.Changed("seed") {
		p.Seed = flags.Seed
	}
	if set.Changed("debug") {
		p.Debug = flags.Debug
	}
	return p
}
