package main

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func prepareScatter(scatter *charts.Scatter) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Диаграмма Вороного (прямая сканирования)",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Ширина",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Высота",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// diagramToEcharts рисует сайты, вершины и обрезанные по прямоугольнику ребра.
func diagramToEcharts(res *result) *charts.Scatter {
	scatter := charts.NewScatter()
	prepareScatter(scatter)

	sites := make([]opts.ScatterData, 0, len(res.diagram.Sites))
	for _, s := range res.diagram.Sites {
		sites = append(sites, opts.ScatterData{Value: []int{s.X, s.Y}})
	}
	scatter.AddSeries("Сайты", sites).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	// вершины за пределами прямоугольника на графике не нужны
	w, h := res.params.Width, res.params.Height
	vertices := make([]opts.ScatterData, 0, len(res.diagram.Vertices))
	for _, v := range res.diagram.Vertices {
		if v.X < 0 || v.Y < 0 || v.X > w || v.Y > h {
			continue
		}
		vertices = append(vertices, opts.ScatterData{Value: []int{v.X, v.Y}, SymbolSize: 5})
	}
	scatter.AddSeries("Вершины", vertices).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "orange",
			}),
		)

	for _, seg := range res.segments {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
			charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
		)

		line.AddSeries("Границы", []opts.LineData{
			{Value: []float64{seg.A.X, seg.A.Y}},
			{Value: []float64{seg.B.X, seg.B.Y}},
		}).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 2,
			}),
		)

		scatter.Overlap(line)
	}

	return scatter
}
