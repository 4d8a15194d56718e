package institutionservice

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// ChartPalette holds the colors rendered charts use.
type ChartPalette struct {
	Background drawing.Color
	Text       drawing.Color
	Bar        drawing.Color
}

// DefaultChartPalette is the house style applied when no palette is supplied.
func DefaultChartPalette() ChartPalette {
	return ChartPalette{
		Background: drawing.ColorFromHex("f8f5ef"),
		Text:       drawing.ColorFromHex("2d3142"),
		Bar:        drawing.ColorFromHex("1d5f8a"),
	}
}

// RenderStandingsChart produces a PNG bar chart of one group's ranked teams,
// total points per institution in standings order.
func RenderStandingsChart(group *sharedtypes.GroupStandings, palette ChartPalette) ([]byte, error) {
	if group.ConfigError != "" {
		return renderNoDataPlaceholder("Group configuration error", palette)
	}
	if len(group.Standings) == 0 {
		return renderNoDataPlaceholder("No eligible institutions", palette)
	}

	bars := make([]chart.Value, 0, len(group.Standings))
	for _, team := range group.Standings {
		bars = append(bars, chart.Value{
			Label: team.DisplayLabel,
			Value: float64(team.TotalPoints),
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.Bar,
			},
		})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("%s standings", group.GroupLabel),
		Width:    900,
		Height:   450,
		BarWidth: 60,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.Text,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: palette.Text,
			},
		},
		// Anchor the range at zero so a single bar, or bars of equal
		// height, still produce a drawable axis.
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(msg string, palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
		},
		YAxisSecondary: chart.YAxis{
			Style: chart.Hidden(),
		},
		// Render refuses an empty chart, so draw one span in the
		// background color underneath the message.
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style: chart.Style{
					StrokeColor: palette.Background,
				},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.Text)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
