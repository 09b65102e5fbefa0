package web

import (
	"fmt"
	"strings"

	progressdto "thrivehub/internal/modules/progress/dto"
)

const (
	chartWidth   = 640
	chartHeight  = 220
	chartPadding = 32
)

type chartPoint struct {
	X, Y  float64
	Label string
	Value int
}

// chart is the progress history laid out for an inline SVG. Points are
// spaced evenly in insertion order, so repeated dates stay distinct.
type chart struct {
	Width, Height int
	Points        []chartPoint
	Polyline      string
	Baseline      float64
	Top           float64
	Left, Right   float64
}

func newChart(entries []progressdto.EntryOutput) chart {
	c := chart{
		Width:    chartWidth,
		Height:   chartHeight,
		Baseline: chartHeight - chartPadding,
		Top:      chartPadding,
		Left:     chartPadding,
		Right:    chartWidth - chartPadding,
	}
	if len(entries) == 0 {
		return c
	}
	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)
	coords := make([]string, 0, len(entries))
	for i, entry := range entries {
		x := c.Left + plotW/2
		if len(entries) > 1 {
			x = c.Left + plotW*float64(i)/float64(len(entries)-1)
		}
		y := c.Baseline - plotH*float64(entry.Value)/100
		c.Points = append(c.Points, chartPoint{X: x, Y: y, Label: entry.Date.String(), Value: entry.Value})
		coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	c.Polyline = strings.Join(coords, " ")
	return c
}
