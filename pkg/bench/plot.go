// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package bench

import (
	"image/color"
	"io/ioutil"
	"math"
	"time"

	"github.com/loov/plot"
)

var palette = map[Phase]color.Color{
	PhaseWrite:      color.NRGBA{0, 200, 0, 255},
	PhaseSequential: color.NRGBA{0, 0, 200, 255},
	PhaseRandom:     color.NRGBA{200, 0, 0, 255},
}

// Plot plots per-record latency densities into filename as an svg, one
// row per layout and one curve per phase.
func Plot(filename string, report *Report) error {
	strategies := strategiesOf(report)
	if len(strategies) == 0 {
		return Error.New("nothing to plot")
	}

	limit := latencyLimit(report)

	p := plot.New()
	p.X.Min = 0
	p.X.Max = limit
	p.X.MajorTicks = 10
	p.X.MinorTicks = 10

	rows := plot.NewVStack()
	rows.Margin = plot.R(5, 5, 5, 5)
	p.Add(rows)

	for _, strategy := range strategies {
		row := plot.NewHFlex()
		rows.Add(row)
		row.Add(70, plot.NewTextbox(strategy))

		group := []plot.Element{plot.NewGrid()}
		for _, phase := range Phases {
			result, ok := report.Find(strategy, phase)
			if !ok || len(result.Latencies) == 0 {
				continue
			}
			density := plot.NewDensity("µs", asMicroseconds(result.Latencies, limit))
			density.Stroke = palette[phase]
			group = append(group, density)
		}
		group = append(group, plot.NewTickLabels())

		latency := plot.NewAxisGroup()
		latency.X.Min = 0
		latency.X.Max = limit
		latency.X.MajorTicks = 10
		latency.X.MinorTicks = 10
		latency.Y.Min = 0
		latency.Y.Max = 1
		latency.AddGroup(group...)

		flex := plot.NewHFlex()
		flex.Add(90, plot.NewTextbox("latency (µs)"))
		flex.AddGroup(0, latency)
		row.Add(0, flex)
	}

	svgCanvas := plot.NewSVG(1500, 150*float64(len(strategies)))
	p.Draw(svgCanvas)

	return Error.Wrap(ioutil.WriteFile(filename, svgCanvas.Bytes(), 0644))
}

func strategiesOf(report *Report) []string {
	var strategies []string
	seen := map[string]bool{}
	for _, result := range report.Results {
		if !seen[result.Strategy] {
			seen[result.Strategy] = true
			strategies = append(strategies, result.Strategy)
		}
	}
	return strategies
}

// latencyLimit returns the largest p99 latency in microseconds, so a few
// outliers do not flatten every curve.
func latencyLimit(report *Report) float64 {
	limit := 1.0
	for _, result := range report.Results {
		p99 := float64(result.Percentile(0.99)) / float64(time.Microsecond)
		limit = math.Max(limit, p99)
	}
	return math.Ceil(limit)
}

func asMicroseconds(durations []time.Duration, limit float64) []float64 {
	xs := make([]float64, 0, len(durations))
	for _, dur := range durations {
		xs = append(xs, math.Min(float64(dur)/float64(time.Microsecond), limit))
	}
	return xs
}
