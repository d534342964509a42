// Package report renders session review charts: match percentage over
// frame index, with summary statistics in the subtitle.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/romanvieito/gym-feedback-ai-9-4/internal/storage/sqlite"
)

// Summary aggregates a session's match percentages.
type Summary struct {
	Frames int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// Summarise computes summary statistics for a result set.
func Summarise(results []sqlite.MatchResult) Summary {
	if len(results) == 0 {
		return Summary{}
	}

	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = r.MatchPercent
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return Summary{
		Frames: len(values),
		Mean:   stat.Mean(values, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// RenderMatchChart writes an HTML line chart of match percentage over
// frame index for one session.
func RenderMatchChart(w io.Writer, sessionID string, results []sqlite.MatchResult) error {
	summary := Summarise(results)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Session %s", sessionID),
			Subtitle: fmt.Sprintf("%d frames, mean %.1f%%, median %.1f%%, range %.1f%% to %.1f%%",
				summary.Frames, summary.Mean, summary.Median, summary.Min, summary.Max),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "match %", Min: 0, Max: 100}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
	)

	xs := make([]string, len(results))
	data := make([]opts.LineData, len(results))
	for i, r := range results {
		xs[i] = fmt.Sprintf("%d", r.FrameIndex)
		data[i] = opts.LineData{Value: r.MatchPercent}
	}

	line.SetXAxis(xs).AddSeries("match percentage", data)
	return line.Render(w)
}
