package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"github.com/couchcryptid/weather-data-analysis/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Chart file names, fixed so downstream consumers can link to them.
const (
	chartTemperature = "temperature_line_chart.png"
	chartRainfall    = "rainfall_bar_chart.png"
	chartScatter     = "humidity_temp_scatter_plot.png"
	chartCombined    = "combined_temp_humidity_subplots.png"
)

// Tableau palette values used across the charts.
var (
	colorTemperature = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorRainfall    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorScatter     = color.NRGBA{R: 44, G: 160, B: 44, A: 153}
	colorHumidity    = color.RGBA{R: 148, G: 103, B: 189, A: 255}
)

// renderCharts writes the four chart PNGs into dir and returns the paths
// written, in order.
func renderCharts(dir string, result domain.Result) ([]string, error) {
	charts := []struct {
		name   string
		width  vg.Length
		height vg.Length
		build  func() (*plot.Plot, error)
	}{
		{chartTemperature, 12 * vg.Inch, 6 * vg.Inch, func() (*plot.Plot, error) { return temperatureChart(result.Observations) }},
		{chartRainfall, 12 * vg.Inch, 6 * vg.Inch, func() (*plot.Plot, error) { return rainfallChart(result.Monthly) }},
		{chartScatter, 8 * vg.Inch, 6 * vg.Inch, func() (*plot.Plot, error) { return scatterChart(result.Observations) }},
	}

	written := make([]string, 0, len(charts)+1)
	for _, c := range charts {
		p, err := c.build()
		if err != nil {
			return written, fmt.Errorf("build %s: %w", c.name, err)
		}
		path := filepath.Join(dir, c.name)
		if err := p.Save(c.width, c.height, path); err != nil {
			return written, fmt.Errorf("save %s: %w", c.name, err)
		}
		written = append(written, path)
	}

	path := filepath.Join(dir, chartCombined)
	if err := writeCombinedChart(path, result.Observations); err != nil {
		return written, fmt.Errorf("save %s: %w", chartCombined, err)
	}
	return append(written, path), nil
}

// chronoSeries extracts (date, value) points in date order. Sorting a copy
// keeps the line coherent when the input file was not chronological.
func chronoSeries(obs []domain.Observation, value func(domain.Observation) float64) plotter.XYs {
	sorted := make([]domain.Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	pts := make(plotter.XYs, len(sorted))
	for i, o := range sorted {
		pts[i].X = float64(o.Date.Unix())
		pts[i].Y = value(o)
	}
	return pts
}

func temperatureChart(obs []domain.Observation) (*plot.Plot, error) {
	line, err := plotter.NewLine(chronoSeries(obs, func(o domain.Observation) float64 { return o.Temperature }))
	if err != nil {
		return nil, err
	}
	line.Color = colorTemperature
	line.Width = vg.Points(1.5)

	p := plot.New()
	p.Title.Text = "Daily Temperature Trend"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Temperature (°C)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid(), line)
	return p, nil
}

func rainfallChart(monthly []domain.MonthlyAggregate) (*plot.Plot, error) {
	values := make(plotter.Values, len(monthly))
	labels := make([]string, len(monthly))
	for i, m := range monthly {
		values[i] = m.TotalRainfall
		labels[i] = m.Label()
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.Color = colorRainfall
	bars.LineStyle.Width = 0

	p := plot.New()
	p.Title.Text = "Monthly Rainfall Totals"
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Total Rainfall (mm)"
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

func scatterChart(obs []domain.Observation) (*plot.Plot, error) {
	pts := make(plotter.XYs, len(obs))
	for i, o := range obs {
		pts[i].X = o.Temperature
		pts[i].Y = o.Humidity
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = colorScatter
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	p := plot.New()
	p.Title.Text = "Humidity vs. Temperature"
	p.X.Label.Text = "Temperature (°C)"
	p.Y.Label.Text = "Humidity (%)"
	p.Add(plotter.NewGrid(), scatter)
	return p, nil
}

// writeCombinedChart renders the stacked temperature and humidity panels
// into a single PNG.
func writeCombinedChart(path string, obs []domain.Observation) error {
	top, err := linePanel(obs, func(o domain.Observation) float64 { return o.Temperature }, colorTemperature, "Temperature (°C)")
	if err != nil {
		return err
	}
	top.Title.Text = "Daily Temperature and Humidity Trends"

	bottom, err := linePanel(obs, func(o domain.Observation) float64 { return o.Humidity }, colorHumidity, "Humidity (%)")
	if err != nil {
		return err
	}
	bottom.X.Label.Text = "Date"

	plots := [][]*plot.Plot{{top}, {bottom}}

	img := vgimg.New(12*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)
	canvases := plot.Align(plots, draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Millimeter}, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// linePanel builds one panel of the combined figure.
func linePanel(obs []domain.Observation, value func(domain.Observation) float64, c color.Color, yLabel string) (*plot.Plot, error) {
	line, err := plotter.NewLine(chronoSeries(obs, value))
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(1.5)

	p := plot.New()
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid(), line)
	return p, nil
}
