package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/couchcryptid/weather-data-analysis/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// buildMarkdown renders the summary report. source names the input file and
// plotsDir the directory the chart section points readers at.
func buildMarkdown(result domain.Result, source, plotsDir string, generated time.Time) []byte {
	var b strings.Builder

	b.WriteString("# Weather Data Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generated.UTC().Format(time.RFC3339))

	b.WriteString("## 1. Introduction\n\n")
	b.WriteString("This report summarizes the cleaning, statistical analysis, and visualization " +
		"of local weather observations covering temperature, rainfall, and humidity.\n\n")

	writeDatasetOverview(&b, result, source)
	writeStatisticsSummary(&b, result)
	writeVisualizationInsights(&b, result, plotsDir)
	writeConclusion(&b, result)

	return []byte(b.String())
}

func writeDatasetOverview(b *strings.Builder, result domain.Result, source string) {
	first, last := datasetPeriod(result.Observations)
	imputed := 0
	for _, imp := range result.Clean.Imputations {
		imputed += imp.Count
	}

	b.WriteString("## 2. Dataset Overview\n\n")
	fmt.Fprintf(b, "* **Source:** `%s`\n", source)
	fmt.Fprintf(b, "* **Period:** %s to %s\n", first.Format("2006-01-02"), last.Format("2006-01-02"))
	fmt.Fprintf(b, "* **Records:** %d analyzed (%d rows dropped, %d values imputed)\n",
		result.Clean.RowsKept, result.Clean.RowsDropped, imputed)
	b.WriteString("* **Key Columns Analyzed:** Temperature, Rainfall, Humidity\n\n")
}

func writeStatisticsSummary(b *strings.Builder, result domain.Result) {
	s := result.Summary

	b.WriteString("## 3. Statistical Analysis Summary\n\n")
	b.WriteString("| Column | Mean | Min | Max | StdDev |\n")
	b.WriteString("|--------|------|-----|-----|--------|\n")
	writeStatsRow(b, "Temperature (°C)", s.Temperature)
	writeStatsRow(b, "Rainfall (mm)", s.Rainfall)
	writeStatsRow(b, "Humidity (%)", s.Humidity)
	b.WriteString("\nStandard deviations are population values (divisor N).\n\n")

	fmt.Fprintf(b, "* **Temperature:** averaged %.2f °C with a standard deviation of %.2f °C.\n",
		s.Temperature.Mean, s.Temperature.StdDev)
	fmt.Fprintf(b, "* **Rainfall:** daily totals averaged %.2f mm, peaking at %.2f mm.\n",
		s.Rainfall.Mean, s.Rainfall.Max)
	fmt.Fprintf(b, "* **Humidity:** levels averaged %.2f%% between %.2f%% and %.2f%%.\n\n",
		s.Humidity.Mean, s.Humidity.Min, s.Humidity.Max)

	b.WriteString("### Monthly Aggregation\n\n")
	b.WriteString("| Month | Avg Temp | Min Temp | Max Temp | Total Rainfall | Avg Humidity | Records |\n")
	b.WriteString("|-------|----------|----------|----------|----------------|--------------|---------|\n")
	for _, m := range result.Monthly {
		fmt.Fprintf(b, "| %s | %.2f | %.2f | %.2f | %.2f | %.2f | %d |\n",
			m.Label(), m.AvgTemperature, m.MinTemperature, m.MaxTemperature,
			m.TotalRainfall, m.AvgHumidity, m.Records)
	}
	b.WriteString("\n")
}

func writeStatsRow(b *strings.Builder, label string, cs domain.ColumnStats) {
	fmt.Fprintf(b, "| %s | %.2f | %.2f | %.2f | %.2f |\n", label, cs.Mean, cs.Min, cs.Max, cs.StdDev)
}

func writeVisualizationInsights(b *strings.Builder, result domain.Result, plotsDir string) {
	s := result.Summary

	b.WriteString("## 4. Visualization Insights\n\n")
	fmt.Fprintf(b, "All plots are saved as PNG files in the `%s` directory.\n\n", plotsDir)

	fmt.Fprintf(b, "### A. Daily Temperature Trend (%s)\n\n", chartTemperature)
	fmt.Fprintf(b, "The line chart tracks daily temperatures across the period; values ranged "+
		"from %.2f °C to %.2f °C.\n\n", s.Temperature.Min, s.Temperature.Max)

	fmt.Fprintf(b, "### B. Monthly Rainfall Totals (%s)\n\n", chartRainfall)
	if wettest, ok := wettestMonth(result.Monthly); ok {
		fmt.Fprintf(b, "The bar chart highlights the seasonal rainfall distribution; the wettest "+
			"month was %s with %.2f mm.\n\n", wettest.Label(), wettest.TotalRainfall)
	} else {
		b.WriteString("The bar chart highlights the seasonal rainfall distribution.\n\n")
	}

	fmt.Fprintf(b, "### C. Humidity vs. Temperature (%s)\n\n", chartScatter)
	fmt.Fprintf(b, "%s\n\n", correlationInsight(result.Observations))

	fmt.Fprintf(b, "### D. Daily Temperature and Humidity Trends (%s)\n\n", chartCombined)
	b.WriteString("The stacked panels align the temperature and humidity series on a shared " +
		"timeline for visual comparison.\n\n")
}

func writeConclusion(b *strings.Builder, result domain.Result) {
	b.WriteString("## 5. Conclusion\n\n")

	monthly := result.Monthly
	if len(monthly) == 0 {
		fmt.Fprintf(b, "The dataset covers %d observations but produced no monthly aggregates.\n",
			result.Summary.Records)
		return
	}
	if len(monthly) == 1 {
		m := monthly[0]
		fmt.Fprintf(b, "Average temperature in %s was %.2f °C with a rainfall total of %.2f mm. "+
			"A longer observation period would surface seasonal patterns.\n",
			m.Label(), m.AvgTemperature, m.TotalRainfall)
		return
	}

	coldest, warmest := monthly[0], monthly[0]
	for _, m := range monthly[1:] {
		if m.AvgTemperature < coldest.AvgTemperature {
			coldest = m
		}
		if m.AvgTemperature > warmest.AvgTemperature {
			warmest = m
		}
	}
	wettest, _ := wettestMonth(monthly)

	fmt.Fprintf(b, "Across %d observations, average temperature varied from %.2f °C in %s "+
		"to %.2f °C in %s, and %s recorded the highest rainfall total (%.2f mm). These "+
		"seasonal patterns can inform planning around the wettest and driest months.\n",
		result.Summary.Records, coldest.AvgTemperature, coldest.Label(),
		warmest.AvgTemperature, warmest.Label(), wettest.Label(), wettest.TotalRainfall)
}

// datasetPeriod returns the earliest and latest observation dates.
func datasetPeriod(obs []domain.Observation) (time.Time, time.Time) {
	if len(obs) == 0 {
		return time.Time{}, time.Time{}
	}
	first, last := obs[0].Date, obs[0].Date
	for _, o := range obs[1:] {
		if o.Date.Before(first) {
			first = o.Date
		}
		if o.Date.After(last) {
			last = o.Date
		}
	}
	return first, last
}

// wettestMonth returns the month with the highest rainfall total, ok=false
// when monthly is empty.
func wettestMonth(monthly []domain.MonthlyAggregate) (domain.MonthlyAggregate, bool) {
	if len(monthly) == 0 {
		return domain.MonthlyAggregate{}, false
	}
	wettest := monthly[0]
	for _, m := range monthly[1:] {
		if m.TotalRainfall > wettest.TotalRainfall {
			wettest = m
		}
	}
	return wettest, true
}

// correlationInsight describes the Pearson correlation between temperature
// and humidity. Zero-variance inputs make the coefficient undefined.
func correlationInsight(obs []domain.Observation) string {
	temps := make([]float64, len(obs))
	hums := make([]float64, len(obs))
	for i, o := range obs {
		temps[i] = o.Temperature
		hums[i] = o.Humidity
	}

	r := stat.Correlation(temps, hums, nil)
	if math.IsNaN(r) {
		return "The scatter plot shows no meaningful correlation between humidity and temperature."
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}
	strength := "weak"
	switch abs := math.Abs(r); {
	case abs >= 0.7:
		strength = "strong"
	case abs >= 0.3:
		strength = "moderate"
	}
	return fmt.Sprintf("The scatter plot suggests a %s %s correlation between humidity and "+
		"temperature (r = %.2f).", strength, direction, r)
}
