package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obsAt(year int, month time.Month, day int, temp, rain, hum float64) Observation {
	return Observation{
		Date:        time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Temperature: temp,
		Rainfall:    rain,
		Humidity:    hum,
	}
}

func TestSummarize(t *testing.T) {
	t.Run("known population statistics", func(t *testing.T) {
		// Textbook set: mean 5, population stddev exactly 2.
		values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
		obs := make([]Observation, len(values))
		for i, v := range values {
			obs[i] = obsAt(2024, time.January, i+1, v, v, v)
		}

		s, err := Summarize(obs)

		require.NoError(t, err)
		assert.Equal(t, 8, s.Records)
		assert.InDelta(t, 5.0, s.Temperature.Mean, 1e-12)
		assert.Equal(t, 2.0, s.Temperature.Min)
		assert.Equal(t, 9.0, s.Temperature.Max)
		assert.InDelta(t, 2.0, s.Temperature.StdDev, 1e-12)
		assert.InDelta(t, 2.0, s.Rainfall.StdDev, 1e-12)
		assert.InDelta(t, 2.0, s.Humidity.StdDev, 1e-12)
	})

	t.Run("single observation", func(t *testing.T) {
		s, err := Summarize([]Observation{obsAt(2024, time.March, 1, 21.5, 3, 55)})

		require.NoError(t, err)
		assert.Equal(t, 1, s.Records)
		assert.Equal(t, 21.5, s.Temperature.Mean)
		assert.Equal(t, 21.5, s.Temperature.Min)
		assert.Equal(t, 21.5, s.Temperature.Max)
		assert.Equal(t, 0.0, s.Temperature.StdDev)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Summarize(nil)
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})
}

func TestAggregateMonthly(t *testing.T) {
	t.Run("groups by calendar month", func(t *testing.T) {
		obs := []Observation{
			obsAt(2024, time.January, 5, 20, 0, 60),
			obsAt(2024, time.January, 15, 22.5, 5, 65),
			obsAt(2024, time.February, 1, 25, 10, 70),
		}

		monthly := AggregateMonthly(obs)

		require.Len(t, monthly, 2)

		jan := monthly[0]
		assert.Equal(t, 2024, jan.Year)
		assert.Equal(t, time.January, jan.Month)
		assert.InDelta(t, 21.25, jan.AvgTemperature, 1e-12)
		assert.Equal(t, 20.0, jan.MinTemperature)
		assert.Equal(t, 22.5, jan.MaxTemperature)
		assert.Equal(t, 5.0, jan.TotalRainfall)
		assert.InDelta(t, 62.5, jan.AvgHumidity, 1e-12)
		assert.Equal(t, 2, jan.Records)

		feb := monthly[1]
		assert.Equal(t, time.February, feb.Month)
		assert.Equal(t, 25.0, feb.AvgTemperature)
		assert.Equal(t, 10.0, feb.TotalRainfall)
		assert.Equal(t, 1, feb.Records)
	})

	t.Run("sorted ascending across years", func(t *testing.T) {
		obs := []Observation{
			obsAt(2024, time.January, 10, 5, 0, 80),
			obsAt(2023, time.December, 20, 3, 12, 85),
			obsAt(2023, time.November, 1, 8, 2, 75),
		}

		monthly := AggregateMonthly(obs)

		require.Len(t, monthly, 3)
		assert.Equal(t, "2023-11", monthly[0].Label())
		assert.Equal(t, "2023-12", monthly[1].Label())
		assert.Equal(t, "2024-01", monthly[2].Label())
	})

	t.Run("record counts partition the input", func(t *testing.T) {
		obs := []Observation{
			obsAt(2024, time.January, 1, 10, 0, 50),
			obsAt(2024, time.January, 2, 11, 1, 51),
			obsAt(2024, time.February, 3, 12, 2, 52),
			obsAt(2024, time.April, 4, 13, 3, 53),
			obsAt(2024, time.April, 5, 14, 4, 54),
			obsAt(2024, time.April, 6, 15, 5, 55),
		}

		monthly := AggregateMonthly(obs)

		total := 0
		for _, m := range monthly {
			total += m.Records
		}
		assert.Equal(t, len(obs), total)
		// March is absent, not zero-filled.
		require.Len(t, monthly, 3)
		assert.Equal(t, time.April, monthly[2].Month)
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		assert.Empty(t, AggregateMonthly(nil))
	})
}

func TestMonthlyAggregateLabel(t *testing.T) {
	assert.Equal(t, "2024-03", MonthlyAggregate{Year: 2024, Month: 3}.Label())
	assert.Equal(t, "0999-12", MonthlyAggregate{Year: 999, Month: 12}.Label())
}
