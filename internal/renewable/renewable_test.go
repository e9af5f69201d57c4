package renewable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeather_Table(t *testing.T) {
	cases := []struct {
		in      string
		want    Weather
		wantErr bool
	}{
		{"sunny", WeatherSunny, false},
		{"Partially_Cloudy", WeatherPartiallyCloudy, false},
		{" cloudy ", WeatherCloudy, false},
		{"rainy", WeatherRainy, false},
		{"stormy", WeatherStormy, false},
		{"foggy", WeatherUnknown, true},
		{"", WeatherUnknown, true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseWeather(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeather)
			} else {
				require.NoError(t, err)
				assert.True(t, got.Valid())
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWeatherString(t *testing.T) {
	for w := WeatherSunny; w <= WeatherStormy; w++ {
		back, err := ParseWeather(w.String())
		require.NoError(t, err)
		assert.Equal(t, w, back)
	}
	assert.Equal(t, "unknown", Weather(99).String())
	assert.False(t, WeatherUnknown.Valid())
}

func TestHourlyProduction_SolarCurve(t *testing.T) {
	hours := HourlyProduction(WeatherSunny)
	require.Len(t, hours, 24)

	cases := map[int]float64{
		0:  0,
		5:  0,
		6:  0, // parabola reaches zero at the edge of daylight
		10: 4.08,
		12: 4.9,
		13: 5,
		14: 4.9,
		20: 0,
		23: 0,
	}
	for h, want := range cases {
		assert.InDelta(t, want, hours[h].SolarKWh, 1e-9, "hour %d", h)
	}
}

func TestHourlyProduction_WeatherFactors(t *testing.T) {
	cases := []struct {
		w         Weather
		noonSolar float64
		sixAMWind float64 // baseline 2.5 at 6 h
	}{
		{WeatherSunny, 5, 2.5 * 0.7 * 0.5},
		{WeatherPartiallyCloudy, 3.5, 2.5 * 0.8 * 0.75},
		{WeatherCloudy, 1.5, 2.5 * 0.9 * 1},
		{WeatherRainy, 0.5, 2.5 * 1.1 * 1.25},
		{WeatherStormy, 0.25, 8.5},
	}

	for _, tc := range cases {
		t.Run(tc.w.String(), func(t *testing.T) {
			hours := HourlyProduction(tc.w)
			assert.InDelta(t, tc.noonSolar, hours[13].SolarKWh, 1e-9)
			assert.InDelta(t, tc.sixAMWind, hours[6].WindKWh, 0.01)
			for _, p := range hours {
				assert.GreaterOrEqual(t, p.WindKWh, 0.0)
				assert.GreaterOrEqual(t, p.SolarKWh, 0.0)
			}
		})
	}
}

func TestHourlyProduction_Deterministic(t *testing.T) {
	assert.Equal(t, HourlyProduction(WeatherRainy), HourlyProduction(WeatherRainy))
}

func TestHourlyProduction_UnknownWeatherIsIdle(t *testing.T) {
	for _, p := range HourlyProduction(WeatherUnknown) {
		assert.Equal(t, 0.0, p.TotalKWh(), "hour %d", p.Hour)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(WeatherSunny)

	// 5 + 2 * (4.9 + 4.59 + 4.08 + 3.37 + 2.45 + 1.33)
	assert.InDelta(t, 46.44, s.SolarKWh, 1e-9)
	assert.Equal(t, WeatherSunny, s.Weather)
	assert.InDelta(t, s.SolarKWh+s.WindKWh, s.CombinedKWh, 1e-12)

	wind := 0.0
	for _, p := range s.Hours {
		wind += p.WindKWh
	}
	assert.InDelta(t, wind, s.WindKWh, 1e-9)

	// storms trade sun for wind
	storm := Summarize(WeatherStormy)
	assert.Less(t, storm.SolarKWh, s.SolarKWh)
	assert.Greater(t, storm.WindKWh, s.WindKWh)
}
