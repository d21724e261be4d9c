package weather

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sonnyweather/weather-dialog/internal/dateutil"
	"github.com/sonnyweather/weather-dialog/internal/dialog"
	"github.com/sonnyweather/weather-dialog/internal/wunderground"
)

// Composed is the speech-ready result of a successful weather turn.
type Composed struct {
	Text     string
	ImageURL string

	// City is the provider's canonical spelling when a current observation
	// supplied one, else the city that was asked about.
	City string
}

// Compose turns a classified provider payload into reply text for the active
// condition. Exactly one of current and forecast is non-nil. state is the
// display name to append after the city (may be empty).
func Compose(current *wunderground.CurrentObservation, forecast *wunderground.Forecast, cond dialog.Condition, city, state string, d dateutil.Descriptor) (Composed, error) {
	isCurrent := current != nil

	displayCity := city
	displayState := state
	if isCurrent && current.DisplayLocation.City != "" {
		displayCity = current.DisplayLocation.City
		displayState = current.DisplayLocation.StateName
	}

	var b strings.Builder

	// Opening clause.
	if (cond == dialog.ConditionWeather || cond == dialog.ConditionRain || cond == dialog.ConditionSnow) && isCurrent {
		b.WriteString("In " + displayCity)
	} else {
		b.WriteString("The " + cond.DisplayLabel() + " in " + displayCity)
	}
	if displayState != "" {
		b.WriteString(", " + displayState)
	}
	if (cond == dialog.ConditionWeather || cond == dialog.ConditionSnow) && isCurrent {
		b.WriteString(" it ")
	}

	// Temporal clause. A forecast UV answer and a current rain answer carry
	// their own phrasing.
	if !((cond == dialog.ConditionUV && !isCurrent) || (cond == dialog.ConditionRain && isCurrent)) {
		if cond == dialog.ConditionFeelsLike && isCurrent {
			b.WriteString(" currently ")
		} else {
			b.WriteString(d.DisplayPhrase)
		}
	}

	// Select the forecast entry for forecast answers: structured days for
	// every condition except Weather, which narrates a half-day period.
	var (
		day    *wunderground.ForecastDay
		period *wunderground.TxtPeriod
	)
	if !isCurrent {
		if cond == dialog.ConditionWeather {
			period = findPeriod(forecast, d.Period)
			if period == nil {
				return Composed{}, fmt.Errorf("no forecast period %d", d.Period)
			}
		} else {
			day = findDay(forecast, d)
			if day == nil {
				return Composed{}, fmt.Errorf("no forecast for %d/%d/%d", d.Month, d.Day, d.Year)
			}
		}
	}

	switch cond {
	case dialog.ConditionWeather:
		if isCurrent {
			b.WriteString(current.Weather)
			b.WriteString(" and the temperature is " + formatNumber(current.TempF) + " degrees Fahrenheit")
		} else {
			b.WriteString(expandForecastNarrative(period.FctText))
		}
	case dialog.ConditionTemperature:
		if isCurrent {
			b.WriteString(formatNumber(current.TempF) + " degrees Fahrenheit")
		} else {
			b.WriteString("a high of " + day.High.Fahrenheit + " degrees fahrenheit")
			b.WriteString(" and a low of " + day.Low.Fahrenheit + " degrees fahrenheit")
		}
	case dialog.ConditionRain:
		if isCurrent {
			// The provider reports -999 when rain data is missing.
			b.WriteString(" there has been " + formatNumber(clampNonNegative(current.Precip1hrIn)) + " inches of rain in the past hour")
		} else {
			b.WriteString(formatNumber(clampNonNegative(day.QpfAllday.In)) + " inches.")
		}
	case dialog.ConditionSnow:
		if isCurrent {
			b.WriteString(current.Weather)
			if !strings.Contains(strings.ToLower(current.Weather), "snow") {
				b.WriteString(" so there is no snow.")
			}
		} else {
			b.WriteString(formatNumber(clampNonNegative(day.SnowAllday.In)) + " inches.")
		}
	case dialog.ConditionUV:
		if isCurrent {
			b.WriteString(formatNumber(current.UV) + " which is " + uvRisk(float64(current.UV)) + " risk")
		} else {
			b.WriteString(" cannot be forecast, but the weather will be " + day.Conditions + ".")
		}
	case dialog.ConditionWind:
		if isCurrent {
			b.WriteString(expandWindString(current.WindString))
		} else {
			b.WriteString("from the " + SpokenCardinal(day.AveWind.Dir) + " at " + formatNumber(day.AveWind.Mph) +
				" gusting to " + formatNumber(day.MaxWind.Mph) + " mph.")
		}
	case dialog.ConditionHumidity:
		if isCurrent {
			b.WriteString(current.RelativeHumidity)
		} else {
			b.WriteString(strconv.Itoa(day.AveHumidity) + "%.")
		}
	case dialog.ConditionFeelsLike:
		if isCurrent {
			b.WriteString("feels like " + formatNumber(current.FeelslikeF) + " degrees Fahrenheit.")
		} else {
			b.WriteString("a high of " + day.High.Fahrenheit + " degrees fahrenheit")
			b.WriteString(" and a low of " + day.Low.Fahrenheit + " degrees fahrenheit")
			b.WriteString(" but I cannot yet tell you exactly what it will feel like.")
		}
	}

	return Composed{
		Text:     b.String(),
		ImageURL: imageURL(current, day, period),
		City:     displayCity,
	}, nil
}

// uvRisk buckets a UV index into the WHO risk bands.
func uvRisk(index float64) string {
	switch {
	case index < 3:
		return "low"
	case index < 6:
		return "moderate"
	case index < 8:
		return "high"
	case index < 11:
		return "very high"
	default:
		return "extreme"
	}
}

func findDay(f *wunderground.Forecast, d dateutil.Descriptor) *wunderground.ForecastDay {
	for i := range f.SimpleForecast.ForecastDay {
		day := &f.SimpleForecast.ForecastDay[i]
		if day.Date.Year == d.Year && day.Date.Month == d.Month && day.Date.Day == d.Day {
			return day
		}
	}
	return nil
}

func findPeriod(f *wunderground.Forecast, period int) *wunderground.TxtPeriod {
	for i := range f.TxtForecast.ForecastDay {
		p := &f.TxtForecast.ForecastDay[i]
		if p.Period == period {
			return p
		}
	}
	return nil
}

func imageURL(current *wunderground.CurrentObservation, day *wunderground.ForecastDay, period *wunderground.TxtPeriod) string {
	switch {
	case current != nil:
		return current.IconURL
	case period != nil:
		return period.IconURL
	case day != nil:
		return day.IconURL
	}
	return ""
}

func clampNonNegative(n wunderground.Number) wunderground.Number {
	if n < 0 {
		return 0
	}
	return n
}

// formatNumber renders provider numbers without trailing zeros, the way they
// read best in speech ("0.25", "60").
func formatNumber(n wunderground.Number) string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}
