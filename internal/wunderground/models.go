// Package wunderground speaks the Weather Underground API protocol: request
// path construction, payload decoding, and classification of the response
// variants (current observation, forecast, ambiguous location, error).
package wunderground

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Number decodes the provider's numeric fields, which arrive sometimes as JSON
// numbers and sometimes as quoted strings ("-999.00"). Empty and dashed
// placeholder strings decode to zero.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	s := string(b)
	if s == "" || s == "--" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Payload is the provider's top-level response envelope.
type Payload struct {
	Response struct {
		Error   *payloadError    `json:"error"`
		Results []LocationResult `json:"results"`
	} `json:"response"`
	CurrentObservation *CurrentObservation `json:"current_observation"`
	Forecast           *Forecast           `json:"forecast"`
}

type payloadError struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// LocationResult is one candidate in an ambiguous-location response.
type LocationResult struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Country     string `json:"country"`
	CountryName string `json:"country_name"`
}

// CurrentObservation is the live-conditions variant.
type CurrentObservation struct {
	DisplayLocation struct {
		City      string `json:"city"`
		State     string `json:"state"`
		StateName string `json:"state_name"`
	} `json:"display_location"`
	Weather          string `json:"weather"`
	TempF            Number `json:"temp_f"`
	FeelslikeF       Number `json:"feelslike_f"`
	Precip1hrIn      Number `json:"precip_1hr_in"`
	UV               Number `json:"UV"`
	WindString       string `json:"wind_string"`
	RelativeHumidity string `json:"relative_humidity"`
	IconURL          string `json:"icon_url"`
}

// Forecast is the forecast variant: half-day narrative periods plus per-day
// structured values.
type Forecast struct {
	TxtForecast struct {
		ForecastDay []TxtPeriod `json:"forecastday"`
	} `json:"txt_forecast"`
	SimpleForecast struct {
		ForecastDay []ForecastDay `json:"forecastday"`
	} `json:"simpleforecast"`
}

// TxtPeriod is one half-day narrative entry.
type TxtPeriod struct {
	Period  int    `json:"period"`
	Title   string `json:"title"`
	FctText string `json:"fcttext"`
	IconURL string `json:"icon_url"`
}

// ForecastDay is one structured forecast day.
type ForecastDay struct {
	Date struct {
		Day   int `json:"day"`
		Month int `json:"month"`
		Year  int `json:"year"`
	} `json:"date"`
	High struct {
		Fahrenheit string `json:"fahrenheit"`
	} `json:"high"`
	Low struct {
		Fahrenheit string `json:"fahrenheit"`
	} `json:"low"`
	QpfAllday struct {
		In Number `json:"in"`
	} `json:"qpf_allday"`
	SnowAllday struct {
		In Number `json:"in"`
	} `json:"snow_allday"`
	AveWind struct {
		Mph Number `json:"mph"`
		Dir string `json:"dir"`
	} `json:"avewind"`
	MaxWind struct {
		Mph Number `json:"mph"`
		Dir string `json:"dir"`
	} `json:"maxwind"`
	AveHumidity int    `json:"avehumidity"`
	Conditions  string `json:"conditions"`
	IconURL     string `json:"icon_url"`
}

// DecodePayload parses a raw response body.
func DecodePayload(body []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
