package wunderground

import (
	"fmt"
	"strings"

	"github.com/sonnyweather/weather-dialog/internal/common"
)

// ErrorKind classifies provider-reported errors.
type ErrorKind int

const (
	ErrorOther ErrorKind = iota
	ErrorNotFound
	ErrorBadKey
)

// APIError is an error block reported inside an otherwise-successful response.
type APIError struct {
	Kind    ErrorKind
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Scope says which slot a disambiguation question should ask for.
type Scope int

const (
	ScopeState Scope = iota
	ScopeCountry
)

// Candidate is one selectable location in an ambiguous response. Abbrev is
// the state or country code; Name is the country's full name, set for country
// scope only. State names are the normalizer's business.
type Candidate struct {
	Abbrev string
	Name   string
}

// Ambiguity describes a results-list response: several places share the
// requested city name.
type Ambiguity struct {
	Scope       Scope
	CountryName string // set for state scope
	Candidates  []Candidate
}

// Interpretation is the classified form of a successful payload. Exactly one
// of the three fields is non-nil.
type Interpretation struct {
	Current   *CurrentObservation
	Forecast  *Forecast
	Ambiguity *Ambiguity
}

// Interpret classifies a decoded payload. Provider-reported error blocks come
// back as *APIError with user-presentable text; the city (and state, when the
// user gave one) is folded into not-found messages.
func Interpret(p *Payload, city, state string) (*Interpretation, error) {
	if p.Response.Error != nil {
		return nil, interpretError(p.Response.Error, city, state)
	}

	if p.CurrentObservation != nil {
		return &Interpretation{Current: p.CurrentObservation}, nil
	}
	if p.Forecast != nil {
		return &Interpretation{Forecast: p.Forecast}, nil
	}

	if len(p.Response.Results) == 0 {
		return nil, &APIError{
			Kind:    ErrorOther,
			Message: fmt.Sprintf("The Weather Underground returned an empty response for %s.", city),
		}
	}
	return &Interpretation{Ambiguity: interpretResults(p.Response.Results)}, nil
}

func interpretError(e *payloadError, city, state string) *APIError {
	switch e.Type {
	case "keynotfound":
		return &APIError{Kind: ErrorBadKey, Message: "Please provide a Weather Underground API key."}
	case "querynotfound":
		return &APIError{
			Kind:    ErrorNotFound,
			Message: e.Description + " for " + common.JoinNonEmpty(", ", city, state),
		}
	default:
		return &APIError{Kind: ErrorOther, Message: e.Description}
	}
}

// interpretResults decides the disambiguation scope: when every result sits in
// one country the user picks a state, otherwise a country.
func interpretResults(results []LocationResult) *Ambiguity {
	countries := dedupe(results, func(r LocationResult) Candidate {
		return Candidate{Abbrev: r.Country, Name: r.CountryName}
	})

	if len(countries) == 1 {
		return &Ambiguity{
			Scope:       ScopeState,
			CountryName: results[0].CountryName,
			Candidates: dedupe(results, func(r LocationResult) Candidate {
				return Candidate{Abbrev: r.State}
			}),
		}
	}
	return &Ambiguity{
		Scope:      ScopeCountry,
		Candidates: countries,
	}
}

// dedupe maps results to candidates, dropping empty and repeated abbreviations
// while keeping provider order.
func dedupe(results []LocationResult, pick func(LocationResult) Candidate) []Candidate {
	seen := make(map[string]bool, len(results))
	var out []Candidate
	for _, r := range results {
		c := pick(r)
		key := strings.ToUpper(c.Abbrev)
		if c.Abbrev == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
