// Package locnorm normalizes free-text locations: shorthand city names,
// state abbreviations, probable city/state inference, and the provider's
// URL formatting rules.
package locnorm

import "strings"

// Normalizer is the location collaborator the dialog core depends on.
type Normalizer interface {
	// ExpandCity turns shorthand like "LA" into "Los Angeles". Unknown
	// input passes through unchanged.
	ExpandCity(city string) string

	// ProbableCity picks the best-known city for a state, or "" when the
	// state is unknown.
	ProbableCity(state string) string

	// ProbableState returns the query token to place before the city in
	// the provider path: the abbreviation of the given state if it is one,
	// an inferred state for well-known cities when none was given, or ""
	// when the city should be queried bare.
	ProbableState(city, state string) string

	// StateName expands a state abbreviation to its full name; unknown
	// abbreviations pass through unchanged.
	StateName(abbrev string) string
}

// Static resolves everything from compiled-in tables. It is the default
// normalizer and needs no network access.
type Static struct{}

func NewStatic() Static { return Static{} }

func (Static) ExpandCity(city string) string {
	if full, ok := cityShorthand[strings.ToUpper(city)]; ok {
		return full
	}
	return city
}

func (Static) ProbableCity(state string) string {
	return probableCity[abbrevFor(state)]
}

func (Static) ProbableState(city, state string) string {
	if state != "" {
		if ab := abbrevFor(state); ab != "" {
			return ab
		}
		// Not a US state; countries go into the path as-is ("France/Paris").
		return ProperCase(state)
	}
	return cityState[strings.ToLower(city)]
}

func (Static) StateName(abbrev string) string {
	if name, ok := stateName[strings.ToUpper(abbrev)]; ok {
		return name
	}
	return abbrev
}

// abbrevFor maps a state given as either a full name or an abbreviation to
// its two-letter form, or "" when it is not a US state.
func abbrevFor(state string) string {
	up := strings.ToUpper(strings.TrimSpace(state))
	if _, ok := stateName[up]; ok {
		return up
	}
	if ab, ok := stateAbbrev[strings.ToLower(state)]; ok {
		return ab
	}
	return ""
}

// ProperCase capitalizes each word, leaving "of" alone, the way the provider
// expects city names ("isle of palms" -> "Isle of Palms").
func ProperCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if strings.EqualFold(w, "of") {
			words[i] = strings.ToLower(w)
			continue
		}
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

// FormatCity renders a city name for the provider request path.
func FormatCity(city string) string {
	return strings.ReplaceAll(strings.TrimSpace(city), " ", "_")
}
