package weather

import (
	"strings"
	"unicode"
)

// spokenCardinal expands the 16-point compass rose into spoken names.
var spokenCardinal = map[string]string{
	"N":   "North",
	"NNE": "North-northeast",
	"NE":  "Northeast",
	"ENE": "East-northeast",
	"E":   "East",
	"ESE": "East-southeast",
	"SE":  "Southeast",
	"SSE": "South-southeast",
	"S":   "South",
	"SSW": "South-southwest",
	"SW":  "Southwest",
	"WSW": "West-southwest",
	"W":   "West",
	"WNW": "West-northwest",
	"NW":  "Northwest",
	"NNW": "North-northwest",
}

// SpokenCardinal returns the spoken name of a compass abbreviation, or the
// input unchanged when it is not one.
func SpokenCardinal(dir string) string {
	if spoken, ok := spokenCardinal[dir]; ok {
		return spoken
	}
	return dir
}

// expandForecastNarrative rewrites a provider half-day narrative for speech:
// temperatures like "68F" become "68 degrees Fahrenheit" and a compass
// abbreviation after "Winds" becomes its spoken name. The text is scanned as
// tokens in a single pass, so expanded output is never re-expanded.
func expandForecastNarrative(text string) string {
	tokens := strings.Split(text, " ")
	for i, tok := range tokens {
		if expanded, ok := expandFahrenheit(tok); ok {
			tokens[i] = expanded
			continue
		}
		if tok == "Winds" && i+1 < len(tokens) {
			tokens[i+1] = expandCardinalToken(tokens[i+1])
		}
	}
	return strings.Join(tokens, " ")
}

// expandWindString rewrites a current-conditions wind phrase: "From the WSW"
// becomes "from the West-southwest" and the provider's "MPH" unit is
// lower-cased.
func expandWindString(text string) string {
	tokens := strings.Split(text, " ")
	for i, tok := range tokens {
		core, trail := splitTrailing(tok)
		if core == "MPH" {
			tokens[i] = "mph" + trail
			continue
		}
		if tok == "From" && i+2 < len(tokens) && tokens[i+1] == "the" {
			if expanded := expandCardinalToken(tokens[i+2]); expanded != tokens[i+2] {
				tokens[i] = "from"
				tokens[i+2] = expanded
			}
		}
	}
	return strings.Join(tokens, " ")
}

// expandFahrenheit expands a token of the form "<digits>F" with optional
// trailing punctuation. At least one digit is required: a bare "F" is not a
// temperature.
func expandFahrenheit(tok string) (string, bool) {
	core, trail := splitTrailing(tok)
	if len(core) < 2 || core[len(core)-1] != 'F' {
		return "", false
	}
	digits := core[:len(core)-1]
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return "", false
		}
	}
	return digits + " degrees Fahrenheit" + trail, true
}

// expandCardinalToken expands the leading all-caps run of a token when it is
// a compass abbreviation, preserving any trailing punctuation.
func expandCardinalToken(tok string) string {
	core, trail := splitTrailing(tok)
	if spoken, ok := spokenCardinal[core]; ok {
		return spoken + trail
	}
	return tok
}

// splitTrailing separates trailing non-letter, non-digit runes (punctuation)
// from a token.
func splitTrailing(tok string) (core, trail string) {
	end := len(tok)
	for end > 0 {
		r := rune(tok[end-1])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		end--
	}
	return tok[:end], tok[end:]
}
