package locnorm

import "strings"

// cityShorthand expands the handful of spoken shorthands the NLU surfaces.
var cityShorthand = map[string]string{
	"LA":     "Los Angeles",
	"NYC":    "New York City",
	"VEGAS":  "Las Vegas",
	"DC":     "Washington",
	"SF":     "San Francisco",
	"PHILLY": "Philadelphia",
}

// stateName maps US state abbreviations to full names.
var stateName = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

// stateAbbrev is the inverse of stateName, keyed lower-case.
var stateAbbrev = func() map[string]string {
	m := make(map[string]string, len(stateName))
	for ab, name := range stateName {
		m[strings.ToLower(name)] = ab
	}
	return m
}()

// probableCity picks the city most people mean when they name only a state.
var probableCity = map[string]string{
	"AL": "Birmingham", "AK": "Anchorage", "AZ": "Phoenix", "AR": "Little Rock",
	"CA": "Los Angeles", "CO": "Denver", "CT": "Hartford", "DE": "Wilmington",
	"FL": "Miami", "GA": "Atlanta", "HI": "Honolulu", "ID": "Boise",
	"IL": "Chicago", "IN": "Indianapolis", "IA": "Des Moines", "KS": "Wichita",
	"KY": "Louisville", "LA": "New Orleans", "ME": "Portland", "MD": "Baltimore",
	"MA": "Boston", "MI": "Detroit", "MN": "Minneapolis", "MS": "Jackson",
	"MO": "Kansas City", "MT": "Billings", "NE": "Omaha", "NV": "Las Vegas",
	"NH": "Manchester", "NJ": "Newark", "NM": "Albuquerque", "NY": "New York",
	"NC": "Charlotte", "ND": "Fargo", "OH": "Columbus", "OK": "Oklahoma City",
	"OR": "Portland", "PA": "Philadelphia", "RI": "Providence", "SC": "Charleston",
	"SD": "Sioux Falls", "TN": "Nashville", "TX": "Houston", "UT": "Salt Lake City",
	"VT": "Burlington", "VA": "Virginia Beach", "WA": "Seattle", "WV": "Charleston",
	"WI": "Milwaukee", "WY": "Cheyenne", "DC": "Washington",
}

// cityState maps well-known US cities (lower-case) to their state
// abbreviation, used when the user names a city without a state.
var cityState = map[string]string{
	"new york":       "NY",
	"new york city":  "NY",
	"los angeles":    "CA",
	"san francisco":  "CA",
	"san diego":      "CA",
	"san jose":       "CA",
	"sacramento":     "CA",
	"chicago":        "IL",
	"houston":        "TX",
	"dallas":         "TX",
	"austin":         "TX",
	"san antonio":    "TX",
	"phoenix":        "AZ",
	"philadelphia":   "PA",
	"pittsburgh":     "PA",
	"seattle":        "WA",
	"denver":         "CO",
	"boston":         "MA",
	"miami":          "FL",
	"orlando":        "FL",
	"tampa":          "FL",
	"atlanta":        "GA",
	"detroit":        "MI",
	"minneapolis":    "MN",
	"st. louis":      "MO",
	"new orleans":    "LA",
	"las vegas":      "NV",
	"baltimore":      "MD",
	"milwaukee":      "WI",
	"cleveland":      "OH",
	"cincinnati":     "OH",
	"nashville":      "TN",
	"memphis":        "TN",
	"indianapolis":   "IN",
	"salt lake city": "UT",
	"honolulu":       "HI",
	"anchorage":      "AK",
}
