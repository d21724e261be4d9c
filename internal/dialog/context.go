// Package dialog holds the per-session conversation state and the slot-filling
// state machine that decides whether a turn can query weather data or has to
// ask the user for more.
package dialog

import "strings"

// Condition is the weather attribute the user asked about. The zero value is
// ConditionWeather, so an unset condition composes as a general weather reply.
type Condition int

const (
	ConditionWeather Condition = iota
	ConditionTemperature
	ConditionRain
	ConditionSnow
	ConditionUV
	ConditionWind
	ConditionHumidity
	ConditionFeelsLike
)

// intentConditions maps NLU intent names onto conditions. Intents outside this
// table (other than small talk) leave the active condition untouched.
var intentConditions = map[string]Condition{
	"Weather":     ConditionWeather,
	"Temperature": ConditionTemperature,
	"Rain":        ConditionRain,
	"Snow":        ConditionSnow,
	"UV":          ConditionUV,
	"Wind":        ConditionWind,
	"Humidity":    ConditionHumidity,
	"FeelsLike":   ConditionFeelsLike,
}

// String returns the intent-style name of the condition.
func (c Condition) String() string {
	switch c {
	case ConditionWeather:
		return "Weather"
	case ConditionTemperature:
		return "Temperature"
	case ConditionRain:
		return "Rain"
	case ConditionSnow:
		return "Snow"
	case ConditionUV:
		return "UV"
	case ConditionWind:
		return "Wind"
	case ConditionHumidity:
		return "Humidity"
	case ConditionFeelsLike:
		return "FeelsLike"
	}
	return "Weather"
}

// DisplayLabel is the spoken form used in reply openings: lower-cased, except
// UV becomes "UV index" and FeelsLike reads as "temperature" (feels-like
// cannot be forecast, but the temperature can).
func (c Condition) DisplayLabel() string {
	switch c {
	case ConditionUV:
		return "UV index"
	case ConditionFeelsLike:
		return "temperature"
	default:
		return strings.ToLower(c.String())
	}
}

// Awaiting records which slot the previous turn asked the user for.
type Awaiting int

const (
	AwaitingNone Awaiting = iota
	AwaitingCity
	AwaitingState
)

// Context is the full dialog state for one session. It is owned by the caller
// and threaded through every turn; the core never stores it in package state.
type Context struct {
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Condition Condition `json:"condition"`
	DateExpr  string    `json:"date,omitempty"`
	Awaiting  Awaiting  `json:"awaiting,omitempty"`

	// Options holds the lower-cased candidate answers offered by a
	// disambiguation question. Valid only while Awaiting != AwaitingNone;
	// the two are always cleared together.
	Options []string `json:"options,omitempty"`
}

// ClearQuestion resets the pending-question state once it has been answered.
func (c *Context) ClearQuestion() {
	c.Awaiting = AwaitingNone
	c.Options = nil
}

// AwaitQuestion marks a pending question with its valid answers.
func (c *Context) AwaitQuestion(a Awaiting, options []string) {
	c.Awaiting = a
	c.Options = options
}

func (c *Context) optionMatch(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, opt := range c.Options {
		if opt == text {
			return true
		}
	}
	return false
}
