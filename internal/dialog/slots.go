package dialog

import (
	"strings"

	"github.com/sonnyweather/weather-dialog/internal/locnorm"
)

// Action is what the turn should do after merging new input into the context.
type Action int

const (
	// Proceed means every required slot is filled and the provider can be queried.
	Proceed Action = iota
	// AskCity means no city is known yet; the turn must ask for one.
	AskCity
	// AskState means a pending state question was not answered with one of
	// its options; the turn should repeat it.
	AskState
)

// Merge folds freshly extracted intents and entities into the conversation
// context and decides the next action. It performs no I/O and mutates nothing
// but ctx.
func Merge(ctx *Context, out *NLUOutput, norm locnorm.Normalizer) Action {
	text := strings.TrimSpace(out.Input.Text)

	// A pending disambiguation question binds the raw utterance when it is
	// one of the offered options.
	if ctx.Awaiting == AwaitingState && ctx.optionMatch(text) {
		ctx.State = text
		ctx.ClearQuestion()
		return Proceed
	}

	// A pending city question accepts any utterance as the city.
	if ctx.Awaiting == AwaitingCity {
		ctx.City = norm.ExpandCity(text)
		ctx.ClearQuestion()
		return Proceed
	}

	city, state, date := extractEntities(out)

	if ctx.Awaiting == AwaitingState {
		// The utterance wasn't an option; accept a state entity that is,
		// otherwise repeat the question.
		if state != "" && ctx.optionMatch(state) {
			ctx.State = state
			ctx.ClearQuestion()
			return Proceed
		}
		return AskState
	}

	intent := out.TopIntent()
	if intent != "" && !isSmallTalk(intent) {
		if cond, ok := intentConditions[intent]; ok {
			ctx.Condition = cond
		}
	}

	prevCity := ctx.City
	if city != "" {
		ctx.City = norm.ExpandCity(city)
	}

	if state != "" {
		ctx.State = state
	} else if ctx.City != prevCity {
		// State context does not survive a city switch.
		ctx.State = ""
	}

	if date != "" {
		ctx.DateExpr = date
	} else {
		ctx.DateExpr = "current"
	}

	if ctx.City == "" {
		return AskCity
	}
	return Proceed
}

// extractEntities pulls at most one city, state, and date out of the NLU
// entities. Among city entities the longest value wins.
func extractEntities(out *NLUOutput) (city, state, date string) {
	for _, e := range out.Entities {
		switch e.Entity {
		case "city":
			if len(e.Value) > len(city) {
				city = e.Value
			}
		case "state":
			if state == "" {
				state = e.Value
			}
		case "date":
			if date == "" {
				date = e.Value
			}
		}
	}
	return city, state, date
}
