package dialog

// NLUOutput is the shape the external natural-language-understanding service
// hands us for each utterance. The core only consumes it.
type NLUOutput struct {
	Input    Input    `json:"input"`
	Intents  []Intent `json:"intents"`
	Entities []Entity `json:"entities"`
}

type Input struct {
	Text string `json:"text"`
}

type Intent struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

type Entity struct {
	Entity string `json:"entity"`
	Value  string `json:"value"`
	Type   string `json:"type,omitempty"`
}

// TopIntent returns the first intent name, or "".
func (o *NLUOutput) TopIntent() string {
	if len(o.Intents) == 0 {
		return ""
	}
	return o.Intents[0].Intent
}

// IsSmallTalk reports whether the utterance is a greeting or farewell rather
// than a weather question.
func (o *NLUOutput) IsSmallTalk() bool {
	return isSmallTalk(o.TopIntent())
}

func isSmallTalk(intent string) bool {
	return intent == "SmallTalkGreeting" || intent == "SmallTalkFarewell"
}
