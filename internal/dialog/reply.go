package dialog

import "strings"

// ReplyKind tags the three ways a turn can end.
type ReplyKind int

const (
	ReplyTell ReplyKind = iota
	ReplyAsk
	ReplyError
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyAsk:
		return "ask"
	case ReplyError:
		return "error"
	default:
		return "tell"
	}
}

// Reply is the final output of a dialog turn.
type Reply struct {
	Kind     ReplyKind
	Text     []string // one line for tells and errors, possibly several for asks
	Speech   string   // speech-ready rendering of Text
	ImageURL string
	Options  []string // valid answers for an ask, lower-cased
	AutoMic  bool     // asks prompt the UI to reopen the microphone
}

// Tell builds a successful answer reply.
func Tell(text, imageURL string) Reply {
	return Reply{
		Kind:     ReplyTell,
		Text:     []string{text},
		Speech:   text,
		ImageURL: imageURL,
	}
}

// Ask builds a single-line question reply.
func Ask(question string) Reply {
	return Reply{
		Kind:    ReplyAsk,
		Text:    []string{question},
		Speech:  question,
		AutoMic: true,
	}
}

// AskOptions builds a multi-line disambiguation question. The spoken form
// skips the middle enumeration line so the voice prompt stays short.
func AskOptions(lines []string, options []string) Reply {
	speech := strings.Join(lines, ". ")
	if len(lines) == 3 {
		speech = lines[0] + ". " + lines[2]
	}
	return Reply{
		Kind:    ReplyAsk,
		Text:    lines,
		Speech:  speech,
		Options: options,
		AutoMic: true,
	}
}

// Error builds a terminal error reply for the current turn.
func Error(text string) Reply {
	return Reply{
		Kind:   ReplyError,
		Text:   []string{text},
		Speech: text,
	}
}
