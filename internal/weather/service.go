// Package weather orchestrates a dialog turn end to end: slot merging, date
// resolution, the provider round-trip, disambiguation, and reply composition.
package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sonnyweather/weather-dialog/internal/common"
	"github.com/sonnyweather/weather-dialog/internal/dateutil"
	"github.com/sonnyweather/weather-dialog/internal/dialog"
	"github.com/sonnyweather/weather-dialog/internal/locnorm"
	"github.com/sonnyweather/weather-dialog/internal/wunderground"
)

// Provider abstracts the weather data source.
type Provider interface {
	Fetch(ctx context.Context, feature, state, city string) (*wunderground.Payload, error)
}

// Service resolves weather questions across dialog turns. All conversation
// state lives in the *dialog.Context the caller threads through; the service
// itself is stateless and safe for concurrent sessions.
type Service struct {
	provider Provider
	norm     locnorm.Normalizer
	log      *zap.Logger
	now      func() time.Time
}

func NewService(provider Provider, norm locnorm.Normalizer, log *zap.Logger) *Service {
	return &Service{
		provider: provider,
		norm:     norm,
		log:      log,
		now:      time.Now,
	}
}

// HandleTurn merges one NLU result into the conversation and produces the
// turn's reply. At most one provider request is issued.
func (s *Service) HandleTurn(ctx context.Context, conv *dialog.Context, out *dialog.NLUOutput) dialog.Reply {
	switch dialog.Merge(conv, out, s.norm) {
	case dialog.AskCity:
		if out.IsSmallTalk() && len(out.Entities) == 0 {
			return smallTalkReply(out.TopIntent())
		}
		conv.AwaitQuestion(dialog.AwaitingCity, nil)
		return dialog.Ask("Which city are you interested in?")
	case dialog.AskState:
		return dialog.Reply{
			Kind:    dialog.ReplyAsk,
			Text:    []string{"I didn't catch that. Which of those are you interested in?"},
			Speech:  "I didn't catch that. Which of those are you interested in?",
			Options: conv.Options,
			AutoMic: true,
		}
	}

	if out.IsSmallTalk() && len(out.Entities) == 0 {
		return smallTalkReply(out.TopIntent())
	}

	return s.Query(ctx, conv)
}

// Query runs the provider round-trip for a context whose slots have already
// been merged. It may still end in an Ask when the city is missing or the
// location is ambiguous.
func (s *Service) Query(ctx context.Context, conv *dialog.Context) dialog.Reply {
	city, state := conv.City, conv.State

	// A state alone is answerable via its most prominent city.
	if city == "" && state != "" {
		city = s.norm.ProbableCity(state)
	}
	if city == "" {
		conv.AwaitQuestion(dialog.AwaitingCity, nil)
		inState := ""
		if state != "" {
			inState = " in " + state
		}
		return dialog.Ask("Which city" + inState + " are you interested in?")
	}

	d := dateutil.Resolve(conv.DateExpr, s.now())
	if d.Err != "" {
		return dialog.Error(d.Err)
	}

	city = locnorm.ProperCase(city)
	queryState := s.norm.ProbableState(city, state)
	action := s.actionPhrase(conv, city, state)

	s.log.Debug("querying provider",
		zap.String("feature", d.Feature.Token()),
		zap.String("city", city),
		zap.String("state", queryState))

	payload, err := s.provider.Fetch(ctx, d.Feature.Token(), queryState, city)
	if err != nil {
		return s.errorReply(err, action)
	}

	interp, err := wunderground.Interpret(payload, city, state)
	if err != nil {
		return s.errorReply(err, action)
	}

	if interp.Ambiguity != nil {
		return s.askDisambiguation(conv, city, interp.Ambiguity)
	}

	displayState := ""
	if queryState != "" {
		displayState = s.norm.StateName(queryState)
	}

	composed, err := Compose(interp.Current, interp.Forecast, conv.Condition, city, displayState, d)
	if err != nil {
		s.log.Warn("composition failed", zap.String("city", city), zap.Error(err))
		return s.errorReply(err, action)
	}

	// Adopt the provider's canonical city spelling for follow-up turns.
	if composed.City != "" && composed.City != conv.City {
		conv.City = composed.City
	}

	return dialog.Tell(composed.Text, composed.ImageURL)
}

// askDisambiguation turns an ambiguous provider response into a question
// whose candidate labels become the valid vocabulary of the next turn.
func (s *Service) askDisambiguation(conv *dialog.Context, city string, amb *wunderground.Ambiguity) dialog.Reply {
	var names, abbrevs []string
	for _, c := range amb.Candidates {
		if amb.Scope == wunderground.ScopeState {
			names = append(names, s.norm.StateName(c.Abbrev))
		} else {
			names = append(names, c.Name)
		}
		abbrevs = append(abbrevs, c.Abbrev)
	}

	var enum strings.Builder
	for i := range names {
		if i > 0 {
			enum.WriteString(", ")
		}
		enum.WriteString(names[i] + " (" + abbrevs[i] + ")")
	}

	var heading, question string
	if amb.Scope == wunderground.ScopeState {
		heading = fmt.Sprintf("I found %d states in %s with a city named %s:", len(names), amb.CountryName, city)
		question = "Which state are you interested in?"
	} else {
		heading = fmt.Sprintf("I found %d countries in the world with a city named %s:", len(names), city)
		question = "Which country are you interested in?"
	}

	options := make([]string, 0, len(names)*2)
	for _, label := range append(append([]string{}, names...), abbrevs...) {
		if label != "" {
			options = append(options, strings.ToLower(label))
		}
	}

	conv.AwaitQuestion(dialog.AwaitingState, options)
	return dialog.AskOptions([]string{heading, enum.String(), question}, options)
}

// actionPhrase describes what the turn attempted, used in apology messages:
// "looking up the weather in Springfield, Missouri on 2026-09-04".
func (s *Service) actionPhrase(conv *dialog.Context, city, state string) string {
	action := "looking up the " + conv.Condition.DisplayLabel() + " in " + common.JoinNonEmpty(", ", city, state)
	if conv.DateExpr != "" && conv.DateExpr != "current" {
		action += " on " + conv.DateExpr
	}
	return action
}

// errorReply converts a turn-terminal failure into user-facing text per the
// error taxonomy: location misses apologize with the provider's wording, key
// and communication problems surface their own message, anything else gets
// the generic apology.
func (s *Service) errorReply(err error, action string) dialog.Reply {
	var apiErr *wunderground.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case wunderground.ErrorNotFound:
			return dialog.Error("I'm sorry, but " + lowerFirst(apiErr.Message))
		case wunderground.ErrorBadKey:
			return dialog.Error(apiErr.Message)
		}
	}
	if errors.Is(err, wunderground.ErrCommunication) {
		return dialog.Error(wunderground.ErrCommunication.Error())
	}
	if common.HasAny(err.Error(), "I'm sorry") {
		return dialog.Error(err.Error())
	}

	s.log.Error("turn failed", zap.String("action", action), zap.Error(err))
	return dialog.Error("I'm sorry, I had some trouble " + action)
}

// lowerFirst lower-cases the leading letter so a provider sentence can follow
// "I'm sorry, but" without mangling the names inside it.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func smallTalkReply(intent string) dialog.Reply {
	if intent == "SmallTalkFarewell" {
		return dialog.Tell("Goodbye! Ask me about the weather any time.", "")
	}
	return dialog.Tell("Hello! Ask me about the weather in any city.", "")
}
