package weather

import (
	"context"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sonnyweather/weather-dialog/internal/dialog"
	"github.com/sonnyweather/weather-dialog/internal/locnorm"
	"github.com/sonnyweather/weather-dialog/internal/wunderground"
)

// fakeProvider records the requests it gets and replies with a canned payload
// or error.
type fakeProvider struct {
	payload *wunderground.Payload
	err     error

	calls    int
	feature  string
	reqState string
	reqCity  string
}

func (f *fakeProvider) Fetch(_ context.Context, feature, state, city string) (*wunderground.Payload, error) {
	f.calls++
	f.feature = feature
	f.reqState = state
	f.reqCity = city
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func newTestService(p *fakeProvider) *Service {
	s := NewService(p, locnorm.NewStatic(), zap.NewNop())
	s.now = func() time.Time { return anchor }
	return s
}

func currentPayload(obs *wunderground.CurrentObservation) *wunderground.Payload {
	return &wunderground.Payload{CurrentObservation: obs}
}

func turn(text, intent string, entities ...dialog.Entity) *dialog.NLUOutput {
	out := &dialog.NLUOutput{Entities: entities}
	out.Input.Text = text
	if intent != "" {
		out.Intents = []dialog.Intent{{Intent: intent, Confidence: 0.9}}
	}
	return out
}

func TestHandleTurnAnswersCurrentWeather(t *testing.T) {
	provider := &fakeProvider{payload: currentPayload(sampleObservation())}
	s := newTestService(provider)
	conv := &dialog.Context{}

	reply := s.HandleTurn(context.Background(), conv, turn("what's the weather in San Francisco", "Weather",
		dialog.Entity{Entity: "city", Value: "San Francisco"}))

	if reply.Kind != dialog.ReplyTell {
		t.Fatalf("kind = %v, reply %+v", reply.Kind, reply)
	}
	want := "In San Francisco, California it  is currently Cloudy and the temperature is 60 degrees Fahrenheit"
	if reply.Speech != want {
		t.Errorf("speech\n got %q\nwant %q", reply.Speech, want)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
	if provider.feature != "conditions" || provider.reqState != "CA" || provider.reqCity != "San Francisco" {
		t.Errorf("request = %s %s/%s", provider.feature, provider.reqState, provider.reqCity)
	}
}

func TestHandleTurnAsksForCityWithoutTouchingProvider(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestService(provider)
	conv := &dialog.Context{}

	reply := s.HandleTurn(context.Background(), conv, turn("what's the weather like", "Weather"))

	if reply.Kind != dialog.ReplyAsk {
		t.Fatalf("kind = %v", reply.Kind)
	}
	if reply.Speech != "Which city are you interested in?" {
		t.Errorf("speech = %q", reply.Speech)
	}
	if !reply.AutoMic {
		t.Error("ask should reopen the microphone")
	}
	if conv.Awaiting != dialog.AwaitingCity {
		t.Errorf("awaiting = %v", conv.Awaiting)
	}
	if provider.calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.calls)
	}
}

func TestHandleTurnCityFollowUp(t *testing.T) {
	provider := &fakeProvider{payload: currentPayload(sampleObservation())}
	s := newTestService(provider)
	conv := &dialog.Context{Condition: dialog.ConditionWeather}
	conv.AwaitQuestion(dialog.AwaitingCity, nil)

	reply := s.HandleTurn(context.Background(), conv, turn("SF", ""))

	if reply.Kind != dialog.ReplyTell {
		t.Fatalf("kind = %v, reply %+v", reply.Kind, reply)
	}
	if conv.City != "San Francisco" {
		t.Errorf("city = %q", conv.City)
	}
}

func TestHandleTurnStateAloneUsesProbableCity(t *testing.T) {
	provider := &fakeProvider{payload: currentPayload(sampleObservation())}
	s := newTestService(provider)
	conv := &dialog.Context{}

	reply := s.HandleTurn(context.Background(), conv, turn("how is the weather in Texas", "Weather",
		dialog.Entity{Entity: "state", Value: "Texas"}))

	if reply.Kind != dialog.ReplyTell {
		t.Fatalf("kind = %v, reply %+v", reply.Kind, reply)
	}
	if provider.reqCity != "Houston" || provider.reqState != "TX" {
		t.Errorf("request = %s/%s, want TX/Houston", provider.reqState, provider.reqCity)
	}
}

func TestHandleTurnDateTooFarAhead(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestService(provider)
	conv := &dialog.Context{}

	reply := s.HandleTurn(context.Background(), conv, turn("weather in Austin on June 25th", "Weather",
		dialog.Entity{Entity: "city", Value: "Austin"},
		dialog.Entity{Entity: "date", Value: "June 25th"}))

	if reply.Kind != dialog.ReplyError {
		t.Fatalf("kind = %v", reply.Kind)
	}
	if reply.Speech != "I'm sorry, I cannot see more than 10 days into the future." {
		t.Errorf("speech = %q", reply.Speech)
	}
	if provider.calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.calls)
	}
}

func TestHandleTurnForecastFeature(t *testing.T) {
	payload := &wunderground.Payload{Forecast: sampleForecast()}
	provider := &fakeProvider{payload: payload}
	s := newTestService(provider)
	conv := &dialog.Context{}

	reply := s.HandleTurn(context.Background(), conv, turn("weather in Austin tomorrow", "Weather",
		dialog.Entity{Entity: "city", Value: "Austin"},
		dialog.Entity{Entity: "date", Value: "tomorrow"}))

	if reply.Kind != dialog.ReplyTell {
		t.Fatalf("kind = %v, reply %+v", reply.Kind, reply)
	}
	if provider.feature != "forecast" {
		t.Errorf("feature = %q, want forecast", provider.feature)
	}
}

func TestHandleTurnStateDisambiguation(t *testing.T) {
	payload := &wunderground.Payload{}
	payload.Response.Results = []wunderground.LocationResult{
		{State: "MO", Country: "US", CountryName: "USA"},
		{State: "IL", Country: "US", CountryName: "USA"},
		{State: "MO", Country: "US", CountryName: "USA"},
	}
	provider := &fakeProvider{payload: payload}
	s := newTestService(provider)
	conv := &dialog.Context{}

	reply := s.HandleTurn(context.Background(), conv, turn("weather in Springfield", "Weather",
		dialog.Entity{Entity: "city", Value: "Springfield"}))

	if reply.Kind != dialog.ReplyAsk {
		t.Fatalf("kind = %v, reply %+v", reply.Kind, reply)
	}
	wantLines := []string{
		"I found 2 states in USA with a city named Springfield:",
		"Missouri (MO), Illinois (IL)",
		"Which state are you interested in?",
	}
	if !reflect.DeepEqual(reply.Text, wantLines) {
		t.Errorf("text = %q, want %q", reply.Text, wantLines)
	}
	if reply.Speech != wantLines[0]+". "+wantLines[2] {
		t.Errorf("speech = %q", reply.Speech)
	}
	wantOptions := []string{"missouri", "illinois", "mo", "il"}
	if !reflect.DeepEqual(reply.Options, wantOptions) {
		t.Errorf("options = %q, want %q", reply.Options, wantOptions)
	}
	if conv.Awaiting != dialog.AwaitingState {
		t.Errorf("awaiting = %v", conv.Awaiting)
	}
}

func TestHandleTurnCountryDisambiguation(t *testing.T) {
	payload := &wunderground.Payload{}
	payload.Response.Results = []wunderground.LocationResult{
		{Country: "FR", CountryName: "France"},
		{Country: "US", CountryName: "USA"},
	}
	provider := &fakeProvider{payload: payload}
	s := newTestService(provider)
	conv := &dialog.Context{}

	reply := s.HandleTurn(context.Background(), conv, turn("weather in Paris", "Weather",
		dialog.Entity{Entity: "city", Value: "Paris"}))

	if reply.Kind != dialog.ReplyAsk {
		t.Fatalf("kind = %v, reply %+v", reply.Kind, reply)
	}
	if reply.Text[0] != "I found 2 countries in the world with a city named Paris:" {
		t.Errorf("heading = %q", reply.Text[0])
	}
	wantOptions := []string{"france", "usa", "fr", "us"}
	if !reflect.DeepEqual(reply.Options, wantOptions) {
		t.Errorf("options = %q, want %q", reply.Options, wantOptions)
	}
}

func TestHandleTurnDisambiguationFollowUp(t *testing.T) {
	provider := &fakeProvider{payload: currentPayload(sampleObservation())}
	s := newTestService(provider)
	conv := &dialog.Context{City: "Springfield"}
	conv.AwaitQuestion(dialog.AwaitingState, []string{"missouri", "illinois", "mo", "il"})

	reply := s.HandleTurn(context.Background(), conv, turn("Missouri", ""))

	if reply.Kind != dialog.ReplyTell {
		t.Fatalf("kind = %v, reply %+v", reply.Kind, reply)
	}
	if provider.reqState != "MO" || provider.reqCity != "Springfield" {
		t.Errorf("request = %s/%s, want MO/Springfield", provider.reqState, provider.reqCity)
	}
	if conv.Awaiting != dialog.AwaitingNone {
		t.Errorf("awaiting = %v, want cleared", conv.Awaiting)
	}
}

func TestHandleTurnDisambiguationRepeat(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestService(provider)
	conv := &dialog.Context{City: "Springfield"}
	conv.AwaitQuestion(dialog.AwaitingState, []string{"missouri", "mo"})

	reply := s.HandleTurn(context.Background(), conv, turn("the nice one", ""))

	if reply.Kind != dialog.ReplyAsk {
		t.Fatalf("kind = %v", reply.Kind)
	}
	if !reflect.DeepEqual(reply.Options, []string{"missouri", "mo"}) {
		t.Errorf("options = %q", reply.Options)
	}
	if provider.calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.calls)
	}
}

func TestHandleTurnProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"query not found",
			`{"response": {"error": {"type": "querynotfound", "description": "No cities match your search query"}}}`,
			"I'm sorry, but no cities match your search query for Atlantis",
		},
		{
			"key not found",
			`{"response": {"error": {"type": "keynotfound", "description": "this key does not exist"}}}`,
			"Please provide a Weather Underground API key.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := wunderground.DecodePayload([]byte(tt.body))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			provider := &fakeProvider{payload: payload}
			s := newTestService(provider)
			conv := &dialog.Context{}

			reply := s.HandleTurn(context.Background(), conv, turn("weather in Atlantis", "Weather",
				dialog.Entity{Entity: "city", Value: "Atlantis"}))

			if reply.Kind != dialog.ReplyError {
				t.Fatalf("kind = %v, reply %+v", reply.Kind, reply)
			}
			if reply.Speech != tt.want {
				t.Errorf("speech\n got %q\nwant %q", reply.Speech, tt.want)
			}
		})
	}
}

func TestHandleTurnCommunicationError(t *testing.T) {
	provider := &fakeProvider{err: wunderground.ErrCommunication}
	s := newTestService(provider)
	conv := &dialog.Context{}

	reply := s.HandleTurn(context.Background(), conv, turn("weather in Austin", "Weather",
		dialog.Entity{Entity: "city", Value: "Austin"}))

	if reply.Kind != dialog.ReplyError {
		t.Fatalf("kind = %v", reply.Kind)
	}
	if reply.Speech != wunderground.ErrCommunication.Error() {
		t.Errorf("speech = %q", reply.Speech)
	}
}

func TestHandleTurnSmallTalk(t *testing.T) {
	provider := &fakeProvider{}
	s := newTestService(provider)
	conv := &dialog.Context{}

	reply := s.HandleTurn(context.Background(), conv, turn("hello", "SmallTalkGreeting"))

	if reply.Kind != dialog.ReplyTell {
		t.Fatalf("kind = %v", reply.Kind)
	}
	if provider.calls != 0 {
		t.Errorf("provider calls = %d, want 0", provider.calls)
	}

	reply = s.HandleTurn(context.Background(), conv, turn("bye", "SmallTalkFarewell"))
	if reply.Speech != "Goodbye! Ask me about the weather any time." {
		t.Errorf("speech = %q", reply.Speech)
	}
}

func TestHandleTurnAdoptsCanonicalCity(t *testing.T) {
	provider := &fakeProvider{payload: currentPayload(sampleObservation())}
	s := newTestService(provider)
	conv := &dialog.Context{}

	s.HandleTurn(context.Background(), conv, turn("weather in SF", "Weather",
		dialog.Entity{Entity: "city", Value: "SF"}))

	if conv.City != "San Francisco" {
		t.Errorf("city = %q, want canonical spelling for follow-ups", conv.City)
	}
}
