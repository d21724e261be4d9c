// Package httpapi is the chat gateway: it accepts NLU output for one
// utterance, threads the session's conversation context through a dialog
// turn, and returns the reply.
package httpapi

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sonnyweather/weather-dialog/internal/chatlog"
	"github.com/sonnyweather/weather-dialog/internal/dialog"
	"github.com/sonnyweather/weather-dialog/internal/session"
	"github.com/sonnyweather/weather-dialog/internal/weather"
)

var validate = validator.New()

// Deps carries the collaborators the routes need.
type Deps struct {
	Service  *weather.Service
	Sessions *session.Store
	Recorder chatlog.Recorder // nil disables turn logging and /chats
	LogUser  string
	LogPass  string
	Log      *zap.Logger
}

// messageRequest is one turn's worth of NLU output. The client may either
// echo the context from the previous response (caller-owned state, like the
// original web client) or rely on session_id and let the server keep it.
type messageRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	Input     struct {
		Text string `json:"text" validate:"required,max=1000"`
	} `json:"input"`
	Context  *dialog.Context `json:"context"`
	Intents  []dialog.Intent `json:"intents"`
	Entities []dialog.Entity `json:"entities"`
}

type messageResponse struct {
	SessionID string          `json:"session_id"`
	Context   *dialog.Context `json:"context"`
	Output    messageOutput   `json:"output"`
}

type messageOutput struct {
	Text    []string `json:"text"`
	Speech  string   `json:"speech"`
	Kind    string   `json:"kind"`
	AutoMic bool     `json:"autoMic,omitempty"`
	Image   string   `json:"image,omitempty"`
	Options []string `json:"options,omitempty"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	api := app.Group("/api")

	api.Post("/message", func(c *fiber.Ctx) error {
		var req messageRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid message payload")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		conv := resolveContext(&req, deps.Sessions)

		out := &dialog.NLUOutput{
			Input:    dialog.Input{Text: req.Input.Text},
			Intents:  req.Intents,
			Entities: req.Entities,
		}

		reply := deps.Service.HandleTurn(c.UserContext(), conv, out)

		deps.Sessions.Put(sessionID, conv)
		recordTurn(c, deps, sessionID, &req, out, reply)

		return c.JSON(messageResponse{
			SessionID: sessionID,
			Context:   conv,
			Output: messageOutput{
				Text:    reply.Text,
				Speech:  reply.Speech,
				Kind:    reply.Kind.String(),
				AutoMic: reply.AutoMic,
				Image:   reply.ImageURL,
				Options: reply.Options,
			},
		})
	})

	if deps.Recorder != nil {
		chats := app.Group("/chats")
		if deps.LogUser != "" {
			chats.Use(basicauth.New(basicauth.Config{
				Users: map[string]string{deps.LogUser: deps.LogPass},
			}))
		}
		chats.Get("/", func(c *fiber.Ctx) error {
			limit := c.QueryInt("limit", 500)
			turns, err := deps.Recorder.Recent(c.UserContext(), limit)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to read chat log")
			}
			return c.JSON(fiber.Map{"turns": turns})
		})
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dialog",
		})
	})
}

// resolveContext picks the conversation state for this turn: an echoed
// context wins, then the session store, then a fresh conversation.
func resolveContext(req *messageRequest, sessions *session.Store) *dialog.Context {
	if req.Context != nil {
		return req.Context
	}
	if req.SessionID != "" {
		if conv, err := sessions.Get(req.SessionID); err == nil {
			return conv
		}
	}
	return &dialog.Context{}
}

func recordTurn(c *fiber.Ctx, deps Deps, sessionID string, req *messageRequest, out *dialog.NLUOutput, reply dialog.Reply) {
	if deps.Recorder == nil {
		return
	}

	entities, _ := json.Marshal(req.Entities)

	confidence := 0.0
	if len(req.Intents) > 0 {
		confidence = req.Intents[0].Confidence
	}

	turn := chatlog.Turn{
		SessionID:  sessionID,
		Question:   req.Input.Text,
		Intent:     out.TopIntent(),
		Confidence: confidence,
		Entities:   string(entities),
		ReplyKind:  reply.Kind.String(),
		ReplyText:  reply.Speech,
	}
	if err := deps.Recorder.Record(c.UserContext(), turn); err != nil {
		deps.Log.Warn("failed to record turn", zap.String("session", sessionID), zap.Error(err))
	}
}
