// Package conversation orchestrates turn-taking between the user, the
// safety check and the remote model.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/havenchat/haven/internal/chat"
	"github.com/havenchat/haven/internal/debug"
	"github.com/havenchat/haven/internal/events"
	"github.com/havenchat/haven/internal/gemini"
	"github.com/havenchat/haven/internal/protocol"
	"github.com/havenchat/haven/internal/pubsub"
	"github.com/havenchat/haven/internal/safety"
	"github.com/havenchat/haven/internal/session"
)

// ErrBusy is returned when a turn is already in flight for the session.
var ErrBusy = errors.New("a reply is already on its way")

// ErrEmpty is returned for a submit with no text and no attachment.
var ErrEmpty = errors.New("nothing to send")

// FallbackText is appended when the remote call fails during a chat turn.
// Transport failures never surface as errors; they degrade to this message.
const FallbackText = "I'm feeling a bit stuck right now and couldn't think " +
	"of a reply. Could you try saying that again in a moment?"

// EmptyReplyText is appended when the model returns no text at all.
const EmptyReplyText = "Sorry, my mind went blank for a second there. " +
	"Could you say that again?"

// StudyPlanFallbackText is appended when the remote call fails during a
// study-plan turn.
const StudyPlanFallbackText = "I couldn't put your study plan together just " +
	"now. Give me a moment and try the planner again."

// StudyPlan is the study-plan form input, turned into one synthesized turn.
type StudyPlan struct {
	Subject       string
	Goal          string
	MinutesPerDay int
	DaysUntilDue  int
}

// Prompt renders the fixed task template sent in place of raw user text.
func (p StudyPlan) Prompt() string {
	return fmt.Sprintf(
		"Please make me a simple, encouraging study plan.\n"+
			"Subject: %s\n"+
			"Goal: %s\n"+
			"I can study about %d minutes per day and I have %d days until the deadline.\n"+
			"Break it into small daily steps with short breaks, and keep it realistic.",
		p.Subject, p.Goal, p.MinutesPerDay, p.DaysUntilDue)
}

// Controller runs one turn at a time per session: the user message is
// appended first, the crisis check runs before any network call, and every
// outcome (reply, empty reply, transport failure) ends as an appended
// model message. At most one turn may be in flight per session.
type Controller struct {
	client   gemini.Client
	sessions *session.Service
	hub      *pubsub.Hub

	inFlight map[string]struct{}
	mu       sync.Mutex
}

// NewController creates a conversation controller.
func NewController(client gemini.Client, sessions *session.Service, hub *pubsub.Hub) *Controller {
	return &Controller{
		client:   client,
		sessions: sessions,
		hub:      hub,
		inFlight: make(map[string]struct{}),
	}
}

// IsBusy reports whether a turn is in flight for the session.
func (c *Controller) IsBusy(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inFlight[sessionID]
	return ok
}

// Send runs one chat turn. The submit is rejected with ErrEmpty when both
// text and attachment are missing, and with ErrBusy while a previous turn
// for the session is unresolved.
func (c *Controller) Send(ctx context.Context, sessionID, text string, att *chat.Attachment) error {
	if text == "" && att == nil {
		return ErrEmpty
	}
	return c.run(ctx, sessionID, text, att, chat.KindChat, FallbackText)
}

// SendStudyPlan runs one study-plan turn through the same machine, with a
// synthesized prompt and its own failure fallback.
func (c *Controller) SendStudyPlan(ctx context.Context, sessionID string, plan StudyPlan) error {
	return c.run(ctx, sessionID, plan.Prompt(), nil, chat.KindStudyPlan, StudyPlanFallbackText)
}

func (c *Controller) run(ctx context.Context, sessionID, text string, att *chat.Attachment, kind chat.Kind, fallback string) error {
	if err := c.acquire(sessionID); err != nil {
		return err
	}
	defer c.release(sessionID)

	// The user message is appended before anything else so it renders
	// while the reply is pending.
	userMsg := chat.NewUserMessage(uuid.New().String(), text, att)
	userMsg.Kind = kind
	if err := c.sessions.Append(ctx, sessionID, userMsg); err != nil {
		return err
	}
	c.publishTurn(pubsub.EventStarted, events.NewTurnStartedEvent(sessionID))

	// Crisis check runs on every user turn, before any network call.
	if safety.Detect(text) {
		debug.Turn(sessionID, "crisis", "short-circuiting remote call")
		crisisMsg := chat.NewModelMessage(uuid.New().String(), chat.KindCrisis, safety.CrisisText)
		if err := c.sessions.Append(ctx, sessionID, crisisMsg); err != nil {
			return err
		}
		c.publishTurn(pubsub.EventCompleted, events.NewTurnCrisisEvent(sessionID))
		c.publishTurn(pubsub.EventCompleted, events.NewTurnFinishedEvent(sessionID))
		return nil
	}

	history, err := c.sessions.Messages(sessionID)
	if err != nil {
		return err
	}

	debug.Turn(sessionID, "sending", fmt.Sprintf("history=%d attachment=%v", len(history), att != nil))
	raw, err := c.client.Generate(ctx, history)
	if err != nil {
		// Recovered locally: one fallback message, no retry, nothing
		// surfaced to the UI beyond the message itself.
		debug.Error("conversation", err, "remote call failed")
		failMsg := chat.NewModelMessage(uuid.New().String(), kind, fallback)
		if appendErr := c.sessions.Append(ctx, sessionID, failMsg); appendErr != nil {
			return appendErr
		}
		c.publishTurn(pubsub.EventFailed, events.NewTurnFailedEvent(sessionID))
		c.publishTurn(pubsub.EventCompleted, events.NewTurnFinishedEvent(sessionID))
		return nil
	}

	result := protocol.Parse(raw)
	replyText := result.Text
	if replyText == "" {
		// Never append an empty message.
		replyText = EmptyReplyText
	}

	replyMsg := chat.NewModelMessage(uuid.New().String(), kind, replyText)
	if err := c.sessions.Append(ctx, sessionID, replyMsg); err != nil {
		return err
	}

	debug.Turn(sessionID, "done", fmt.Sprintf("chips=%d", len(result.Chips)))
	c.publishTurn(pubsub.EventCompleted, events.NewTurnReplyEvent(sessionID, result.Chips))
	c.publishTurn(pubsub.EventCompleted, events.NewTurnFinishedEvent(sessionID))
	return nil
}

func (c *Controller) acquire(sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.inFlight[sessionID]; ok {
		return ErrBusy
	}
	c.inFlight[sessionID] = struct{}{}
	return nil
}

func (c *Controller) release(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, sessionID)
}

func (c *Controller) publishTurn(eventType pubsub.EventType, event events.TurnEvent) {
	if c.hub != nil {
		c.hub.Turn.Publish(eventType, event)
	}
}
