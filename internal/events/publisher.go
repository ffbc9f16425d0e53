package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"notes-service/internal/model"
)

type EventPublisher interface {
	PublishUserRegistered(user *model.User) error
	PublishNoteCreated(note *model.Note) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type UserRegisteredEvent struct {
	EventType    string    `json:"event_type"`
	UserID       int       `json:"user_id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
}

type NoteCreatedEvent struct {
	EventType string    `json:"event_type"`
	NoteID    int       `json:"note_id"`
	Author    string    `json:"author"`
	UserID    *int      `json:"user_id"`
	Date      time.Time `json:"date"`
}

func (p *NatsPublisher) PublishUserRegistered(user *model.User) error {
	event := UserRegisteredEvent{
		EventType:    "user.registered",
		UserID:       user.ID,
		Username:     user.Username,
		Name:         user.Name,
		RegisteredAt: user.CreatedAt,
	}
	return p.publish("user.registered", event)
}

func (p *NatsPublisher) PublishNoteCreated(note *model.Note) error {
	event := NoteCreatedEvent{
		EventType: "note.created",
		NoteID:    note.ID,
		Author:    note.Author,
		UserID:    note.UserID,
		Date:      note.Date,
	}
	return p.publish("note.created", event)
}

func (p *NatsPublisher) publish(subject string, event any) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		slog.Error("marshalling event", "subject", subject, "error", err)
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		slog.Error("publishing to NATS", "subject", subject, "error", err)
		return err
	}

	slog.Info("published event", "subject", subject)
	return nil
}

// NoopPublisher is used when no broker is configured; the service runs
// without emitting events.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserRegistered(*model.User) error { return nil }
func (NoopPublisher) PublishNoteCreated(*model.Note) error    { return nil }
