// Package chat stores the peer-to-peer support conversation: text messages
// and references to recorded audio clips.
package chat

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrEmptyMessage = errors.New("message needs text or an audio reference")

type Message struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderEmail   string             `bson:"sender_email" json:"sender_email"`
	ReceiverEmail string             `bson:"receiver_email" json:"receiver_email"`
	Text          string             `bson:"text,omitempty" json:"text,omitempty"`
	AudioURI      string             `bson:"audio_uri,omitempty" json:"audio_uri,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

type Store interface {
	// Send persists one message; exactly one of Text or AudioURI must be set.
	Send(ctx context.Context, msg *Message) error

	// Conversation returns all messages between a and b, oldest first.
	Conversation(ctx context.Context, a, b string) ([]Message, error)

	// Counterparts returns the distinct peers me has exchanged messages with.
	Counterparts(ctx context.Context, me string) ([]string, error)
}
