package chat

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

type mongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{collection: db.Collection("messages")}
}

func (m *mongoStore) Send(ctx context.Context, msg *Message) error {
	hasText := msg.Text != ""
	hasAudio := msg.AudioURI != ""
	if hasText == hasAudio {
		return ErrEmptyMessage
	}

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	res, err := m.collection.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid
	}
	return nil
}

func (m *mongoStore) Conversation(ctx context.Context, a, b string) ([]Message, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"sender_email": a, "receiver_email": b},
			bson.M{"sender_email": b, "receiver_email": a},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode conversation: %w", err)
	}
	return messages, nil
}

func (m *mongoStore) Counterparts(ctx context.Context, me string) ([]string, error) {
	sent, err := m.collection.Distinct(ctx, "receiver_email", bson.M{"sender_email": me})
	if err != nil {
		return nil, fmt.Errorf("failed to query sent counterparts: %w", err)
	}
	received, err := m.collection.Distinct(ctx, "sender_email", bson.M{"receiver_email": me})
	if err != nil {
		return nil, fmt.Errorf("failed to query received counterparts: %w", err)
	}

	seen := make(map[string]struct{})
	var peers []string
	for _, raw := range append(sent, received...) {
		email, ok := raw.(string)
		if !ok || email == me {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		peers = append(peers, email)
	}
	sort.Strings(peers)
	return peers, nil
}
