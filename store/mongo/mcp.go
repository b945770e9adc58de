package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"chatcore.dev/chatstream/mcpconfig"
)

// McpStore implements mcpconfig.Repository and reqctx.MCPStore over a
// user_mcps collection.
type McpStore struct {
	coll    *mongodriver.Collection
	timeout time.Duration
}

type mcpDocument struct {
	ID            string         `bson:"_id"`
	UserID        string         `bson:"user_id"`
	Name          string         `bson:"name"`
	Transport     string         `bson:"transport"`
	Command       string         `bson:"command,omitempty"`
	Args          []string       `bson:"args,omitempty"`
	Env           map[string]string `bson:"env,omitempty"`
	URL           string         `bson:"url,omitempty"`
	APIKey        string         `bson:"api_key,omitempty"`
	Headers       map[string]string `bson:"headers,omitempty"`
	LastStatus    string         `bson:"last_status,omitempty"`
	LastToolCount int            `bson:"last_tool_count,omitempty"`
	LastCheckedAt time.Time      `bson:"last_checked_at,omitempty"`
	CreatedAt     time.Time      `bson:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at"`
}

func (d mcpDocument) toDomain() mcpconfig.UserMcp {
	id, _ := uuid.Parse(d.ID)
	userID, _ := uuid.Parse(d.UserID)
	return mcpconfig.UserMcp{
		ID:     id,
		UserID: userID,
		Name:   d.Name,
		Config: mcpconfig.Config{
			Transport: mcpconfig.Transport(d.Transport),
			Command:   d.Command,
			Args:      d.Args,
			Env:       d.Env,
			URL:       d.URL,
			APIKey:    d.APIKey,
			Headers:   d.Headers,
		},
		LastStatus:    d.LastStatus,
		LastToolCount: d.LastToolCount,
		LastCheckedAt: d.LastCheckedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func fromConfig(id, userID uuid.UUID, name string, c mcpconfig.Config, createdAt, updatedAt time.Time) mcpDocument {
	return mcpDocument{
		ID:        id.String(),
		UserID:    userID.String(),
		Name:      name,
		Transport: string(c.Transport),
		Command:   c.Command,
		Args:      c.Args,
		Env:       c.Env,
		URL:       c.URL,
		APIKey:    c.APIKey,
		Headers:   c.Headers,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

func (s *McpStore) List(ctx context.Context, userID uuid.UUID) ([]mcpconfig.UserMcp, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	cur, err := s.coll.Find(ctx, bson.M{"user_id": userID.String()})
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []mcpconfig.UserMcp
	for cur.Next(ctx) {
		var doc mcpDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (s *McpStore) Get(ctx context.Context, id, userID uuid.UUID) (mcpconfig.UserMcp, bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var doc mcpDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id.String(), "user_id": userID.String()}).Decode(&doc)
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return mcpconfig.UserMcp{}, false, nil
	}
	if err != nil {
		return mcpconfig.UserMcp{}, false, err
	}
	return doc.toDomain(), true, nil
}

func (s *McpStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]any, error) {
	rows, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out, nil
}

func (s *McpStore) Create(ctx context.Context, userID uuid.UUID, name string, config mcpconfig.Config) (mcpconfig.UserMcp, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	now := time.Now().UTC()
	doc := fromConfig(uuid.New(), userID, name, config, now, now)
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return mcpconfig.UserMcp{}, err
	}
	return doc.toDomain(), nil
}

func (s *McpStore) Update(ctx context.Context, id, userID uuid.UUID, name *string, config *mcpconfig.Config) (mcpconfig.UserMcp, bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if name != nil {
		set["name"] = *name
	}
	if config != nil {
		set["transport"] = string(config.Transport)
		set["command"] = config.Command
		set["args"] = config.Args
		set["env"] = config.Env
		set["url"] = config.URL
		set["api_key"] = config.APIKey
		set["headers"] = config.Headers
	}

	filter := bson.M{"_id": id.String(), "user_id": userID.String()}
	res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return mcpconfig.UserMcp{}, false, err
	}
	if res.MatchedCount == 0 {
		return mcpconfig.UserMcp{}, false, nil
	}
	return s.Get(ctx, id, userID)
}

func (s *McpStore) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String(), "user_id": userID.String()})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *McpStore) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string, toolCount int) (mcpconfig.UserMcp, bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	filter := bson.M{"_id": id.String(), "user_id": userID.String()}
	update := bson.M{"$set": bson.M{
		"last_status":     status,
		"last_tool_count": toolCount,
		"last_checked_at": time.Now().UTC(),
		"updated_at":      time.Now().UTC(),
	}}
	res, err := s.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(false))
	if err != nil {
		return mcpconfig.UserMcp{}, false, err
	}
	if res.MatchedCount == 0 {
		return mcpconfig.UserMcp{}, false, nil
	}
	return s.Get(ctx, id, userID)
}
