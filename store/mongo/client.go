// Package mongo backs the MCP Config and Skill CRUD repositories with
// go.mongodb.org/mongo-driver/v2, following the session store's
// Store-wraps-Client shape: a small Options struct, ensureIndexes run once
// at construction, and bson.M filters scoped to (user_id, name).
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	defaultMcpsCollection   = "user_mcps"
	defaultSkillsCollection = "user_skills"
	defaultOpTimeout        = 5 * time.Second
)

// Options configures both repositories built from one database handle.
type Options struct {
	Client          *mongodriver.Client
	Database        string
	McpsCollection  string
	SkillCollection string
	Timeout         time.Duration
}

func (o Options) withDefaults() Options {
	if o.McpsCollection == "" {
		o.McpsCollection = defaultMcpsCollection
	}
	if o.SkillCollection == "" {
		o.SkillCollection = defaultSkillsCollection
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultOpTimeout
	}
	return o
}

// NewStores validates opts, ensures the required indexes exist, and returns
// both repositories backed by the same *mongo.Database.
func NewStores(ctx context.Context, opts Options) (*McpStore, *SkillStore, error) {
	if opts.Client == nil {
		return nil, nil, errors.New("store/mongo: client is required")
	}
	if opts.Database == "" {
		return nil, nil, errors.New("store/mongo: database name is required")
	}
	opts = opts.withDefaults()

	db := opts.Client.Database(opts.Database)
	mcps := db.Collection(opts.McpsCollection)
	skills := db.Collection(opts.SkillCollection)

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := ensureUniqueUserNameIndex(ctx, mcps); err != nil {
		return nil, nil, err
	}
	if err := ensureUniqueUserNameIndex(ctx, skills); err != nil {
		return nil, nil, err
	}

	return &McpStore{coll: mcps, timeout: opts.Timeout},
		&SkillStore{coll: skills, timeout: opts.Timeout},
		nil
}

func ensureUniqueUserNameIndex(ctx context.Context, coll *mongodriver.Collection) error {
	model := mongodriver.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := coll.Indexes().CreateOne(ctx, model)
	return err
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
