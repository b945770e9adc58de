package tools

import (
	"context"
	"encoding/json"

	"chatcore.dev/chatstream/reqctx"
)

// LoadSkillArgs is the reflected parameter shape for load_skill.
type LoadSkillArgs struct {
	SkillName string `json:"skill_name" jsonschema:"description=Name of the skill to load."`
}

// LoadSkill returns the body of one of the caller's skills, reading the
// caller's user id from Request Context.
type LoadSkill struct{}

func (LoadSkill) Name() string        { return "load_skill" }
func (LoadSkill) Description() string { return "Load the full content of a named skill." }
func (LoadSkill) Args() any           { return &LoadSkillArgs{} }

func (LoadSkill) Call(ctx context.Context, raw json.RawMessage) (any, error) {
	var args LoadSkillArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}

	userID, ok := reqctx.Caller(ctx)
	if !ok {
		return map[string]any{"error": "no authenticated caller in context"}, nil
	}
	store, ok := reqctx.StoreFrom(ctx)
	if !ok {
		return map[string]any{"error": "no store bound in context"}, nil
	}

	content, found, err := store.Skills().GetContentByName(ctx, userID, args.SkillName)
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string]any{"error": "skill not found: " + args.SkillName}, nil
	}
	return content, nil
}

// UpdateSkillArgs is the reflected parameter shape for update_skill.
type UpdateSkillArgs struct {
	SkillName   string `json:"skill_name" jsonschema:"description=Name of the skill to create or update."`
	Description string `json:"description" jsonschema:"description=Short description of what the skill does."`
	Body        string `json:"body" jsonschema:"description=Full skill content to persist."`
}

// UpdateSkill writes or overwrites one of the caller's skills.
type UpdateSkill struct{}

func (UpdateSkill) Name() string        { return "update_skill" }
func (UpdateSkill) Description() string { return "Create or update a skill owned by the caller." }
func (UpdateSkill) Args() any           { return &UpdateSkillArgs{} }

func (UpdateSkill) Call(ctx context.Context, raw json.RawMessage) (any, error) {
	var args UpdateSkillArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}

	userID, ok := reqctx.Caller(ctx)
	if !ok {
		return false, nil
	}
	store, ok := reqctx.StoreFrom(ctx)
	if !ok {
		return false, nil
	}

	ok, err := store.Skills().UpdateByName(ctx, userID, args.SkillName, args.Description, args.Body)
	if err != nil {
		return nil, err
	}
	return ok, nil
}
