package httpapi

import (
	"chatcore.dev/chatstream/reqctx"
	"chatcore.dev/chatstream/skill"
)

// requestStore wires the skill and MCP stores into a single reqctx.Store
// the gin middleware binds onto each request's context.
type requestStore struct {
	skills skill.Service
	mcps   reqctx.MCPStore
}

func newRequestStore(skills skill.Service, mcps reqctx.MCPStore) requestStore {
	return requestStore{skills: skills, mcps: mcps}
}

// NewStore builds the Controller.Store value from the concrete skill and MCP
// stores; callers outside this package cannot construct a requestStore
// directly since its fields are unexported.
func NewStore(skills skill.Service, mcps reqctx.MCPStore) requestStore {
	return newRequestStore(skills, mcps)
}

func (s requestStore) Skills() reqctx.SkillStore { return s.skills }
func (s requestStore) MCPs() reqctx.MCPStore     { return s.mcps }
