// Package mcpconfig validates and persists the caller-owned MCP server
// configs the MCP Client & Tool Bridge dials at the start of a chat request.
package mcpconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Transport names a supported MCP connection kind.
type Transport string

const (
	TransportStdio          Transport = "stdio"
	TransportStreamableHTTP Transport = "streamable-http"
)

// Config is the caller-supplied, validated shape of one server's connection
// details. Exactly one of the Stdio/StreamableHTTP-only fields is populated,
// selected by Transport.
type Config struct {
	Transport Transport

	// stdio
	Command string
	Args    []string
	Env     map[string]string

	// streamable-http
	URL     string
	APIKey  string
	Headers map[string]string
}

// Validate checks the config shape, mirroring the source's
// validate_mcp_config: transport must be recognized, and the transport's
// required field must be non-empty.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio:
		if c.Command == "" {
			return errors.New("mcpconfig: command is required for stdio transport")
		}
		return nil
	case TransportStreamableHTTP:
		if c.URL == "" {
			return errors.New("mcpconfig: url is required for streamable-http transport")
		}
		return nil
	default:
		return fmt.Errorf("mcpconfig: transport must be %q or %q, got %q", TransportStdio, TransportStreamableHTTP, c.Transport)
	}
}

// UserMcp is one caller-owned server config plus its cached probe status.
type UserMcp struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Config        Config
	LastStatus    string
	LastToolCount int
	LastCheckedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Repository is the persistence seam; store/mongo.McpStore implements it.
type Repository interface {
	List(ctx context.Context, userID uuid.UUID) ([]UserMcp, error)
	Get(ctx context.Context, id, userID uuid.UUID) (UserMcp, bool, error)
	Create(ctx context.Context, userID uuid.UUID, name string, config Config) (UserMcp, error)
	Update(ctx context.Context, id, userID uuid.UUID, name *string, config *Config) (UserMcp, bool, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string, toolCount int) (UserMcp, bool, error)
}

// Service is the thin business-logic layer the HTTP Surface calls through:
// validate, then delegate to the repository.
type Service struct {
	Repo Repository
}

func (s Service) List(ctx context.Context, userID uuid.UUID) ([]UserMcp, error) {
	return s.Repo.List(ctx, userID)
}

func (s Service) Get(ctx context.Context, id, userID uuid.UUID) (UserMcp, bool, error) {
	return s.Repo.Get(ctx, id, userID)
}

func (s Service) Create(ctx context.Context, userID uuid.UUID, name string, config Config) (UserMcp, error) {
	if err := config.Validate(); err != nil {
		return UserMcp{}, err
	}
	return s.Repo.Create(ctx, userID, name, config)
}

func (s Service) Update(ctx context.Context, id, userID uuid.UUID, name *string, config *Config) (UserMcp, bool, error) {
	if config != nil {
		if err := config.Validate(); err != nil {
			return UserMcp{}, false, err
		}
	}
	return s.Repo.Update(ctx, id, userID, name, config)
}

func (s Service) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return s.Repo.Delete(ctx, id, userID)
}

func (s Service) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string, toolCount int) (UserMcp, bool, error) {
	return s.Repo.UpdateStatus(ctx, id, userID, status, toolCount)
}
