package mcpconfig

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestConfigValidateStdioRequiresCommand(t *testing.T) {
	err := Config{Transport: TransportStdio}.Validate()
	require.Error(t, err)

	err = Config{Transport: TransportStdio, Command: "npx"}.Validate()
	require.NoError(t, err)
}

func TestConfigValidateStreamableHTTPRequiresURL(t *testing.T) {
	err := Config{Transport: TransportStreamableHTTP}.Validate()
	require.Error(t, err)

	err = Config{Transport: TransportStreamableHTTP, URL: "https://example.com/mcp"}.Validate()
	require.NoError(t, err)
}

func TestConfigValidateRejectsUnknownTransport(t *testing.T) {
	err := Config{Transport: "carrier-pigeon"}.Validate()
	require.Error(t, err)
}

type fakeRepo struct {
	created UserMcp
	err     error
}

func (f *fakeRepo) List(ctx context.Context, userID uuid.UUID) ([]UserMcp, error) {
	return nil, nil
}
func (f *fakeRepo) Get(ctx context.Context, id, userID uuid.UUID) (UserMcp, bool, error) {
	return UserMcp{}, false, nil
}
func (f *fakeRepo) Create(ctx context.Context, userID uuid.UUID, name string, config Config) (UserMcp, error) {
	f.created = UserMcp{UserID: userID, Name: name, Config: config}
	return f.created, f.err
}
func (f *fakeRepo) Update(ctx context.Context, id, userID uuid.UUID, name *string, config *Config) (UserMcp, bool, error) {
	return UserMcp{}, false, nil
}
func (f *fakeRepo) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeRepo) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string, toolCount int) (UserMcp, bool, error) {
	return UserMcp{}, false, nil
}

func TestServiceCreateRejectsInvalidConfigBeforeCallingRepository(t *testing.T) {
	repo := &fakeRepo{}
	svc := Service{Repo: repo}

	_, err := svc.Create(context.Background(), uuid.New(), "broken", Config{Transport: TransportStdio})
	require.Error(t, err)
	require.Equal(t, UserMcp{}, repo.created)
}

func TestServiceCreateDelegatesOnValidConfig(t *testing.T) {
	repo := &fakeRepo{}
	svc := Service{Repo: repo}

	userID := uuid.New()
	_, err := svc.Create(context.Background(), userID, "search", Config{Transport: TransportStdio, Command: "npx"})
	require.NoError(t, err)
	require.Equal(t, "search", repo.created.Name)
	require.Equal(t, userID, repo.created.UserID)
}
