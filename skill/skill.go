// Package skill implements the caller-owned skill catalog: CRUD scoped to
// one user, name validation per the Agent Skills naming convention, and the
// DB-then-file-backed content lookup the load_skill tool calls through.
package skill

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nameRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateName enforces the Agent Skills directory-name convention:
// lowercase letters, digits, and single hyphens between segments, 1-64
// characters, no leading or trailing hyphen.
func ValidateName(name string) error {
	if len(name) == 0 || len(name) > 64 {
		return fmt.Errorf("skill: name must be 1-64 characters, got %d", len(name))
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("skill: name %q must match %s", name, nameRe.String())
	}
	return nil
}

// Skill is one caller-owned skill row.
type Skill struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	Content     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FileCatalog is the read-only, non-user-scoped built-in skill catalog
// (skills/<name>/SKILL.md), consulted when a user has no DB row for name.
type FileCatalog interface {
	ContentByName(name string) (string, bool)
	Metadata() []Metadata
}

// Metadata is one catalog entry's frontmatter, used to render the
// system-prompt skills listing.
type Metadata struct {
	Name        string
	Description string
}

// Repository is the persistence seam; store/mongo.SkillStore implements it.
type Repository interface {
	List(ctx context.Context, userID uuid.UUID) ([]Skill, error)
	Get(ctx context.Context, id, userID uuid.UUID) (Skill, bool, error)
	GetByName(ctx context.Context, userID uuid.UUID, name string) (Skill, bool, error)
	Create(ctx context.Context, userID uuid.UUID, name, description, content string) (Skill, error)
	Update(ctx context.Context, id, userID uuid.UUID, description, content *string) (Skill, bool, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

// Service is the business-logic layer: name validation, DB-then-file
// fallback for tool-driven reads, and the system-prompt XML renderer.
type Service struct {
	Repo    Repository
	Catalog FileCatalog
}

func (s Service) List(ctx context.Context, userID uuid.UUID) ([]Skill, error) {
	return s.Repo.List(ctx, userID)
}

func (s Service) Get(ctx context.Context, id, userID uuid.UUID) (Skill, bool, error) {
	return s.Repo.Get(ctx, id, userID)
}

func (s Service) Create(ctx context.Context, userID uuid.UUID, name, description, content string) (Skill, error) {
	if err := ValidateName(name); err != nil {
		return Skill{}, err
	}
	return s.Repo.Create(ctx, userID, name, description, content)
}

func (s Service) Update(ctx context.Context, id, userID uuid.UUID, description, content *string) (Skill, bool, error) {
	return s.Repo.Update(ctx, id, userID, description, content)
}

func (s Service) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return s.Repo.Delete(ctx, id, userID)
}

// GetContentByName implements reqctx.SkillStore: a DB row for (userID, name)
// wins; absent that, fall back to the file-backed catalog.
func (s Service) GetContentByName(ctx context.Context, userID uuid.UUID, name string) (string, bool, error) {
	row, ok, err := s.Repo.GetByName(ctx, userID, name)
	if err != nil {
		return "", false, err
	}
	if ok {
		return row.Content, true, nil
	}
	if s.Catalog == nil {
		return "", false, nil
	}
	content, ok := s.Catalog.ContentByName(name)
	return content, ok, nil
}

// UpdateByName implements reqctx.SkillStore: create-or-update the caller's
// own DB row, rejecting names that don't satisfy ValidateName. Writes never
// touch the file-backed catalog.
func (s Service) UpdateByName(ctx context.Context, userID uuid.UUID, name, description, body string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, nil
	}
	existing, ok, err := s.Repo.GetByName(ctx, userID, name)
	if err != nil {
		return false, err
	}
	if ok {
		_, updated, err := s.Repo.Update(ctx, existing.ID, userID, &description, &body)
		return updated, err
	}
	_, err = s.Repo.Create(ctx, userID, name, description, body)
	return err == nil, err
}

// AvailableSkillsXML renders the file-backed catalog's metadata as the
// <available_skills> block the system prompt embeds, escaping name and
// description for inclusion as XML text.
func (s Service) AvailableSkillsXML() string {
	if s.Catalog == nil {
		return "<available_skills>\n</available_skills>"
	}
	var sb strings.Builder
	sb.WriteString("<available_skills>\n")
	for _, m := range s.Catalog.Metadata() {
		sb.WriteString("\t<skill>\n")
		sb.WriteString("\t\t<name>" + escapeXML(m.Name) + "</name>\n")
		sb.WriteString("\t\t<description>" + escapeXML(m.Description) + "</description>\n")
		sb.WriteString("\t</skill>\n")
	}
	sb.WriteString("</available_skills>")
	return sb.String()
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
