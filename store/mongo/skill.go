package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"

	"chatcore.dev/chatstream/skill"
)

// SkillStore implements skill.Repository over a user_skills collection.
type SkillStore struct {
	coll    *mongodriver.Collection
	timeout time.Duration
}

type skillDocument struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Content     string    `bson:"content"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d skillDocument) toDomain() skill.Skill {
	id, _ := uuid.Parse(d.ID)
	userID, _ := uuid.Parse(d.UserID)
	return skill.Skill{
		ID:          id,
		UserID:      userID,
		Name:        d.Name,
		Description: d.Description,
		Content:     d.Content,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (s *SkillStore) List(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	cur, err := s.coll.Find(ctx, bson.M{"user_id": userID.String()})
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []skill.Skill
	for cur.Next(ctx) {
		var doc skillDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (s *SkillStore) Get(ctx context.Context, id, userID uuid.UUID) (skill.Skill, bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var doc skillDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id.String(), "user_id": userID.String()}).Decode(&doc)
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return skill.Skill{}, false, nil
	}
	if err != nil {
		return skill.Skill{}, false, err
	}
	return doc.toDomain(), true, nil
}

func (s *SkillStore) GetByName(ctx context.Context, userID uuid.UUID, name string) (skill.Skill, bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var doc skillDocument
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID.String(), "name": name}).Decode(&doc)
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return skill.Skill{}, false, nil
	}
	if err != nil {
		return skill.Skill{}, false, err
	}
	return doc.toDomain(), true, nil
}

func (s *SkillStore) Create(ctx context.Context, userID uuid.UUID, name, description, content string) (skill.Skill, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	now := time.Now().UTC()
	doc := skillDocument{
		ID:          uuid.NewString(),
		UserID:      userID.String(),
		Name:        name,
		Description: description,
		Content:     content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return skill.Skill{}, err
	}
	return doc.toDomain(), nil
}

func (s *SkillStore) Update(ctx context.Context, id, userID uuid.UUID, description, content *string) (skill.Skill, bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if description != nil {
		set["description"] = *description
	}
	if content != nil {
		set["content"] = *content
	}

	filter := bson.M{"_id": id.String(), "user_id": userID.String()}
	res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return skill.Skill{}, false, err
	}
	if res.MatchedCount == 0 {
		return skill.Skill{}, false, nil
	}
	return s.Get(ctx, id, userID)
}

func (s *SkillStore) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String(), "user_id": userID.String()})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
