package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mehul/notes-app/backend/internal/models"
)

// NoteStore handles note CRUD in MongoDB. Every lookup that targets a
// single note filters by both _id and user_id, so a note is invisible to
// anyone but its owner even with a correctly guessed id.
type NoteStore struct {
	col *mongo.Collection
}

func NewNoteStore(db *mongo.Database) *NoteStore {
	return &NoteStore{col: db.Collection("notes")}
}

func (s *NoteStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}

// NotePatch is a partial edit. Empty Title/Content and nil Tags mean
// "leave unchanged". IsPinned keeps an explicit false distinct from an
// absent field.
type NotePatch struct {
	Title    string
	Content  string
	Tags     []string
	IsPinned *bool
}

// buildPatch translates a partial edit into a $set document, or
// ErrEmptyPatch when nothing recognizable was provided.
func buildPatch(p NotePatch) (bson.M, error) {
	set := bson.M{}
	if p.Title != "" {
		set["title"] = p.Title
	}
	if p.Content != "" {
		set["content"] = p.Content
	}
	if p.Tags != nil {
		set["tags"] = p.Tags
	}
	if p.IsPinned != nil {
		set["is_pinned"] = *p.IsPinned
	}
	if len(set) == 0 {
		return nil, ErrEmptyPatch
	}
	return bson.M{"$set": set}, nil
}

// ownerFilter scopes a single-note query to its owner.
func ownerFilter(ownerID string, noteID primitive.ObjectID) bson.M {
	return bson.M{"_id": noteID, "user_id": ownerID}
}

// searchFilter matches title or content against the query as a literal,
// case-insensitive substring. QuoteMeta keeps user input from being
// interpreted as a pattern.
func searchFilter(ownerID, query string) bson.M {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{
		"user_id": ownerID,
		"$or":     []bson.M{{"title": re}, {"content": re}},
	}
}

// pinnedFirst sorts pinned notes before unpinned ones; order among equal
// pin status is store-default.
var pinnedFirst = bson.D{{Key: "is_pinned", Value: -1}}

func (s *NoteStore) Create(ctx context.Context, ownerID, title, content string, tags []string) (*models.Note, error) {
	if tags == nil {
		tags = []string{}
	}
	n := &models.Note{
		Title:     title,
		Content:   content,
		Tags:      tags,
		UserID:    ownerID,
		CreatedOn: time.Now(),
	}
	res, err := s.col.InsertOne(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("mongo insert note: %w", err)
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return n, nil
}

func (s *NoteStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Note, error) {
	opts := options.Find().SetSort(pinnedFirst)
	cur, err := s.col.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find notes: %w", err)
	}
	defer cur.Close(ctx)

	var notes []models.Note
	if err := cur.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("mongo decode notes: %w", err)
	}
	return notes, nil
}

// Update applies a patch as a single conditional write on {_id, user_id}
// and returns the post-image. A wrong-owner request and a nonexistent id
// both come back as ErrNotFound.
func (s *NoteStore) Update(ctx context.Context, ownerID, noteID string, patch NotePatch) (*models.Note, error) {
	update, err := buildPatch(patch)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.Note
	err = s.col.FindOneAndUpdate(ctx, ownerFilter(ownerID, oid), update, opts).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo update note: %w", err)
	}
	return &n, nil
}

func (s *NoteStore) SetPinned(ctx context.Context, ownerID, noteID string, pinned bool) (*models.Note, error) {
	return s.Update(ctx, ownerID, noteID, NotePatch{IsPinned: &pinned})
}

func (s *NoteStore) Delete(ctx context.Context, ownerID, noteID string) error {
	oid, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.DeleteOne(ctx, ownerFilter(ownerID, oid))
	if err != nil {
		return fmt.Errorf("mongo delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NoteStore) Search(ctx context.Context, ownerID, query string) ([]models.Note, error) {
	cur, err := s.col.Find(ctx, searchFilter(ownerID, query))
	if err != nil {
		return nil, fmt.Errorf("mongo search notes: %w", err)
	}
	defer cur.Close(ctx)

	var notes []models.Note
	if err := cur.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("mongo decode notes: %w", err)
	}
	return notes, nil
}
