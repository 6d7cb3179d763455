package trainer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ukane-philemon/educonnect/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const emailKey = "email"

type Trainer struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Nom        string             `json:"nom" bson:"nom"`
	Specialite string             `json:"specialite" bson:"specialite"`
	Email      string             `json:"email,omitempty" bson:"email,omitempty"`
}

type NewTrainer struct {
	Nom        string `json:"nom" validate:"required,notblank"`
	Specialite string `json:"specialite" validate:"required,notblank"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// TrainerRepository implements Repository.
type TrainerRepository struct {
	trainerCollection *mongo.Collection
}

// NewRepository creates a new instance of *TrainerRepository.
func NewRepository(ctx context.Context, database *mongo.Database) (Repository, error) {
	// Create a unique index on the trainer emails.
	trainerCollection := database.Collection(db.TrainerCollection)
	_, err := trainerCollection.Indexes().CreateOne(ctx, db.UniqueIndex(emailKey))
	if err != nil {
		return nil, fmt.Errorf("trainerCollection.Indexes().CreateOne error: %w", err)
	}

	return &TrainerRepository{
		trainerCollection: trainerCollection,
	}, nil
}

// Create saves a new trainer. Returns db.ErrorInvalidRequest if a required
// field is missing or the email is already used by another trainer.
// Implements Repository.
func (tr *TrainerRepository) Create(ctx context.Context, newTrainer *NewTrainer) (*Trainer, error) {
	if newTrainer == nil || strings.TrimSpace(newTrainer.Nom) == "" || strings.TrimSpace(newTrainer.Specialite) == "" {
		return nil, fmt.Errorf("%w: trainer name and specialty are required", db.ErrorInvalidRequest)
	}

	t := &Trainer{
		ID:         primitive.NewObjectID(),
		Nom:        newTrainer.Nom,
		Specialite: newTrainer.Specialite,
		Email:      newTrainer.Email,
	}

	_, err := tr.trainerCollection.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: trainer email %s already exists", db.ErrorInvalidRequest, t.Email)
		}
		return nil, fmt.Errorf("trainerCollection.InsertOne error: %w", err)
	}

	return t, nil
}

// Trainer returns the trainer that match the provided trainerID.
// Implements Repository.
func (tr *TrainerRepository) Trainer(ctx context.Context, trainerID string) (*Trainer, error) {
	oid, err := db.ObjectID("trainer", trainerID)
	if err != nil {
		return nil, err
	}

	var t *Trainer
	err = tr.trainerCollection.FindOne(ctx, bson.M{db.IDKey: oid}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no trainer with ID %s", db.ErrorNotFound, trainerID)
		}
		return nil, fmt.Errorf("trainerCollection.FindOne error: %w", err)
	}

	return t, nil
}

// Trainers returns all the trainers in the database.
// Implements Repository.
func (tr *TrainerRepository) Trainers(ctx context.Context) ([]*Trainer, error) {
	cur, err := tr.trainerCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("trainerCollection.Find error: %w", err)
	}

	trainers := make([]*Trainer, 0)
	if err = cur.All(ctx, &trainers); err != nil {
		return nil, fmt.Errorf("cur.All error: %w", err)
	}

	return trainers, nil
}
