package trainer

import "context"

type Repository interface {
	// Create saves a new trainer. Returns db.ErrorInvalidRequest if a required
	// field is missing or the email is already used by another trainer.
	Create(ctx context.Context, trainer *NewTrainer) (*Trainer, error)
	// Trainer returns the trainer that match the provided trainerID. Returns
	// db.ErrorNotFound if no trainer exists.
	Trainer(ctx context.Context, trainerID string) (*Trainer, error)
	// Trainers returns all the trainers in the database.
	Trainers(ctx context.Context) ([]*Trainer, error)
}
