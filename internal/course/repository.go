package course

import "context"

type Repository interface {
	// Create saves a new course and returns it with its trainer expanded.
	// Returns db.ErrorInvalidRequest if a required field is missing or the
	// trainer does not exist.
	Create(ctx context.Context, course *NewCourse) (*Course, error)
	// Course returns the course that match the provided courseID with its
	// trainer expanded. Returns db.ErrorNotFound if no course exists.
	Course(ctx context.Context, courseID string) (*Course, error)
	// Courses returns all the courses in the database with their trainers
	// expanded.
	Courses(ctx context.Context) ([]*Course, error)
}
