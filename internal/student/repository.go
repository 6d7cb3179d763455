package student

import "context"

type Repository interface {
	// Create saves a new student. Returns db.ErrorInvalidRequest if a required
	// field is missing or the email is already used by another student.
	Create(ctx context.Context, student *NewStudent) (*Student, error)
	// Student returns the student that match the provided studentID. Returns
	// db.ErrorNotFound if no student exists.
	Student(ctx context.Context, studentID string) (*Student, error)
	// Students returns all the students in the database.
	Students(ctx context.Context) ([]*Student, error)
	// Delete removes the student that match studentID together with all of
	// their grades in a single transaction and returns the number of grades
	// removed. Returns db.ErrorNotFound if no student exists, in which case
	// nothing is deleted.
	Delete(ctx context.Context, studentID string) (int64, error)
}
