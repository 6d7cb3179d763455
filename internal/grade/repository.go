package grade

import "context"

type Repository interface {
	// Create saves a new grade and returns it with its student and course
	// expanded. Returns db.ErrorInvalidRequest if the value is missing or out
	// of range, or if a referenced student or course does not exist.
	Create(ctx context.Context, grade *NewGrade) (*Grade, error)
	// StudentGrades returns the grades of the student that match studentID,
	// with the student expanded to its name and the course expanded with its
	// trainer. A student without grades yields an empty slice.
	StudentGrades(ctx context.Context, studentID string) ([]*Grade, error)
	// CourseGradeValues returns the value of every grade given for the course
	// that match courseID.
	CourseGradeValues(ctx context.Context, courseID string) ([]float64, error)
}
