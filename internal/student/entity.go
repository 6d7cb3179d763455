package student

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

const (
	emailKey = "email"
	// etudiantKey is the grade field referencing a student.
	etudiantKey = "etudiant"
)

// Student is a student record. Classe and Email are left out when a grade
// listing expands the student to its name only.
type Student struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	Nom    string             `json:"nom" bson:"nom"`
	Classe string             `json:"classe,omitempty" bson:"classe,omitempty"`
	Email  string             `json:"email,omitempty" bson:"email,omitempty"`
}

type NewStudent struct {
	Nom    string `json:"nom" validate:"required,notblank"`
	Classe string `json:"classe" validate:"required,notblank"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// StudentRepository implements Repository.
type StudentRepository struct {
	client            *mongo.Client
	studentCollection *mongo.Collection
	gradeCollection   *mongo.Collection
}

// NewRepository creates a new instance of *StudentRepository.
func NewRepository(ctx context.Context, database *mongo.Database) (Repository, error) {
	// Create a unique index on the student emails.
	studentCollection := database.Collection(db.StudentCollection)
	_, err := studentCollection.Indexes().CreateOne(ctx, db.UniqueIndex(emailKey))
	if err != nil {
		return nil, fmt.Errorf("studentCollection.Indexes().CreateOne error: %w", err)
	}

	return &StudentRepository{
		client:            database.Client(),
		studentCollection: studentCollection,
		gradeCollection:   database.Collection(db.GradeCollection),
	}, nil
}

// Create saves a new student. Returns db.ErrorInvalidRequest if a required
// field is missing or the email is already used by another student.
// Implements Repository.
func (sr *StudentRepository) Create(ctx context.Context, newStudent *NewStudent) (*Student, error) {
	if newStudent == nil || strings.TrimSpace(newStudent.Nom) == "" || strings.TrimSpace(newStudent.Classe) == "" {
		return nil, fmt.Errorf("%w: student name and class are required", db.ErrorInvalidRequest)
	}

	s := &Student{
		ID:     primitive.NewObjectID(),
		Nom:    newStudent.Nom,
		Classe: newStudent.Classe,
		Email:  newStudent.Email,
	}

	_, err := sr.studentCollection.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: student email %s already exists", db.ErrorInvalidRequest, s.Email)
		}
		return nil, fmt.Errorf("studentCollection.InsertOne error: %w", err)
	}

	return s, nil
}

// Student returns the student that match the provided studentID.
// Implements Repository.
func (sr *StudentRepository) Student(ctx context.Context, studentID string) (*Student, error) {
	oid, err := db.ObjectID("student", studentID)
	if err != nil {
		return nil, err
	}

	var s *Student
	err = sr.studentCollection.FindOne(ctx, bson.M{db.IDKey: oid}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: no student with ID %s", db.ErrorNotFound, studentID)
		}
		return nil, fmt.Errorf("studentCollection.FindOne error: %w", err)
	}

	return s, nil
}

// Students returns all the students in the database.
// Implements Repository.
func (sr *StudentRepository) Students(ctx context.Context) ([]*Student, error) {
	cur, err := sr.studentCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("studentCollection.Find error: %w", err)
	}

	students := make([]*Student, 0)
	if err = cur.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("cur.All error: %w", err)
	}

	return students, nil
}

// Delete removes the student that match studentID together with all of their
// grades in a single transaction.
// Implements Repository.
func (sr *StudentRepository) Delete(ctx context.Context, studentID string) (int64, error) {
	oid, err := db.ObjectID("student", studentID)
	if err != nil {
		return 0, err
	}

	deleteFn := func(ctx mongo.SessionContext) (any, error) {
		res, err := sr.studentCollection.DeleteOne(ctx, bson.M{db.IDKey: oid})
		if err != nil {
			return nil, fmt.Errorf("studentCollection.DeleteOne error: %w", err)
		}

		if res.DeletedCount == 0 {
			return nil, fmt.Errorf("%w: no student with ID %s", db.ErrorNotFound, studentID)
		}

		gradesRes, err := sr.gradeCollection.DeleteMany(ctx, bson.M{etudiantKey: oid})
		if err != nil {
			return nil, fmt.Errorf("gradeCollection.DeleteMany error: %w", err)
		}

		return gradesRes.DeletedCount, nil
	}

	nGrades, err := db.WithTransaction(ctx, sr.client, deleteFn)
	if err != nil {
		return 0, err
	}

	return nGrades.(int64), nil
}
