package grade

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukane-philemon/educonnect/internal/course"
	"github.com/ukane-philemon/educonnect/internal/db"
	"github.com/ukane-philemon/educonnect/internal/student"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	valeurKey    = "valeur"
	etudiantKey  = "etudiant"
	coursKey     = "cours"
	formateurKey = "formateur"
	nomKey       = "nom"

	// MinValue and MaxValue bound a grade value, inclusive.
	MinValue = 0
	MaxValue = 20
)

type Grade struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Valeur   float64            `json:"valeur" bson:"valeur"`
	Etudiant *student.Student   `json:"etudiant" bson:"etudiant,omitempty"`
	Cours    *course.Course     `json:"cours" bson:"cours,omitempty"`
}

type NewGrade struct {
	Valeur   *float64 `json:"valeur" validate:"required,gte=0,lte=20"`
	Etudiant string   `json:"etudiant" validate:"omitempty,mongodb"`
	Cours    string   `json:"cours" validate:"omitempty,mongodb"`
}

// ValidValue reports whether v is an acceptable grade value.
func ValidValue(v float64) bool {
	return v >= MinValue && v <= MaxValue
}

type dbGrade struct {
	ID       primitive.ObjectID  `bson:"_id"`
	Valeur   float64             `bson:"valeur"`
	Etudiant *primitive.ObjectID `bson:"etudiant,omitempty"`
	Cours    *primitive.ObjectID `bson:"cours,omitempty"`
}

// GradeRepository implements Repository.
type GradeRepository struct {
	gradeCollection *mongo.Collection
	students        student.Repository
	courses         course.Repository
}

// NewRepository creates a new instance of *GradeRepository. students and
// courses resolve the records a new grade references.
func NewRepository(database *mongo.Database, students student.Repository, courses course.Repository) Repository {
	return &GradeRepository{
		gradeCollection: database.Collection(db.GradeCollection),
		students:        students,
		courses:         courses,
	}
}

// Create saves a new grade and returns it with its student and course
// expanded.
// Implements Repository.
func (gr *GradeRepository) Create(ctx context.Context, newGrade *NewGrade) (*Grade, error) {
	if newGrade == nil || newGrade.Valeur == nil {
		return nil, fmt.Errorf("%w: grade value is required", db.ErrorInvalidRequest)
	}

	if !ValidValue(*newGrade.Valeur) {
		return nil, fmt.Errorf("%w: grade value %v must be between %d and %d", db.ErrorInvalidRequest, *newGrade.Valeur, MinValue, MaxValue)
	}

	studentID, err := db.OptionalObjectID("student", newGrade.Etudiant)
	if err != nil {
		return nil, err
	}

	courseID, err := db.OptionalObjectID("course", newGrade.Cours)
	if err != nil {
		return nil, err
	}

	g := &Grade{
		ID:     primitive.NewObjectID(),
		Valeur: *newGrade.Valeur,
	}

	if studentID != nil {
		g.Etudiant, err = gr.students.Student(ctx, newGrade.Etudiant)
		if err != nil {
			return nil, referenceError(err)
		}
	}

	if courseID != nil {
		g.Cours, err = gr.courses.Course(ctx, newGrade.Cours)
		if err != nil {
			return nil, referenceError(err)
		}
	}

	_, err = gr.gradeCollection.InsertOne(ctx, &dbGrade{
		ID:       g.ID,
		Valeur:   g.Valeur,
		Etudiant: studentID,
		Cours:    courseID,
	})
	if err != nil {
		return nil, fmt.Errorf("gradeCollection.InsertOne error: %w", err)
	}

	return g, nil
}

// StudentGrades returns the grades of the student that match studentID.
// Implements Repository.
func (gr *GradeRepository) StudentGrades(ctx context.Context, studentID string) ([]*Grade, error) {
	oid, err := db.ObjectID("student", studentID)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.M{etudiantKey: oid}}}}
	pipeline = append(pipeline, db.LookupOne(db.StudentCollection, etudiantKey,
		bson.D{{Key: "$project", Value: bson.M{nomKey: 1}}})...)
	pipeline = append(pipeline, db.LookupOne(db.CourseCollection, coursKey,
		db.LookupOne(db.TrainerCollection, formateurKey)...)...)

	cur, err := gr.gradeCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("gradeCollection.Aggregate error: %w", err)
	}

	grades := make([]*Grade, 0)
	if err = cur.All(ctx, &grades); err != nil {
		return nil, fmt.Errorf("cur.All error: %w", err)
	}

	return grades, nil
}

// CourseGradeValues returns the value of every grade given for the course that
// match courseID.
// Implements Repository.
func (gr *GradeRepository) CourseGradeValues(ctx context.Context, courseID string) ([]float64, error) {
	oid, err := db.ObjectID("course", courseID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetProjection(bson.M{valeurKey: 1})
	cur, err := gr.gradeCollection.Find(ctx, bson.M{coursKey: oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("gradeCollection.Find error: %w", err)
	}
	defer cur.Close(ctx)

	values := make([]float64, 0)
	for cur.Next(ctx) {
		var g dbGrade
		if err = cur.Decode(&g); err != nil {
			return nil, fmt.Errorf("failed to decode grade: %w", err)
		}
		values = append(values, g.Valeur)
	}

	if err = cur.Err(); err != nil {
		return nil, fmt.Errorf("cur.Err error: %w", err)
	}

	return values, nil
}

// referenceError turns a missing referenced record into an invalid request.
func referenceError(err error) error {
	if errors.Is(err, db.ErrorNotFound) {
		return fmt.Errorf("%w: %v", db.ErrorInvalidRequest, err)
	}
	return err
}
