package course

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ukane-philemon/educonnect/internal/db"
	"github.com/ukane-philemon/educonnect/internal/trainer"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const formateurKey = "formateur"

type Course struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Titre     string             `json:"titre" bson:"titre"`
	Duree     float64            `json:"duree" bson:"duree"`
	Formateur *trainer.Trainer   `json:"formateur" bson:"formateur,omitempty"` // nil when unset or dangling
}

type NewCourse struct {
	Titre     string   `json:"titre" validate:"required,notblank"`
	Duree     *float64 `json:"duree" validate:"required,gt=0"`
	Formateur string   `json:"formateur" validate:"required"`
}

// dbCourse is a course as stored, with the trainer kept as a reference.
type dbCourse struct {
	ID        primitive.ObjectID  `bson:"_id"`
	Titre     string              `bson:"titre"`
	Duree     float64             `bson:"duree"`
	Formateur *primitive.ObjectID `bson:"formateur,omitempty"`
}

// CourseRepository implements Repository.
type CourseRepository struct {
	courseCollection *mongo.Collection
	trainers         trainer.Repository
}

// NewRepository creates a new instance of *CourseRepository. trainers resolves
// the trainer referenced by new courses.
func NewRepository(database *mongo.Database, trainers trainer.Repository) Repository {
	return &CourseRepository{
		courseCollection: database.Collection(db.CourseCollection),
		trainers:         trainers,
	}
}

// Create saves a new course and returns it with its trainer expanded.
// Implements Repository.
func (cr *CourseRepository) Create(ctx context.Context, newCourse *NewCourse) (*Course, error) {
	if newCourse == nil || strings.TrimSpace(newCourse.Titre) == "" || newCourse.Duree == nil || newCourse.Formateur == "" {
		return nil, fmt.Errorf("%w: course title, duration and trainer are required", db.ErrorInvalidRequest)
	}

	if *newCourse.Duree <= 0 {
		return nil, fmt.Errorf("%w: invalid course duration %v", db.ErrorInvalidRequest, *newCourse.Duree)
	}

	t, err := cr.trainers.Trainer(ctx, newCourse.Formateur)
	if err != nil {
		if errors.Is(err, db.ErrorNotFound) {
			return nil, fmt.Errorf("%w: trainer with ID %s does not exist", db.ErrorInvalidRequest, newCourse.Formateur)
		}
		return nil, err
	}

	c := &dbCourse{
		ID:        primitive.NewObjectID(),
		Titre:     newCourse.Titre,
		Duree:     *newCourse.Duree,
		Formateur: &t.ID,
	}

	_, err = cr.courseCollection.InsertOne(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("courseCollection.InsertOne error: %w", err)
	}

	return &Course{
		ID:        c.ID,
		Titre:     c.Titre,
		Duree:     c.Duree,
		Formateur: t,
	}, nil
}

// Course returns the course that match the provided courseID with its trainer
// expanded.
// Implements Repository.
func (cr *CourseRepository) Course(ctx context.Context, courseID string) (*Course, error) {
	oid, err := db.ObjectID("course", courseID)
	if err != nil {
		return nil, err
	}

	courses, err := cr.courses(ctx, bson.M{db.IDKey: oid})
	if err != nil {
		return nil, err
	}

	if len(courses) == 0 {
		return nil, fmt.Errorf("%w: no course with ID %s", db.ErrorNotFound, courseID)
	}

	return courses[0], nil
}

// Courses returns all the courses in the database with their trainers
// expanded.
// Implements Repository.
func (cr *CourseRepository) Courses(ctx context.Context) ([]*Course, error) {
	return cr.courses(ctx, nil)
}

func (cr *CourseRepository) courses(ctx context.Context, filter bson.M) ([]*Course, error) {
	var pipeline mongo.Pipeline
	if filter != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: filter}})
	}
	pipeline = append(pipeline, db.LookupOne(db.TrainerCollection, formateurKey)...)

	cur, err := cr.courseCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("courseCollection.Aggregate error: %w", err)
	}

	courses := make([]*Course, 0)
	if err = cur.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("cur.All error: %w", err)
	}

	return courses, nil
}
