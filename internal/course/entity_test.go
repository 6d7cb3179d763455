package course

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukane-philemon/educonnect/internal/db"
	"github.com/ukane-philemon/educonnect/internal/trainer"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

type stubTrainers struct {
	trainer.Repository
	known map[string]*trainer.Trainer
	err   error
}

func (s *stubTrainers) Trainer(_ context.Context, trainerID string) (*trainer.Trainer, error) {
	if _, err := db.ObjectID("trainer", trainerID); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	if t, ok := s.known[trainerID]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: no trainer with ID %s", db.ErrorNotFound, trainerID)
}

func newTestRepository(mt *mtest.T, trainers ...*trainer.Trainer) *CourseRepository {
	stub := &stubTrainers{known: make(map[string]*trainer.Trainer)}
	for _, t := range trainers {
		stub.known[t.ID.Hex()] = t
	}

	return &CourseRepository{
		courseCollection: mt.Coll,
		trainers:         stub,
	}
}

func duration(d float64) *float64 {
	return &d
}

func TestCourseRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create expands trainer", func(mt *mtest.T) {
		trainerID := primitive.NewObjectID()
		repo := newTestRepository(mt, &trainer.Trainer{ID: trainerID, Nom: "Ada Lovelace", Specialite: "Informatique"})
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.Create(ctx, &NewCourse{Titre: "Algorithms", Duree: duration(40), Formateur: trainerID.Hex()})
		require.NoError(mt, err)
		assert.False(mt, created.ID.IsZero())
		assert.Equal(mt, "Algorithms", created.Titre)
		assert.Equal(mt, 40.0, created.Duree)
		require.NotNil(mt, created.Formateur)
		assert.Equal(mt, trainerID, created.Formateur.ID)
		assert.Equal(mt, "Ada Lovelace", created.Formateur.Nom)

		insert := mt.GetStartedEvent()
		require.NotNil(mt, insert)
		assert.Equal(mt, "insert", insert.CommandName)
		stored := insert.Command.Lookup("documents").Array().Index(0).Value().Document()
		assert.Equal(mt, trainerID, stored.Lookup("formateur").ObjectID())
	})

	mt.Run("create unknown trainer", func(mt *mtest.T) {
		repo := newTestRepository(mt)

		_, err := repo.Create(ctx, &NewCourse{Titre: "Algorithms", Duree: duration(40), Formateur: primitive.NewObjectID().Hex()})
		require.Error(mt, err)
		assert.True(mt, errors.Is(err, db.ErrorInvalidRequest))
		assert.False(mt, errors.Is(err, db.ErrorNotFound))
		assert.Contains(mt, err.Error(), "does not exist")
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("create trainer lookup failure", func(mt *mtest.T) {
		lookupErr := errors.New("trainerCollection.FindOne error: connection reset")
		repo := &CourseRepository{courseCollection: mt.Coll, trainers: &stubTrainers{err: lookupErr}}

		_, err := repo.Create(ctx, &NewCourse{Titre: "Algorithms", Duree: duration(40), Formateur: primitive.NewObjectID().Hex()})
		assert.ErrorIs(mt, err, lookupErr)
		assert.False(mt, errors.Is(err, db.ErrorInvalidRequest))
	})

	mt.Run("create invalid input", func(mt *mtest.T) {
		repo := newTestRepository(mt)

		for _, nc := range []*NewCourse{
			{Duree: duration(40), Formateur: primitive.NewObjectID().Hex()},
			{Titre: "Algorithms", Formateur: primitive.NewObjectID().Hex()},
			{Titre: "Algorithms", Duree: duration(0), Formateur: primitive.NewObjectID().Hex()},
			{Titre: "Algorithms", Duree: duration(40)},
			{Titre: "Algorithms", Duree: duration(40), Formateur: "abc"},
		} {
			_, err := repo.Create(ctx, nc)
			assert.True(mt, errors.Is(err, db.ErrorInvalidRequest), "%+v", nc)
		}
	})

	mt.Run("courses", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		trainerID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "educonnect.courses", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "titre", Value: "Algorithms"},
				{Key: "duree", Value: int32(40)},
				{Key: "formateur", Value: bson.D{
					{Key: "_id", Value: trainerID},
					{Key: "nom", Value: "Ada Lovelace"},
					{Key: "specialite", Value: "Informatique"},
				}},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "titre", Value: "Orphan"},
				{Key: "duree", Value: 12.5},
			},
		))

		courses, err := repo.Courses(ctx)
		require.NoError(mt, err)
		require.Len(mt, courses, 2)

		assert.Equal(mt, 40.0, courses[0].Duree)
		require.NotNil(mt, courses[0].Formateur)
		assert.Equal(mt, trainerID, courses[0].Formateur.ID)
		assert.Equal(mt, "Ada Lovelace", courses[0].Formateur.Nom)

		assert.Equal(mt, "Orphan", courses[1].Titre)
		assert.Nil(mt, courses[1].Formateur)
	})

	mt.Run("course not found", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "educonnect.courses", mtest.FirstBatch))

		_, err := repo.Course(ctx, primitive.NewObjectID().Hex())
		assert.True(mt, errors.Is(err, db.ErrorNotFound))
	})

	mt.Run("course malformed id", func(mt *mtest.T) {
		repo := newTestRepository(mt)

		_, err := repo.Course(ctx, "42")
		assert.True(mt, errors.Is(err, db.ErrorInvalidRequest))
	})
}
