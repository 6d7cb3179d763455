package db

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// Collections
	TrainerCollection = "trainers"
	CourseCollection  = "courses"
	StudentCollection = "students"
	GradeCollection   = "grades"

	IDKey = "_id"
)

var (
	// ErrorInvalidRequest is a user facing error returned by repositories.
	ErrorInvalidRequest = errors.New("invalid request")
	// ErrorNotFound is returned when the record a request targets does not
	// exist.
	ErrorNotFound = errors.New("not found")
)

// ObjectID parses a hex record ID. kind names the record in the error.
func ObjectID(kind, id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: missing %s ID", ErrorInvalidRequest, kind)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid %s ID %s", ErrorInvalidRequest, kind, id)
	}

	return oid, nil
}

// OptionalObjectID is like ObjectID but returns nil for an empty id.
func OptionalObjectID(kind, id string) (*primitive.ObjectID, error) {
	if id == "" {
		return nil, nil
	}

	oid, err := ObjectID(kind, id)
	if err != nil {
		return nil, err
	}
	return &oid, nil
}
