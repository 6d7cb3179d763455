package api_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ukane-philemon/educonnect/internal/course"
	"github.com/ukane-philemon/educonnect/internal/db"
	"github.com/ukane-philemon/educonnect/internal/grade"
	"github.com/ukane-philemon/educonnect/internal/student"
	"github.com/ukane-philemon/educonnect/internal/trainer"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore backs the in-memory repositories. Records are kept in insertion
// order.
type memStore struct {
	mtx      sync.Mutex
	trainers []*trainer.Trainer
	courses  []*storedCourse
	students []*student.Student
	grades   []*storedGrade
}

type storedCourse struct {
	id        primitive.ObjectID
	titre     string
	duree     float64
	formateur primitive.ObjectID
}

type storedGrade struct {
	id       primitive.ObjectID
	valeur   float64
	etudiant *primitive.ObjectID
	cours    *primitive.ObjectID
}

func (m *memStore) trainer(id primitive.ObjectID) *trainer.Trainer {
	for _, t := range m.trainers {
		if t.ID == id {
			cp := *t
			return &cp
		}
	}
	return nil
}

func (m *memStore) student(id primitive.ObjectID) *student.Student {
	for _, s := range m.students {
		if s.ID == id {
			cp := *s
			return &cp
		}
	}
	return nil
}

func (m *memStore) course(id primitive.ObjectID) *course.Course {
	for _, c := range m.courses {
		if c.id == id {
			return &course.Course{
				ID:        c.id,
				Titre:     c.titre,
				Duree:     c.duree,
				Formateur: m.trainer(c.formateur),
			}
		}
	}
	return nil
}

type fakeTrainers struct{ *memStore }

func (f fakeTrainers) Create(_ context.Context, nt *trainer.NewTrainer) (*trainer.Trainer, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	for _, t := range f.trainers {
		if nt.Email != "" && t.Email == nt.Email {
			return nil, fmt.Errorf("%w: trainer email %s already exists", db.ErrorInvalidRequest, nt.Email)
		}
	}

	t := &trainer.Trainer{ID: primitive.NewObjectID(), Nom: nt.Nom, Specialite: nt.Specialite, Email: nt.Email}
	f.trainers = append(f.trainers, t)
	return t, nil
}

func (f fakeTrainers) Trainer(_ context.Context, trainerID string) (*trainer.Trainer, error) {
	oid, err := db.ObjectID("trainer", trainerID)
	if err != nil {
		return nil, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()
	if t := f.trainer(oid); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("%w: no trainer with ID %s", db.ErrorNotFound, trainerID)
}

func (f fakeTrainers) Trainers(context.Context) ([]*trainer.Trainer, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return append([]*trainer.Trainer{}, f.trainers...), nil
}

type fakeCourses struct{ *memStore }

func (f fakeCourses) Create(_ context.Context, nc *course.NewCourse) (*course.Course, error) {
	if strings.TrimSpace(nc.Titre) == "" || nc.Duree == nil || nc.Formateur == "" {
		return nil, fmt.Errorf("%w: course title, duration and trainer are required", db.ErrorInvalidRequest)
	}

	trainerID, err := db.ObjectID("trainer", nc.Formateur)
	if err != nil {
		return nil, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.trainer(trainerID) == nil {
		return nil, fmt.Errorf("%w: trainer with ID %s does not exist", db.ErrorInvalidRequest, nc.Formateur)
	}

	c := &storedCourse{id: primitive.NewObjectID(), titre: nc.Titre, duree: *nc.Duree, formateur: trainerID}
	f.courses = append(f.courses, c)
	return f.course(c.id), nil
}

func (f fakeCourses) Course(_ context.Context, courseID string) (*course.Course, error) {
	oid, err := db.ObjectID("course", courseID)
	if err != nil {
		return nil, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()
	if c := f.course(oid); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: no course with ID %s", db.ErrorNotFound, courseID)
}

func (f fakeCourses) Courses(context.Context) ([]*course.Course, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	courses := make([]*course.Course, 0, len(f.courses))
	for _, c := range f.courses {
		courses = append(courses, f.course(c.id))
	}
	return courses, nil
}

type fakeStudents struct{ *memStore }

func (f fakeStudents) Create(_ context.Context, ns *student.NewStudent) (*student.Student, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	for _, s := range f.students {
		if ns.Email != "" && s.Email == ns.Email {
			return nil, fmt.Errorf("%w: student email %s already exists", db.ErrorInvalidRequest, ns.Email)
		}
	}

	s := &student.Student{ID: primitive.NewObjectID(), Nom: ns.Nom, Classe: ns.Classe, Email: ns.Email}
	f.students = append(f.students, s)
	return s, nil
}

func (f fakeStudents) Student(_ context.Context, studentID string) (*student.Student, error) {
	oid, err := db.ObjectID("student", studentID)
	if err != nil {
		return nil, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()
	if s := f.student(oid); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("%w: no student with ID %s", db.ErrorNotFound, studentID)
}

func (f fakeStudents) Students(context.Context) ([]*student.Student, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return append([]*student.Student{}, f.students...), nil
}

func (f fakeStudents) Delete(_ context.Context, studentID string) (int64, error) {
	oid, err := db.ObjectID("student", studentID)
	if err != nil {
		return 0, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()

	idx := -1
	for i, s := range f.students {
		if s.ID == oid {
			idx = i
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("%w: no student with ID %s", db.ErrorNotFound, studentID)
	}
	f.students = append(f.students[:idx], f.students[idx+1:]...)

	var deleted int64
	kept := f.grades[:0]
	for _, g := range f.grades {
		if g.etudiant != nil && *g.etudiant == oid {
			deleted++
			continue
		}
		kept = append(kept, g)
	}
	f.grades = kept

	return deleted, nil
}

type fakeGrades struct{ *memStore }

func (f fakeGrades) Create(_ context.Context, ng *grade.NewGrade) (*grade.Grade, error) {
	if ng.Valeur == nil || !grade.ValidValue(*ng.Valeur) {
		return nil, fmt.Errorf("%w: invalid grade value", db.ErrorInvalidRequest)
	}

	studentID, err := db.OptionalObjectID("student", ng.Etudiant)
	if err != nil {
		return nil, err
	}
	courseID, err := db.OptionalObjectID("course", ng.Cours)
	if err != nil {
		return nil, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()

	g := &grade.Grade{ID: primitive.NewObjectID(), Valeur: *ng.Valeur}
	if studentID != nil {
		if g.Etudiant = f.student(*studentID); g.Etudiant == nil {
			return nil, fmt.Errorf("%w: unknown student", db.ErrorInvalidRequest)
		}
	}
	if courseID != nil {
		if g.Cours = f.course(*courseID); g.Cours == nil {
			return nil, fmt.Errorf("%w: unknown course", db.ErrorInvalidRequest)
		}
	}

	f.grades = append(f.grades, &storedGrade{id: g.ID, valeur: g.Valeur, etudiant: studentID, cours: courseID})
	return g, nil
}

func (f fakeGrades) StudentGrades(_ context.Context, studentID string) ([]*grade.Grade, error) {
	oid, err := db.ObjectID("student", studentID)
	if err != nil {
		return nil, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()

	grades := make([]*grade.Grade, 0)
	for _, g := range f.grades {
		if g.etudiant == nil || *g.etudiant != oid {
			continue
		}

		out := &grade.Grade{ID: g.id, Valeur: g.valeur}
		if s := f.student(oid); s != nil {
			out.Etudiant = &student.Student{ID: s.ID, Nom: s.Nom}
		}
		if g.cours != nil {
			out.Cours = f.course(*g.cours)
		}
		grades = append(grades, out)
	}
	return grades, nil
}

func (f fakeGrades) CourseGradeValues(_ context.Context, courseID string) ([]float64, error) {
	oid, err := db.ObjectID("course", courseID)
	if err != nil {
		return nil, err
	}

	f.mtx.Lock()
	defer f.mtx.Unlock()

	values := make([]float64, 0)
	for _, g := range f.grades {
		if g.cours != nil && *g.cours == oid {
			values = append(values, g.valeur)
		}
	}
	return values, nil
}
