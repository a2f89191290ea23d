package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/edulaunch/edumarket/internal/models"
)

// CourseStore is the persistence surface the course service needs. The Mongo
// implementation lives in internal/repository.
type CourseStore interface {
	Insert(ctx context.Context, course *models.Course) (string, error)
	FindPublished(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindByStudent(ctx context.Context, userID string) ([]models.Course, error)
	Update(ctx context.Context, id string, upd *models.CourseUpdate) error
	AddStudent(ctx context.Context, courseID, userID string) error
}

type CourseService struct {
	store    CourseStore
	validate *validator.Validate
}

func NewCourseService(store CourseStore) *CourseService {
	return &CourseService{
		store:    store,
		validate: validator.New(),
	}
}

// CreateCourse inserts a new course with the caller-supplied content tree.
// Membership and rating lists start empty, chapter/lecture orders are
// renumbered 1..N and missing ids are minted before the write.
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) (string, error) {
	if course.EnrolledStudents == nil {
		course.EnrolledStudents = []string{}
	}
	if course.CourseRatings == nil {
		course.CourseRatings = []models.Rating{}
	}
	normalizeContent(course.CourseContent)

	if err := s.validate.Struct(course); err != nil {
		return "", fmt.Errorf("invalid course: %w", err)
	}

	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	return s.store.Insert(ctx, course)
}

// GetPublishedCourses returns the catalog. Read failures are logged and
// swallowed so the catalog never hard-fails on a transient error.
func (s *CourseService) GetPublishedCourses(ctx context.Context) []models.Course {
	courses, err := s.store.FindPublished(ctx)
	if err != nil {
		log.Printf("Error fetching published courses: %v", err)
		return []models.Course{}
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses
}

// GetCourseByID returns (nil, nil) when the course doesn't exist. Transport
// failures propagate so the authoring form can block instead of opening
// empty.
func (s *CourseService) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	return s.store.FindByID(ctx, id)
}

// GetEnrolledCourses lists the courses whose membership set contains userID.
// Fail-open like the catalog.
func (s *CourseService) GetEnrolledCourses(ctx context.Context, userID string) []models.Course {
	courses, err := s.store.FindByStudent(ctx, userID)
	if err != nil {
		log.Printf("Error fetching enrolled courses for %s: %v", userID, err)
		return []models.Course{}
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses
}

// UpdateCourse merges the given fields into the stored document and stamps
// updatedAt. A courseContent save renumbers orders, discarding any gaps left
// by deletions.
func (s *CourseService) UpdateCourse(ctx context.Context, id string, upd *models.CourseUpdate) error {
	if upd.CourseContent != nil {
		normalizeContent(*upd.CourseContent)
	}
	if err := s.validate.Struct(upd); err != nil {
		return fmt.Errorf("invalid course update: %w", err)
	}
	return s.store.Update(ctx, id, upd)
}

// EnrollStudent adds userID to the course's membership set. Idempotent: the
// underlying set-union makes a repeat or concurrent call a no-op.
func (s *CourseService) EnrollStudent(ctx context.Context, courseID, userID string) error {
	return s.store.AddStudent(ctx, courseID, userID)
}

// normalizeContent renumbers chapter and lecture orders 1..N and mints ids
// for entries created client-side without one.
func normalizeContent(chapters []models.Chapter) {
	for i := range chapters {
		chapters[i].ChapterOrder = i + 1
		if chapters[i].ChapterID == "" {
			chapters[i].ChapterID = uuid.NewString()
		}
		for j := range chapters[i].ChapterContent {
			chapters[i].ChapterContent[j].LectureOrder = j + 1
			if chapters[i].ChapterContent[j].LectureID == "" {
				chapters[i].ChapterContent[j].LectureID = uuid.NewString()
			}
		}
	}
}
