package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/edulaunch/edumarket/internal/models"
)

type MockCourseStore struct {
	mock.Mock
}

func (m *MockCourseStore) Insert(ctx context.Context, course *models.Course) (string, error) {
	args := m.Called(ctx, course)
	return args.String(0), args.Error(1)
}

func (m *MockCourseStore) FindPublished(ctx context.Context) ([]models.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockCourseStore) FindByID(ctx context.Context, id string) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseStore) FindByStudent(ctx context.Context, userID string) ([]models.Course, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockCourseStore) Update(ctx context.Context, id string, upd *models.CourseUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockCourseStore) AddStudent(ctx context.Context, courseID, userID string) error {
	args := m.Called(ctx, courseID, userID)
	return args.Error(0)
}

func TestCreateCourse_AppliesDefaults(t *testing.T) {
	store := new(MockCourseStore)
	svc := NewCourseService(store)

	store.On("Insert", mock.Anything, mock.AnythingOfType("*models.Course")).
		Return("course1", nil).
		Run(func(args mock.Arguments) {
			course := args.Get(1).(*models.Course)
			assert.NotNil(t, course.EnrolledStudents)
			assert.Empty(t, course.EnrolledStudents)
			assert.NotNil(t, course.CourseRatings)
			assert.WithinDuration(t, time.Now(), course.CreatedAt, time.Second)
			assert.Equal(t, course.CreatedAt, course.UpdatedAt)
		})

	id, err := svc.CreateCourse(context.Background(), &models.Course{
		CourseTitle: "Go from Scratch",
		CoursePrice: 25,
	})

	assert.NoError(t, err)
	assert.Equal(t, "course1", id)
	store.AssertExpectations(t)
}

func TestCreateCourse_RejectsInvalid(t *testing.T) {
	store := new(MockCourseStore)
	svc := NewCourseService(store)

	_, err := svc.CreateCourse(context.Background(), &models.Course{CoursePrice: -1})

	assert.Error(t, err)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

// Orders are recomputed 1..N on every save; gaps left by deleted chapters or
// lectures disappear.
func TestCreateCourse_RenumbersContent(t *testing.T) {
	store := new(MockCourseStore)
	svc := NewCourseService(store)

	store.On("Insert", mock.Anything, mock.Anything).Return("course1", nil)

	course := &models.Course{
		CourseTitle: "Go from Scratch",
		CourseContent: []models.Chapter{
			{ChapterTitle: "Basics", ChapterOrder: 3, ChapterContent: []models.Lecture{
				{LectureTitle: "Hello", LectureOrder: 7},
				{LectureTitle: "Types", LectureOrder: 2},
			}},
			{ChapterTitle: "Concurrency", ChapterOrder: 9},
		},
	}

	_, err := svc.CreateCourse(context.Background(), course)

	assert.NoError(t, err)
	assert.Equal(t, 1, course.CourseContent[0].ChapterOrder)
	assert.Equal(t, 2, course.CourseContent[1].ChapterOrder)
	assert.Equal(t, 1, course.CourseContent[0].ChapterContent[0].LectureOrder)
	assert.Equal(t, 2, course.CourseContent[0].ChapterContent[1].LectureOrder)
	assert.NotEmpty(t, course.CourseContent[0].ChapterID)
	assert.NotEmpty(t, course.CourseContent[0].ChapterContent[0].LectureID)
}

func TestGetPublishedCourses_FailsOpen(t *testing.T) {
	store := new(MockCourseStore)
	svc := NewCourseService(store)

	store.On("FindPublished", mock.Anything).Return(nil, errors.New("unavailable"))

	courses := svc.GetPublishedCourses(context.Background())

	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

// The single-course lookup feeds the editor, which must block on failure
// rather than open an empty form.
func TestGetCourseByID_PropagatesTransportFailure(t *testing.T) {
	store := new(MockCourseStore)
	svc := NewCourseService(store)

	store.On("FindByID", mock.Anything, "course1").Return(nil, errors.New("unavailable"))

	_, err := svc.GetCourseByID(context.Background(), "course1")

	assert.Error(t, err)
}

func TestGetCourseByID_AbsentIsNotAnError(t *testing.T) {
	store := new(MockCourseStore)
	svc := NewCourseService(store)

	store.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	course, err := svc.GetCourseByID(context.Background(), "ghost")

	assert.NoError(t, err)
	assert.Nil(t, course)
}

func TestGetEnrolledCourses_FailsOpen(t *testing.T) {
	store := new(MockCourseStore)
	svc := NewCourseService(store)

	store.On("FindByStudent", mock.Anything, "user1").Return(nil, errors.New("unavailable"))

	courses := svc.GetEnrolledCourses(context.Background(), "user1")

	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestUpdateCourse_RenumbersContent(t *testing.T) {
	store := new(MockCourseStore)
	svc := NewCourseService(store)

	store.On("Update", mock.Anything, "course1", mock.Anything).Return(nil)

	content := []models.Chapter{
		{ChapterTitle: "Basics", ChapterOrder: 5},
		{ChapterTitle: "Testing", ChapterOrder: 11},
	}
	err := svc.UpdateCourse(context.Background(), "course1", &models.CourseUpdate{
		CourseContent: &content,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, content[0].ChapterOrder)
	assert.Equal(t, 2, content[1].ChapterOrder)
}

func TestEnrollStudent_Delegates(t *testing.T) {
	store := new(MockCourseStore)
	svc := NewCourseService(store)

	store.On("AddStudent", mock.Anything, "course1", "user1").Return(nil)

	assert.NoError(t, svc.EnrollStudent(context.Background(), "course1", "user1"))
	store.AssertExpectations(t)
}
