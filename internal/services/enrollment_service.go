package services

import (
	"context"
	"errors"
	"slices"

	"github.com/edulaunch/edumarket/internal/models"
)

var (
	ErrLoginRequired  = errors.New("login required to enroll")
	ErrCourseNotFound = errors.New("course not found")
)

// EnrollmentOutcome is what the viewer sees after asking to enroll.
type EnrollmentOutcome string

const (
	OutcomeEnrolled        EnrollmentOutcome = "enrolled"
	OutcomeAlreadyEnrolled EnrollmentOutcome = "already_enrolled"
	OutcomePaymentRequired EnrollmentOutcome = "payment_required"
	OutcomePaymentPending  EnrollmentOutcome = "payment_pending"
)

// Viewer identifies the authenticated user driving the workflow.
type Viewer struct {
	ID    string
	Name  string
	Email string
}

type courseCatalog interface {
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	EnrollStudent(ctx context.Context, courseID, userID string) error
}

type requestOpener interface {
	CreateRequest(ctx context.Context, request *models.PurchaseRequest) (string, error)
}

// EnrollmentService moves a prospective student from "wants course" to
// "enrolled": free courses enroll immediately, paid courses go through a
// manual payment attestation and admin approval. Both paths converge on the
// same membership mutation; the course's enrolledStudents set is the only
// enrollment record there is.
type EnrollmentService struct {
	courses   courseCatalog
	purchases requestOpener
}

func NewEnrollmentService(courses courseCatalog, purchases requestOpener) *EnrollmentService {
	return &EnrollmentService{courses: courses, purchases: purchases}
}

// RequestEnrollment handles the viewer clicking "enroll". Unauthenticated
// viewers are rejected with no side effect. Free courses enroll on the spot;
// paid courses produce OutcomePaymentRequired and nothing is written until
// the viewer attests payment.
func (s *EnrollmentService) RequestEnrollment(ctx context.Context, courseID string, viewer Viewer) (EnrollmentOutcome, error) {
	if viewer.ID == "" {
		return "", ErrLoginRequired
	}

	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return "", err
	}
	if course == nil {
		return "", ErrCourseNotFound
	}

	if slices.Contains(course.EnrolledStudents, viewer.ID) {
		return OutcomeAlreadyEnrolled, nil
	}

	if course.CoursePrice == 0 {
		if err := s.courses.EnrollStudent(ctx, courseID, viewer.ID); err != nil {
			return "", err
		}
		return OutcomeEnrolled, nil
	}

	return OutcomePaymentRequired, nil
}

// AttestPayment records "I have sent the money": it opens a pending purchase
// request for the course's current price. No payment verification happens
// here or anywhere else; confirmation is a human admin action.
func (s *EnrollmentService) AttestPayment(ctx context.Context, courseID string, viewer Viewer) (string, error) {
	if viewer.ID == "" {
		return "", ErrLoginRequired
	}

	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return "", err
	}
	if course == nil {
		return "", ErrCourseNotFound
	}

	return s.purchases.CreateRequest(ctx, &models.PurchaseRequest{
		UserID:      viewer.ID,
		UserName:    viewer.Name,
		Email:       viewer.Email,
		CourseID:    courseID,
		CourseTitle: course.CourseTitle,
		Amount:      course.CoursePrice,
	})
}

// IsEnrolled re-derives enrollment from the course document's membership
// set.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, courseID, userID string) (bool, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return false, err
	}
	if course == nil {
		return false, ErrCourseNotFound
	}
	return slices.Contains(course.EnrolledStudents, userID), nil
}
