package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/edulaunch/edumarket/internal/models"
	"github.com/edulaunch/edumarket/internal/utils"
)

var (
	ErrRequestNotFound      = errors.New("purchase request not found")
	ErrTransitionNotAllowed = errors.New("status transition not permitted")
	ErrEnrollTargetMissing  = errors.New("courseId and userId are required to complete a request")
)

// PurchaseStore is the persistence surface of the request ledger.
type PurchaseStore interface {
	Insert(ctx context.Context, request *models.PurchaseRequest) (string, error)
	FindByID(ctx context.Context, id string) (*models.PurchaseRequest, error)
	FindByStatus(ctx context.Context, status string) ([]models.PurchaseRequest, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	SetStatus(ctx context.Context, id, newStatus string, allowedFrom []string) (bool, error)
}

// StudentEnroller is the one side effect a completed request triggers.
// Satisfied by CourseService.
type StudentEnroller interface {
	EnrollStudent(ctx context.Context, courseID, userID string) error
}

// PurchaseService owns the purchase request ledger and its state machine:
// pending → completed, pending → declined, declined → pending. Nothing ever
// leaves completed, and no request is ever deleted.
type PurchaseService struct {
	store    PurchaseStore
	enroller StudentEnroller
	validate *validator.Validate
}

func NewPurchaseService(store PurchaseStore, enroller StudentEnroller) *PurchaseService {
	return &PurchaseService{
		store:    store,
		enroller: enroller,
		validate: validator.New(),
	}
}

// CreateRequest opens a ledger entry for a student's payment attestation.
// Status is forced to pending and createdAt to now regardless of input.
// Duplicate pending requests for the same user/course are allowed; admins
// decline the extras.
func (s *PurchaseService) CreateRequest(ctx context.Context, request *models.PurchaseRequest) (string, error) {
	request.Status = models.StatusPending
	request.CreatedAt = time.Now()

	if err := s.validate.Struct(request); err != nil {
		return "", fmt.Errorf("invalid purchase request: %w", err)
	}
	return s.store.Insert(ctx, request)
}

// GetRequestsByStatus lists the ledger slice for one status, most recent
// first. Fail-open: an unavailable store yields an empty list, logged.
func (s *PurchaseService) GetRequestsByStatus(ctx context.Context, status string) []models.PurchaseRequest {
	if !models.ValidStatus(status) {
		return []models.PurchaseRequest{}
	}
	requests, err := s.store.FindByStatus(ctx, status)
	if err != nil {
		log.Printf("Error fetching %s purchase requests: %v", status, err)
		return []models.PurchaseRequest{}
	}
	if requests == nil {
		requests = []models.PurchaseRequest{}
	}
	return requests
}

// CountsByStatus fetches the three status counts in parallel for the admin
// badge. Read-only and non-authoritative; failures count as zero.
func (s *PurchaseService) CountsByStatus(ctx context.Context) map[string]int64 {
	statuses := []string{models.StatusPending, models.StatusCompleted, models.StatusDeclined}

	tasks := make([]utils.ParallelTask, len(statuses))
	for i, status := range statuses {
		st := status
		tasks[i] = func() (interface{}, error) {
			return s.store.CountByStatus(ctx, st)
		}
	}
	results, errs := utils.RunParallelTasks(tasks)

	counts := make(map[string]int64, len(statuses))
	for i, status := range statuses {
		if errs[i] != nil {
			log.Printf("Error counting %s purchase requests: %v", status, errs[i])
			counts[status] = 0
			continue
		}
		counts[status] = results[i].(int64)
	}
	return counts
}

// UpdateRequestStatus is the admin state-transition entry point.
//
// Completing a request enrolls the student BEFORE flipping the ledger
// status. A crash between the two writes leaves the request pending with the
// student already enrolled, so a retry of the same call is safe: the
// set-union enroll is idempotent and the flip still lands on completed. Two
// admins approving the same request concurrently converge to the same end
// state for the same reason.
func (s *PurchaseService) UpdateRequestStatus(ctx context.Context, id, newStatus, courseID, userID string) error {
	if !models.ValidStatus(newStatus) {
		return fmt.Errorf("unknown status %q", newStatus)
	}

	var allowedFrom []string
	switch newStatus {
	case models.StatusCompleted:
		if courseID == "" || userID == "" {
			return ErrEnrollTargetMissing
		}
		// A repeat approval must still match, hence completed itself.
		allowedFrom = []string{models.StatusPending, models.StatusCompleted}
	case models.StatusDeclined:
		allowedFrom = []string{models.StatusPending, models.StatusDeclined}
	case models.StatusPending:
		// Push-back path: reopen a declined request.
		allowedFrom = []string{models.StatusDeclined, models.StatusPending}
	}

	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrRequestNotFound
	}
	if !slices.Contains(allowedFrom, current.Status) {
		return ErrTransitionNotAllowed
	}

	if newStatus == models.StatusCompleted {
		if err := s.enroller.EnrollStudent(ctx, courseID, userID); err != nil {
			return fmt.Errorf("failed to enroll student: %w", err)
		}
	}

	matched, err := s.store.SetStatus(ctx, id, newStatus, allowedFrom)
	if err != nil {
		return err
	}
	if !matched {
		// Lost a race with another admin's conflicting transition.
		return ErrTransitionNotAllowed
	}
	return nil
}
