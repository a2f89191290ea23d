package services

import (
	"context"
	"log"
	"slices"

	"github.com/edulaunch/edumarket/internal/models"
)

// Result is returned for business-rule rejections (duplicate admin, target
// never signed up) so callers can show the message directly instead of
// string-matching an error.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AdminStore is the persistence surface of the allow-list document.
type AdminStore interface {
	GetSettings(ctx context.Context) (*models.AdminSettings, error)
	CreateSettings(ctx context.Context, email string) error
	AddEmail(ctx context.Context, email string) error
	RemoveEmail(ctx context.Context, email string) error
}

// UserFinder looks up directory entries; an admin cannot be provisioned for
// someone who has never logged in.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AdminService answers and mutates the admin allow-list. IsAdmin is the only
// fail-closed read in the system: admin capability is the highest-privilege
// check, so an unreadable or absent allow-list means "not an admin".
type AdminService struct {
	store AdminStore
	users UserFinder
}

func NewAdminService(store AdminStore, users UserFinder) *AdminService {
	return &AdminService{store: store, users: users}
}

func (s *AdminService) IsAdmin(ctx context.Context, email string) bool {
	if email == "" {
		return false
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		log.Printf("Failed to check admin status: %v", err)
		return false
	}
	if settings == nil {
		return false
	}
	return slices.Contains(settings.AdminEmails, email)
}

// GetAdmins returns the current allow-list, or empty on any failure.
func (s *AdminService) GetAdmins(ctx context.Context) []string {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		log.Printf("Failed to fetch admins: %v", err)
		return []string{}
	}
	if settings == nil || settings.AdminEmails == nil {
		return []string{}
	}
	return settings.AdminEmails
}

func (s *AdminService) AddAdmin(ctx context.Context, email string) Result {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("Failed to look up user %s: %v", email, err)
		return Result{Success: false, Message: "Internal Error: Failed to add admin."}
	}
	if user == nil {
		return Result{Success: false, Message: "User not found. They must sign up first."}
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		log.Printf("Failed to read admin settings: %v", err)
		return Result{Success: false, Message: "Internal Error: Failed to add admin."}
	}

	if settings == nil {
		// First admin ever: the allow-list document is created lazily.
		if err := s.store.CreateSettings(ctx, email); err != nil {
			log.Printf("Failed to create admin settings: %v", err)
			return Result{Success: false, Message: "Internal Error: Failed to add admin."}
		}
		return Result{Success: true, Message: "Admin added successfully."}
	}

	if slices.Contains(settings.AdminEmails, email) {
		return Result{Success: false, Message: "User is already an admin."}
	}

	if err := s.store.AddEmail(ctx, email); err != nil {
		log.Printf("Failed to add admin %s: %v", email, err)
		return Result{Success: false, Message: "Internal Error: Failed to add admin."}
	}
	return Result{Success: true, Message: "Admin added successfully."}
}

// RemoveAdmin set-removes the email; removing a non-member succeeds with no
// change.
func (s *AdminService) RemoveAdmin(ctx context.Context, email string) Result {
	if err := s.store.RemoveEmail(ctx, email); err != nil {
		log.Printf("Failed to remove admin %s: %v", email, err)
		return Result{Success: false, Message: "Failed to remove admin."}
	}
	return Result{Success: true, Message: "Admin removed successfully."}
}
