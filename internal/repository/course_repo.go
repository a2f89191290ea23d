package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edulaunch/edumarket/internal/models"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseRepo is the Mongo-backed store for course documents.
type CourseRepo struct {
	col *mongo.Collection
}

func NewCourseRepo(database *mongo.Database) *CourseRepo {
	return &CourseRepo{col: database.Collection("courses")}
}

func (r *CourseRepo) Insert(ctx context.Context, course *models.Course) (string, error) {
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, course)
	if err != nil {
		return "", fmt.Errorf("failed to insert course: %w", err)
	}
	return course.ID.Hex(), nil
}

func (r *CourseRepo) FindPublished(ctx context.Context) ([]models.Course, error) {
	cursor, err := r.col.Find(ctx, bson.M{"isPublished": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list published courses: %w", err)
	}
	defer cursor.Close(ctx)

	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}
	return courses, nil
}

// FindByID returns (nil, nil) when no course exists under the id; transport
// failures propagate.
func (r *CourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var course models.Course
	err = r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	return &course, nil
}

func (r *CourseRepo) FindByStudent(ctx context.Context, userID string) ([]models.Course, error) {
	cursor, err := r.col.Find(ctx, bson.M{"enrolledStudents": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled courses: %w", err)
	}
	defer cursor.Close(ctx)

	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}
	return courses, nil
}

// Update merges the non-nil fields of upd into the stored document and
// stamps updatedAt.
func (r *CourseRepo) Update(ctx context.Context, id string, upd *models.CourseUpdate) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrCourseNotFound
	}

	raw, err := bson.Marshal(upd)
	if err != nil {
		return fmt.Errorf("failed to encode course update: %w", err)
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return fmt.Errorf("failed to encode course update: %w", err)
	}
	set["updatedAt"] = time.Now()

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCourseNotFound
	}
	return nil
}

// AddStudent adds userID to the course's enrolledStudents set. $addToSet
// makes the write idempotent; two concurrent calls converge to a single
// membership entry.
func (r *CourseRepo) AddStudent(ctx context.Context, courseID, userID string) error {
	objID, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return ErrCourseNotFound
	}

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$addToSet": bson.M{"enrolledStudents": userID},
	})
	if err != nil {
		return fmt.Errorf("failed to enroll student: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCourseNotFound
	}
	return nil
}
