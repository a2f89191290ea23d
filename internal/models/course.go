package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is the authoritative record for a course's metadata and curriculum
// tree. Membership of a user id in EnrolledStudents is the sole
// representation of "this student has access".
type Course struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CourseTitle       string             `bson:"courseTitle" json:"courseTitle" validate:"required"`
	CourseDescription string             `bson:"courseDescription" json:"courseDescription"`
	CoursePrice       float64            `bson:"coursePrice" json:"coursePrice" validate:"gte=0"`
	Discount          float64            `bson:"discount" json:"discount" validate:"gte=0,lte=100"`
	IsPublished       bool               `bson:"isPublished" json:"isPublished"`
	CourseThumbnail   string             `bson:"courseThumbnail" json:"courseThumbnail"`
	CourseContent     []Chapter          `bson:"courseContent" json:"courseContent" validate:"dive"`
	Educator          string             `bson:"educator" json:"educator"`
	EnrolledStudents  []string           `bson:"enrolledStudents" json:"enrolledStudents"`
	CourseRatings     []Rating           `bson:"courseRatings" json:"courseRatings"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Chapter struct {
	ChapterID      string    `bson:"chapterId" json:"chapterId"`
	ChapterOrder   int       `bson:"chapterOrder" json:"chapterOrder"`
	ChapterTitle   string    `bson:"chapterTitle" json:"chapterTitle" validate:"required"`
	ChapterContent []Lecture `bson:"chapterContent" json:"chapterContent" validate:"dive"`
}

type Lecture struct {
	LectureID       string `bson:"lectureId" json:"lectureId"`
	LectureTitle    string `bson:"lectureTitle" json:"lectureTitle" validate:"required"`
	LectureDuration int    `bson:"lectureDuration" json:"lectureDuration" validate:"gte=0"` // minutes
	LectureURL      string `bson:"lectureUrl" json:"lectureUrl"`
	IsPreviewFree   bool   `bson:"isPreviewFree" json:"isPreviewFree"`
	LectureOrder    int    `bson:"lectureOrder" json:"lectureOrder"`
}

type Rating struct {
	UserID string  `bson:"userId" json:"userId"`
	Rating float64 `bson:"rating" json:"rating"`
}

// CourseUpdate carries the fields an authoring save may merge into an
// existing course. Nil pointers are left untouched in storage.
type CourseUpdate struct {
	CourseTitle       *string    `bson:"courseTitle,omitempty" json:"courseTitle,omitempty"`
	CourseDescription *string    `bson:"courseDescription,omitempty" json:"courseDescription,omitempty"`
	CoursePrice       *float64   `bson:"coursePrice,omitempty" json:"coursePrice,omitempty" validate:"omitempty,gte=0"`
	Discount          *float64   `bson:"discount,omitempty" json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	IsPublished       *bool      `bson:"isPublished,omitempty" json:"isPublished,omitempty"`
	CourseThumbnail   *string    `bson:"courseThumbnail,omitempty" json:"courseThumbnail,omitempty"`
	CourseContent     *[]Chapter `bson:"courseContent,omitempty" json:"courseContent,omitempty" validate:"omitempty,dive"`
}
