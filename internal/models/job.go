package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job is a job posting stored in MongoDB
type Job struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID    uint               `json:"author_id" bson:"author_id"`
	Title       string             `json:"title" bson:"title"`
	CompanyName string             `json:"company_name" bson:"company_name"`
	Location    string             `json:"location" bson:"location"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// JobView is a job with its author's profile fields
type JobView struct {
	Job
	AuthorName    string `json:"author_name"`
	AuthorJobRole string `json:"author_job_role"`
}

// CreateJobRequest defines the request body for posting a job
type CreateJobRequest struct {
	ActorID     uint   `json:"actorId" validate:"required"`
	Title       string `json:"title" validate:"required,min=1,max=255"`
	CompanyName string `json:"company_name" validate:"required,max=255"`
	Location    string `json:"location" validate:"max=255"`
}
