package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is the persisted result of one analysis run, stored in MongoDB.
// Reports are immutable once created and visible only to their owner.
type Report struct {
	ID                    primitive.ObjectID `json:"id"                              bson:"_id,omitempty"`
	UserID                string             `json:"userId"                          bson:"user_id"`
	Title                 string             `json:"title"                           bson:"title"`
	MatchScore            float64            `json:"matchScore"                      bson:"match_score"`
	ATSScore              float64            `json:"atsScore"                        bson:"ats_score"`
	PredictedSalary       float64            `json:"predictedSalary"                 bson:"predicted_salary"`
	MatchedSkills         []string           `json:"matchedSkills"                   bson:"matched_skills"`
	MissingSkills         []string           `json:"missingSkills"                   bson:"missing_skills"`
	SimilarityExplanation string             `json:"similarityExplanation,omitempty" bson:"similarity_explanation,omitempty"`
	CreatedAt             time.Time          `json:"createdAt"                       bson:"created_at"`
}
