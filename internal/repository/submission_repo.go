package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/submission-gateway/internal/models"
)

// SubmissionRepository defines the two store operations the gateway issues.
type SubmissionRepository interface {
	List(ctx context.Context) ([]models.StudentSubmission, error)
	Create(ctx context.Context, submission *models.StudentSubmission) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) List(ctx context.Context) ([]models.StudentSubmission, error) {
	submissions := make([]models.StudentSubmission, 0)
	if err := r.db.WithContext(ctx).Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.StudentSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}
