package dto

import "github.com/noah-isme/submission-gateway/internal/models"

// SubmissionRequest is the JSON body accepted by POST.
type SubmissionRequest struct {
	ID            string           `json:"id" validate:"required"`
	FullName      string           `json:"fullName" validate:"required"`
	ClassName     string           `json:"className"`
	School        string           `json:"school"`
	Province      string           `json:"province"`
	Score         float64          `json:"score"`
	RiskLevel     models.RiskLevel `json:"riskLevel"`
	RiskLevelName string           `json:"riskLevelName"`
	Timestamp     float64          `json:"timestamp"`
}

// SubmissionResponse is one element of the GET array.
type SubmissionResponse struct {
	ID            string           `json:"id"`
	FullName      string           `json:"fullName"`
	ClassName     string           `json:"className"`
	School        string           `json:"school"`
	Province      string           `json:"province"`
	Score         float64          `json:"score"`
	RiskLevel     models.RiskLevel `json:"riskLevel"`
	RiskLevelName string           `json:"riskLevelName"`
	Timestamp     float64          `json:"timestamp"`
}

// ToModel converts the request into the row to insert.
func (r SubmissionRequest) ToModel() models.StudentSubmission {
	model := models.StudentSubmission{
		ID:            r.ID,
		FullName:      r.FullName,
		ClassName:     r.ClassName,
		School:        r.School,
		Province:      r.Province,
		Score:         r.Score,
		RiskLevel:     r.RiskLevel,
		RiskLevelName: r.RiskLevelName,
		Timestamp:     r.Timestamp,
	}
	model.Normalize()

	return model
}

// NewSubmissionResponse converts a stored row into its wire form.
func NewSubmissionResponse(model models.StudentSubmission) SubmissionResponse {
	model.Normalize()

	return SubmissionResponse{
		ID:            model.ID,
		FullName:      model.FullName,
		ClassName:     model.ClassName,
		School:        model.School,
		Province:      model.Province,
		Score:         model.Score,
		RiskLevel:     model.RiskLevel,
		RiskLevelName: model.RiskLevelName,
		Timestamp:     model.Timestamp,
	}
}

// NewSubmissionResponseSlice converts rows into DTOs. The result is never nil.
func NewSubmissionResponseSlice(rows []models.StudentSubmission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, NewSubmissionResponse(row))
	}

	return responses
}

// MessageResponse is the body of every non-list response.
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
