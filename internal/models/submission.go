package models

// SubmissionsTable is the table holding student submissions.
const SubmissionsTable = "student_submissions"

// StudentSubmission is one student's recorded risk-assessment entry.
type StudentSubmission struct {
	ID            string    `gorm:"column:id;primaryKey" json:"id"`
	FullName      string    `gorm:"column:full_name;not null" json:"fullName"`
	ClassName     string    `gorm:"column:class_name" json:"className"`
	School        string    `gorm:"column:school" json:"school"`
	Province      string    `gorm:"column:province" json:"province"`
	Score         float64   `gorm:"column:score" json:"score"`
	RiskLevel     RiskLevel `gorm:"column:risk_level" json:"riskLevel"`
	RiskLevelName string    `gorm:"column:risk_level_name" json:"riskLevelName"`
	Timestamp     float64   `gorm:"column:timestamp" json:"timestamp"`
}

// TableName binds the model to the submissions table.
func (StudentSubmission) TableName() string {
	return SubmissionsTable
}

// Normalize derives the risk label from the risk code. Unknown codes keep the
// label they arrived with.
func (s *StudentSubmission) Normalize() {
	if s.RiskLevel.Known() {
		s.RiskLevelName = s.RiskLevel.String()
	}
}
