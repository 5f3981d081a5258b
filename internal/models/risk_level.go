package models

import "strconv"

// RiskLevel is the ordinal risk classification stored as an integer code.
type RiskLevel int

const (
	// RiskLevelNone marks a submission that has not been classified yet.
	RiskLevelNone RiskLevel = iota
	RiskLevelSafe
	RiskLevelMediumRisk
	RiskLevelHighRisk
)

var riskLevelNames = map[RiskLevel]string{
	RiskLevelNone:       "NONE",
	RiskLevelSafe:       "SAFE",
	RiskLevelMediumRisk: "MEDIUM_RISK",
	RiskLevelHighRisk:   "HIGH_RISK",
}

// Known reports whether the code is one of the four defined levels.
func (r RiskLevel) Known() bool {
	_, ok := riskLevelNames[r]
	return ok
}

// String returns the display label, or the numeric code for unknown levels.
func (r RiskLevel) String() string {
	if name, ok := riskLevelNames[r]; ok {
		return name
	}
	return "RiskLevel(" + strconv.Itoa(int(r)) + ")"
}
