package domain

// RiskLevel is the hypothetical risk tier assigned to a clause.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// IsValid reports whether the value is one of the three enumerated tiers.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Severity orders risk levels for presentation: High > Medium > Low.
// Unknown values sort below Low.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	}
	return 0
}

// ChatSender identifies which side of the Q&A channel produced a message.
type ChatSender string

const (
	SenderUser      ChatSender = "user"
	SenderAssistant ChatSender = "assistant"
)
