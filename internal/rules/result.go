package rules

type Status string

const (
	StatusPass  Status = "PASS"
	StatusWarn  Status = "WARN"
	StatusError Status = "ERROR"
)

type Result struct {
	CheckID string `json:"check_id"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	// Details holds human-readable examples supporting the result.
	Details []string `json:"details,omitempty"`
	// Metadata contains structured data supporting the result (e.g. counts).
	Metadata map[string]any `json:"metadata,omitempty"`
}

func NewResult(checkID string, status Status, message string) Result {
	return Result{
		CheckID: checkID,
		Status:  status,
		Message: message,
	}
}

func PassResult(checkID string, message string) Result {
	return NewResult(checkID, StatusPass, message)
}

func WarnResult(checkID string, message string) Result {
	return NewResult(checkID, StatusWarn, message)
}

func ErrorResult(checkID string, message string) Result {
	return NewResult(checkID, StatusError, message)
}

func WarnResultWithDetails(checkID string, message string, details []string, metadata map[string]any) Result {
	res := NewResult(checkID, StatusWarn, message)
	res.Details = details
	res.Metadata = metadata
	return res
}
