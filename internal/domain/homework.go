package domain

type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

type Homework struct {
	HomeworkName string `json:"homework_name"`
	Status       Status `json:"status"`
}
