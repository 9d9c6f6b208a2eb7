package employees

import "time"

// Employee is the reviewed profile: position, evaluation period, and the
// review outcome fields. FinalScore stays free text.
type Employee struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Position            string    `json:"position"`
	EvaluationPeriod    string    `json:"evaluationPeriod"`
	FinalScore          string    `json:"finalScore"`
	AchievementsSummary string    `json:"achievementsSummary"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type View struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Position            string    `json:"position"`
	EvaluationPeriod    string    `json:"evaluationPeriod"`
	FinalScore          string    `json:"finalScore"`
	AchievementsSummary string    `json:"achievementsSummary"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type CreateRequest struct {
	Username            string `json:"username"`
	Email               string `json:"email"`
	Password            string `json:"password"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Position            string `json:"position"`
	EvaluationPeriod    string `json:"evaluationPeriod"`
	FinalScore          string `json:"finalScore"`
	AchievementsSummary string `json:"achievementsSummary"`
}

type UpdateRequest struct {
	Username            string `json:"username"`
	Email               string `json:"email"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Position            string `json:"position"`
	EvaluationPeriod    string `json:"evaluationPeriod"`
	FinalScore          string `json:"finalScore"`
	AchievementsSummary string `json:"achievementsSummary"`
}
