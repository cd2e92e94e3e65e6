package models

type Answer struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	QuestionID int64     `json:"question_id"`
	AccountID  AccountID `json:"account_id"`
}

// NewAnswer is the create payload. QuestionID is ignored on update.
type NewAnswer struct {
	Content    string `json:"content"`
	QuestionID int64  `json:"question_id"`
}
