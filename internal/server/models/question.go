package models

// Question is owned by exactly one account, set at creation.
type Question struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	AccountID AccountID `json:"account_id"`
}

// NewQuestion carries the mutable fields of a question on create and update.
type NewQuestion struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}
