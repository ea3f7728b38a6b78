package models

// Feedback is a free-standing message from the public contact form. It has
// no relation to User; admins list and delete entries.
type Feedback struct {
	BaseModel
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
}
