package domain

// DemoUserID is the identity every request acts as. There is no authentication.
const DemoUserID = "user-123"

// User is a notification recipient. Email and Phone are the addresses used by
// the email and sms channels when a notification carries none of its own.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
