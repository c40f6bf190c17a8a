package api

// TokenPair is the credential pair issued by the auth endpoints.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

// User is the server's view of the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Question is a single placement-test question as delivered by the backend.
// Choices preserve server order; CorrectChoice always matches one of them.
type Question struct {
	ID            int      `json:"id,omitempty"`
	Prompt        string   `json:"prompt"`
	Choices       []string `json:"choices"`
	CorrectChoice string   `json:"correct_choice"`
	Language      string   `json:"language,omitempty"`
}

// PlacementResult is the payload persisted after a finished test.
type PlacementResult struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}
