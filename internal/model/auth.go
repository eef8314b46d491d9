package model

// AccessToken is the JWT payload carried by authenticated requests.
type AccessToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}
