package api

// authUserResponse mirrors the payload returned by GET /auth/user. When the
// account still owes a second factor, requiresTwoFactorAuth lists the accepted
// methods and the id field is absent.
type authUserResponse struct {
	ID                    string   `json:"id"`
	DisplayName           string   `json:"displayName"`
	RequiresTwoFactorAuth []string `json:"requiresTwoFactorAuth"`
}

// userResponse mirrors the subset of GET /users/{id} this client reads. The
// location field is empty or absent for users not currently in any instance.
type userResponse struct {
	Location string `json:"location"`
}

type twoFactorRequest struct {
	Code string `json:"code"`
}
