package models

// TokenPair is the credential pair issued by the backend: a short-lived
// access token and a longer-lived refresh token. Both are opaque bearer
// strings from the client's point of view.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Complete reports whether both halves of the pair are present. A pair
// without a refresh token cannot be renewed and must be torn down.
func (p TokenPair) Complete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}
