package domain

import "time"

// Session identifies the operator behind a console request. The bearer
// token is forwarded verbatim to the records API.
type Session struct {
	ID        string    `json:"id"`
	TokenID   string    `json:"tokenId"`
	Subject   string    `json:"subject"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}
