package api

import (
	"context"

	"github.com/campuskit/campusctl/internal/user"
)

// signInRequest carries sign-in credentials
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn authenticates with the campus API. The response body is the
// canonical user record.
func (c *Client) SignIn(ctx context.Context, email, password string) (user.Record, error) {
	var rec user.Record
	err := c.post(ctx, "/users/sign-in", signInRequest{Email: email, Password: password}, &rec)
	if err != nil {
		return user.Record{}, err
	}
	if err := rec.Validate(); err != nil {
		return user.Record{}, err
	}
	return rec, nil
}

// CreateUser registers a new account and returns the created record
func (c *Client) CreateUser(ctx context.Context, in user.RegisterInput) (user.Record, error) {
	var rec user.Record
	if err := c.post(ctx, "/users", in, &rec); err != nil {
		return user.Record{}, err
	}
	if err := rec.Validate(); err != nil {
		return user.Record{}, err
	}
	return rec, nil
}

// UpdateUser updates profile attributes; the returned record is the
// server's authoritative version
func (c *Client) UpdateUser(ctx context.Context, id string, upd user.ProfileUpdate) (user.Record, error) {
	var rec user.Record
	if err := c.put(ctx, "/users/"+id, upd, &rec); err != nil {
		return user.Record{}, err
	}
	if err := rec.Validate(); err != nil {
		return user.Record{}, err
	}
	return rec, nil
}
