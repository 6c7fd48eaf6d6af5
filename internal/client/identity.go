package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"mindtrack/internal/api"
	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/service"
)

var _ service.IdentityAPI = (*Client)(nil)

// VerifySession revalidates the stored cookie
func (c *Client) VerifySession(ctx context.Context) (*entity.Identity, error) {
	if c.Token() == "" {
		return nil, errs.ErrUnauthenticated
	}

	var resp api.UserResponse
	if err := c.do(ctx, http.MethodGet, api.PathVerifyToken, nil, nil, &resp); err != nil {
		if isUnauthenticated(err) {
			c.SetToken("")
		}
		return nil, err
	}
	if resp.User == nil {
		return nil, errs.New(errs.ErrUnauthenticated, "Server returned no user.")
	}
	return resp.User, nil
}

// Login exchanges credentials for a session cookie
func (c *Client) Login(ctx context.Context, creds entity.Credentials) (*entity.Identity, error) {
	var resp api.UserResponse
	err := c.do(ctx, http.MethodPost, api.PathLogin, nil, api.LoginRequest(creds), &resp)
	if err != nil {
		if isUnauthenticated(err) {
			return nil, errs.New(errs.ErrInvalidCredentials, "Invalid email or password.")
		}
		return nil, err
	}
	if resp.User == nil || c.Token() == "" {
		return nil, errs.New(errs.ErrUnauthenticated, "Login response carried no session.")
	}
	return resp.User, nil
}

// Logout invalidates the session on the server and forgets the cookie
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")

	if c.Token() == "" {
		return nil
	}
	err := c.do(ctx, http.MethodPost, api.PathLogout, nil, nil, nil)
	if isUnauthenticated(err) {
		return nil
	}
	return err
}

// UpdateIdentity applies a profile patch
func (c *Client) UpdateIdentity(ctx context.Context, patch entity.IdentityPatch) (*entity.Identity, error) {
	var resp api.UserResponse
	if err := c.do(ctx, http.MethodPut, api.PathProfile, nil, api.ProfileRequest(patch), &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ListUsers returns every user; the server requires the admin role
func (c *Client) ListUsers(ctx context.Context) ([]*entity.Identity, error) {
	var resp api.UsersResponse
	if err := c.do(ctx, http.MethodGet, api.PathAdminUsers, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// UpdateAccess changes the role or active flag of another user; the server requires the admin role
func (c *Client) UpdateAccess(ctx context.Context, userID uuid.UUID, patch entity.AccessPatch) (*entity.Identity, error) {
	var resp api.UserResponse
	if err := c.do(ctx, http.MethodPut, api.PathAdminUsers+"/"+userID.String(), nil, api.AccessRequest(patch), &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}
