package api

import (
	"context"
	"net/http"

	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/domain/gateway"

	"github.com/pkg/errors"
)

// authGateway implements gateway.AuthGateway over the shared Client.
type authGateway struct {
	client *Client
}

// NewAuthGateway is the constructor for authGateway.
func NewAuthGateway(client *Client) gateway.AuthGateway {
	return &authGateway{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profilePatch struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (g *authGateway) Login(ctx context.Context, email, password string) (*gateway.AuthResult, error) {
	var resp authResponseDTO
	err := g.client.Post(ctx, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		if HasStatus(err, http.StatusUnauthorized) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "login failed")
	}
	if resp.Token == "" {
		return nil, errors.New("login response missing token")
	}

	return resp.toResult(), nil
}

func (g *authGateway) Register(ctx context.Context, fullName, email, password string) error {
	req := registerRequest{FullName: fullName, Email: email, Password: password}
	if err := g.client.Post(ctx, "/auth/register", nil, req, nil); err != nil {
		if HasStatus(err, http.StatusBadRequest) {
			return domainerrors.ErrEmailAlreadyRegistered
		}

		return errors.Wrap(err, "register failed")
	}

	return nil
}

func (g *authGateway) Logout(ctx context.Context) error {
	if err := g.client.Post(ctx, "/auth/logout", nil, nil, nil); err != nil {
		return errors.Wrap(err, "logout failed")
	}

	return nil
}

func (g *authGateway) Profile(ctx context.Context) (*entity.User, error) {
	var resp profileDTO
	if err := g.client.Get(ctx, "/auth/profile", nil, &resp); err != nil {
		return nil, errors.Wrap(err, "fetch profile failed")
	}

	return resp.toEntity(), nil
}

func (g *authGateway) UpdateProfile(ctx context.Context, update gateway.ProfileUpdate) (*entity.User, error) {
	patch := profilePatch{
		Name:    update.Name,
		Phone:   update.Phone,
		Address: update.Address,
	}

	var resp profileDTO
	if err := g.client.Patch(ctx, "/auth/profile", patch, &resp); err != nil {
		return nil, errors.Wrap(err, "update profile failed")
	}

	return resp.toEntity(), nil
}
