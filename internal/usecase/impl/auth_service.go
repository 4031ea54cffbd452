package impl

import (
	"context"
	"log/slog"

	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/domain/gateway"
	"sweetshop/internal/domain/service"
	"sweetshop/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	authGW    gateway.AuthGateway
	session   service.Session
	inspector service.TokenInspector
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	authGW gateway.AuthGateway,
	session service.Session,
	inspector service.TokenInspector,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		authGW:    authGW,
		session:   session,
		inspector: inspector,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// Login authenticates against the backend, stores the returned token
// and caches the account profile. Storing the token fires the session's
// auth listeners, which triggers the cart sync.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*entity.User, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	result, err := srv.authGW.Login(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "login failed")
	}

	if err := srv.session.SetToken(result.Token); err != nil {
		return nil, errors.Wrap(err, "failed to store session token")
	}

	user, err := srv.authGW.Profile(ctx)
	if err != nil {
		// The token is valid even if the profile read fails; fall back
		// to the minimal view the login response carries.
		srv.logger.Warn("profile fetch after login failed", "error", err)
		user = &entity.User{Email: result.Email, Role: result.Role}
	}

	if err := srv.session.SetUser(user); err != nil {
		srv.logger.Warn("failed to cache user profile", "error", err)
	}
	srv.logger.Info("signed in", "email", result.Email, "role", result.Role)

	return user, nil
}

// Register creates a new account. The backend does not sign the account
// in; callers log in afterwards.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) error {
	if err := srv.validate.Struct(input); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	if err := srv.authGW.Register(ctx, input.FullName, input.Email, input.Password); err != nil {
		return errors.Wrap(err, "registration failed")
	}
	srv.logger.Info("account registered", "email", input.Email)

	return nil
}

// Logout invalidates the token server-side and clears the local
// session. The local clear happens even when the server call fails, so
// the user is never stuck signed in.
func (srv *authService) Logout(ctx context.Context) error {
	if !srv.session.IsAuthenticated() {
		return nil
	}

	if err := srv.authGW.Logout(ctx); err != nil {
		srv.logger.Warn("server-side logout failed, clearing local session anyway", "error", err)
	}

	if err := srv.session.Clear(); err != nil {
		return errors.Wrap(err, "failed to clear session")
	}
	srv.logger.Info("signed out")

	return nil
}

// Profile fetches a fresh profile from the backend and refreshes the
// local cache.
func (srv *authService) Profile(ctx context.Context) (*entity.User, error) {
	if !srv.session.IsAuthenticated() {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	user, err := srv.authGW.Profile(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch profile")
	}

	if err := srv.session.SetUser(user); err != nil {
		srv.logger.Warn("failed to cache user profile", "error", err)
	}

	return user, nil
}

// UpdateProfile validates and patches the account profile.
func (srv *authService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*entity.User, error) {
	if !srv.session.IsAuthenticated() {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	if err := srv.validate.Struct(input); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	user, err := srv.authGW.UpdateProfile(ctx, gateway.ProfileUpdate{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	if err := srv.session.SetUser(user); err != nil {
		srv.logger.Warn("failed to cache user profile", "error", err)
	}

	return user, nil
}

// CurrentUser returns the cached profile without a network call.
func (srv *authService) CurrentUser() *entity.User {
	return srv.session.User()
}

// IsAuthenticated reports whether a session token is stored.
func (srv *authService) IsAuthenticated() bool {
	return srv.session.IsAuthenticated()
}

// SessionClaims returns the display claims of the stored token.
func (srv *authService) SessionClaims() (*service.TokenClaims, error) {
	token := srv.session.Token()
	if token == "" {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	claims, err := srv.inspector.Claims(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to inspect session token")
	}

	return claims, nil
}
