package processor

import (
	"ari-server/internal/auth/credentials"
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"errors"

	"github.com/google/uuid"
)

// AuthStore defines the database operations required by AuthProcessor
type AuthStore interface {
	GetAdminUserByEmail(ctx context.Context, email string) (store.AdminUser, error)
	GetClientByLoginEmail(ctx context.Context, email string) (store.Client, error)
	GetClientByID(ctx context.Context, clientID string) (store.Client, error)
	UpdateClient(ctx context.Context, clientID string, fields map[string]interface{}) error
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrClientNotFound     = errors.New("client not found")
)

const generatedPasswordLength = 12

type AuthProcessor struct {
	store     AuthStore
	webAppURI string
	logger    *observability.Logger
}

func New(store AuthStore, webAppURI string, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{
		store:     store,
		webAppURI: webAppURI,
		logger:    logger,
	}
}

// AuthenticatedUser is the identity summary returned with a login token.
type AuthenticatedUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	Role         string `json:"role"`
}

// LoginResult pairs the issued token with the user summary. Tokens are
// opaque random values; nothing validates them on later requests yet.
type LoginResult struct {
	Token string
	User  AuthenticatedUser
}

// LoginAdmin checks an operator's credentials and issues a session token.
func (p AuthProcessor) LoginAdmin(ctx context.Context, email, password string) (LoginResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "login_email", Value: email},
	)

	admin, err := p.store.GetAdminUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		p.logger.Error(ctx, "failed to load admin user", err)
		return LoginResult{}, err
	}
	if !credentials.CheckPassword(admin.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	p.logger.Info(ctx, "admin logged in")
	return LoginResult{
		Token: uuid.New().String(),
		User: AuthenticatedUser{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
			Role:  admin.Role,
		},
	}, nil
}

// LoginClient checks a client's login credentials and issues a session
// token.
func (p AuthProcessor) LoginClient(ctx context.Context, email, password string) (LoginResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "login_email", Value: email},
	)

	client, err := p.store.GetClientByLoginEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		p.logger.Error(ctx, "failed to load client by login email", err)
		return LoginResult{}, err
	}
	if !credentials.CheckPassword(client.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	p.logger.Info(ctx, "client logged in")
	return LoginResult{
		Token: uuid.New().String(),
		User: AuthenticatedUser{
			ID:           client.ClientID,
			Email:        client.LoginEmail,
			BusinessName: client.BusinessName,
			Role:         "client",
		},
	}, nil
}

// GeneratedCredentials is a freshly issued client login.
type GeneratedCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	LoginURL string `json:"loginUrl"`
}

// RegenerateClientCredentials issues a new password for a client and
// stores only its hash. The plaintext is returned exactly once.
func (p AuthProcessor) RegenerateClientCredentials(ctx context.Context, clientID string) (GeneratedCredentials, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "client_id", Value: clientID},
	)

	client, err := p.store.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return GeneratedCredentials{}, ErrClientNotFound
		}
		p.logger.Error(ctx, "failed to load client", err)
		return GeneratedCredentials{}, err
	}

	password, err := credentials.GeneratePassword(generatedPasswordLength)
	if err != nil {
		p.logger.Error(ctx, "failed to generate password", err)
		return GeneratedCredentials{}, err
	}
	hash, err := credentials.HashPassword(password)
	if err != nil {
		p.logger.Error(ctx, "failed to hash password", err)
		return GeneratedCredentials{}, err
	}

	if err := p.store.UpdateClient(ctx, clientID, map[string]interface{}{"passwordHash": hash}); err != nil {
		p.logger.Error(ctx, "failed to store new credentials", err)
		return GeneratedCredentials{}, err
	}

	p.logger.Info(ctx, "client credentials regenerated")
	return GeneratedCredentials{
		Email:    client.LoginEmail,
		Password: password,
		LoginURL: p.webAppURI + "/client/login",
	}, nil
}
