// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gvnetwork/contacts-api/internal/config"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/store"
	"github.com/gvnetwork/contacts-api/internal/utils"
	"github.com/gvnetwork/contacts-api/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService. It verifies
// credentials against bcrypt hashes stored by the UserRepository and issues
// HMAC-SHA256 signed JWTs carrying the user's full permission snapshot.
type authService struct {
	// userRepository is the data-access layer used to look up accounts.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Login authenticates an existing user and issues a signed token.
//
// The requested team must be one of the known teams and must match the
// team stored for the account; a token never grants access to a team the
// user does not belong to.
//
// Returns the token and the authenticated user record, or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - ErrUnknownTeam if the requested team is not recognised or does not
//     match the account.
//   - A wrapped storage error if the lookup fails (e.g. user not found —
//     see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match the stored hash.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.Token, models.User, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" || request.Password == "" {
		log.Error().Str("username", request.Username).Msg("invalid login data provided")
		return models.Token{}, models.User{}, ErrInvalidDataProvided
	}

	if request.Team != "" && !slices.Contains(models.KnownTeams, request.Team) {
		log.Error().Str("team", string(request.Team)).Msg("unknown team requested")
		return models.Token{}, models.User{}, ErrUnknownTeam
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, request.Username)
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("user search by username failed")
		return models.Token{}, models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if request.Team != "" && request.Team != foundUser.Team {
		log.Error().
			Str("username", request.Username).
			Str("requested_team", string(request.Team)).
			Str("account_team", string(foundUser.Team)).
			Msg("team mismatch")
		return models.Token{}, models.User{}, ErrUnknownTeam
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(request.Password)); err != nil {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("username", foundUser.Username).
			Msg("wrong password")
		return models.Token{}, models.User{}, ErrWrongPassword
	}

	// Login bookkeeping must not block the login itself.
	if err := a.userRepository.TouchLastLogin(ctx, foundUser.UserID); err != nil {
		log.Warn().Err(err).Int64("id", foundUser.UserID).Msg("failed to record last login")
	}

	token, err := a.createToken(&foundUser)
	if err != nil {
		return models.Token{}, models.User{}, err
	}

	return token, foundUser, nil
}

// createToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, embeds the user's role, team
// and permission snapshot, and expires after tokenDuration.
func (a *authService) createToken(user *models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the signing method and the issuer claim. Any validation failure (expired,
// wrong issuer, malformed, unexpected algorithm) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors. Verification fails closed: no partially validated
// token is ever returned.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
