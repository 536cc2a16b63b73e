package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"veriauth/internal/models"
	"veriauth/internal/repositories"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")

	// ErrUnknownToken covers a token that decodes fine but no longer matches
	// any account state: unknown email, already consumed, or superseded by a
	// newer token. A verified account can never be "re-verified" with an old
	// captured link.
	ErrUnknownToken = errors.New("unknown token")
)

// MailSender is what AccountService needs from the mailer: hand over a
// message and move on.
type MailSender interface {
	Enqueue(to, link string)
}

// AccountService drives an account through
// Unregistered -> PendingVerification -> Verified.
type AccountService interface {
	Register(name, email, password string) error
	Verify(token string) error
	Login(email, password string) error
}

type accountService struct {
	repo    repositories.UserRepository
	auth    AuthService
	tokens  TokenService
	mailer  MailSender
	baseURL string
}

func NewAccountService(
	repo repositories.UserRepository,
	auth AuthService,
	tokens TokenService,
	mailer MailSender,
	baseURL string,
) AccountService {
	return &accountService{
		repo:    repo,
		auth:    auth,
		tokens:  tokens,
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *accountService) verificationLink(token string) string {
	return s.baseURL + "/api/auth/verify/" + token
}

// Register creates the account durably before any email is attempted, so a
// delivery failure never leaves an orphaned registration. Duplicate detection
// is done twice: a friendly pre-check plus the unique index on insert, which
// is the one that holds under concurrent registrations.
func (s *accountService) Register(name, email, password string) error {
	email = strings.TrimSpace(email)

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("register lookup: %w", err)
	}
	if existing != nil {
		return ErrEmailExists
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("register hash: %w", err)
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return fmt.Errorf("register token: %w", err)
	}

	user := &models.User{
		Name:              name,
		Email:             email,
		PasswordHash:      hash,
		IsVerified:        false,
		VerificationToken: &token,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return ErrEmailExists
		}
		return fmt.Errorf("register create: %w", err)
	}

	s.mailer.Enqueue(email, s.verificationLink(token))
	log.Printf("[account][register] created id=%d email=%q (pending verification)", user.ID, email)
	return nil
}

// Verify consumes a verification token. Consumption clears the stored token,
// so presenting the same token a second time fails even though it still
// decodes, and IsVerified only ever moves false -> true.
func (s *accountService) Verify(token string) error {
	email, err := s.tokens.Decode(token)
	if err != nil {
		return err
	}

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("verify lookup: %w", err)
	}
	if user == nil || user.VerificationToken == nil || *user.VerificationToken != token {
		return ErrUnknownToken
	}

	user.IsVerified = true
	user.VerificationToken = nil
	if err := s.repo.Update(user); err != nil {
		return fmt.Errorf("verify update: %w", err)
	}
	log.Printf("[account][verify] verified id=%d email=%q", user.ID, email)
	return nil
}

// Login deliberately reports an unknown email and a wrong password with the
// same error, while a pending verification is distinguishable and triggers a
// re-send with a fresh token.
func (s *accountService) Login(email, password string) error {
	email = strings.TrimSpace(email)

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("login lookup: %w", err)
	}
	if user == nil {
		return ErrInvalidCredentials
	}

	if !user.IsVerified {
		token, err := s.tokens.Issue(user.Email)
		if err != nil {
			log.Printf("[account][login] re-issue token failed for %q: %v", email, err)
			return ErrNotVerified
		}
		user.VerificationToken = &token
		if err := s.repo.Update(user); err != nil {
			// the previously stored token stays valid, the old link still works
			log.Printf("[account][login] persist re-issued token failed for %q: %v", email, err)
		} else {
			s.mailer.Enqueue(user.Email, s.verificationLink(token))
		}
		return ErrNotVerified
	}

	if !s.auth.CheckPassword(password, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	// TODO: issue a session credential here once the session design lands;
	// for now a successful login is acknowledgment only.
	log.Printf("[account][login] success id=%d email=%q", user.ID, email)
	return nil
}
