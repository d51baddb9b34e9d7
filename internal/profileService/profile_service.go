package profile

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	bcryptCost        = 10
)

// TokenIssuer signs session tokens for authenticated profiles
type TokenIssuer interface {
	Issue(profile models.Profile) (string, error)
}

// NewUserInput is an admin-created account
type NewUserInput struct {
	Email               string `json:"email"`
	Password            string `json:"password"`
	FName               string `json:"fname"`
	LName               string `json:"lname"`
	Location            string `json:"location"`
	Role                string `json:"role"`
	Type                string `json:"type"`
	OrganizationName    string `json:"organizationName"`
	OrganizationContact string `json:"organizationContact"`
}

// Session is returned after a successful login
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// ProfileService manages accounts and sessions
type ProfileService struct {
	repo   repository.ProfileDB
	tokens TokenIssuer
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(repo repository.ProfileDB, tokens TokenIssuer) *ProfileService {
	return &ProfileService{repo: repo, tokens: tokens}
}

// Login checks credentials and issues a session token
func (s *ProfileService) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, auctionerrors.Invalid("email", "Email and password are required")
	}

	profile, err := s.repo.GetProfileByEmail(ctx, email)
	if errors.Is(err, auctionerrors.ErrProfileNotFound) {
		return Session{}, fmt.Errorf("service: %w", auctionerrors.ErrBadCredentials)
	}
	if err != nil {
		return Session{}, fmt.Errorf("service: failed to load profile %s: %w", email, err)
	}

	if err := bcrypt.CompareHashAndPassword(profile.PasswordHash, []byte(password)); err != nil {
		return Session{}, fmt.Errorf("service: %w", auctionerrors.ErrBadCredentials)
	}

	token, err := s.tokens.Issue(profile)
	if err != nil {
		return Session{}, fmt.Errorf("service: failed to issue session for %s: %w", email, err)
	}
	return Session{Token: token, UserID: profile.ID, Role: profile.Role}, nil
}

// AddUser creates an account on behalf of an admin, skipping email confirmation
func (s *ProfileService) AddUser(ctx context.Context, actor models.Actor, in NewUserInput) (models.Profile, error) {
	if !actor.IsAdmin() {
		return models.Profile{}, fmt.Errorf("service: %w - only admins add users", auctionerrors.ErrForbidden)
	}
	profile, err := buildProfile(in)
	if err != nil {
		return models.Profile{}, err
	}
	if err := s.repo.CreateProfile(ctx, &profile); err != nil {
		return models.Profile{}, fmt.Errorf("service: failed to add user %s: %w", profile.Email, err)
	}
	return profile, nil
}

func buildProfile(in NewUserInput) (models.Profile, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return models.Profile{}, auctionerrors.Invalid("email", "A valid email is required")
	}
	if len(in.Password) < minPasswordLength {
		return models.Profile{}, auctionerrors.Invalid("password", "Password must be at least %d characters", minPasswordLength)
	}

	switch in.Role {
	case models.RoleAdmin, models.RoleBuyer, models.RoleSeller, models.RoleBoth:
	default:
		return models.Profile{}, auctionerrors.Invalid("role", "Role must be one of admin, buyer, seller or both")
	}

	profileType := in.Type
	if profileType == "" {
		profileType = models.ProfileTypeIndividual
	}
	if profileType != models.ProfileTypeIndividual && profileType != models.ProfileTypeOrganization {
		return models.Profile{}, auctionerrors.Invalid("type", "Type must be individual or organization")
	}

	profile := models.Profile{
		ID:       utils.GenerateID(),
		Email:    email,
		Role:     in.Role,
		FName:    strings.TrimSpace(in.FName),
		LName:    strings.TrimSpace(in.LName),
		Location: strings.TrimSpace(in.Location),
		Type:     profileType,
	}
	if profileType == models.ProfileTypeOrganization && profile.CanSell() {
		profile.OrganizationName = strings.TrimSpace(in.OrganizationName)
		profile.OrganizationContact = strings.TrimSpace(in.OrganizationContact)
		if profile.OrganizationName == "" || profile.OrganizationContact == "" {
			return models.Profile{}, auctionerrors.Invalid("organizationName", "Organization name and contact are required for organization sellers")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return models.Profile{}, fmt.Errorf("service: failed to hash password: %w", err)
	}
	profile.PasswordHash = hash
	return profile, nil
}

// ListProfiles returns every non-admin profile with its activity counts
func (s *ProfileService) ListProfiles(ctx context.Context, actor models.Actor) ([]models.ProfileSummary, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("service: %w - only admins list profiles", auctionerrors.ErrForbidden)
	}
	profiles, err := s.repo.ListProfileSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list profiles: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes a user together with their auctions and bids
func (s *ProfileService) DeleteProfile(ctx context.Context, actor models.Actor, id string) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("service: %w - only admins delete users", auctionerrors.ErrForbidden)
	}
	if id == actor.UserID {
		return auctionerrors.Invalid("id", "Admins cannot delete their own account")
	}
	if err := s.repo.DeleteProfile(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete profile %s: %w", id, err)
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account unless the email is already registered
func (s *ProfileService) EnsureAdmin(ctx context.Context, email, password string) error {
	_, err := s.repo.GetProfileByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, auctionerrors.ErrProfileNotFound) {
		return fmt.Errorf("service: failed to look up admin %s: %w", email, err)
	}

	profile, err := buildProfile(NewUserInput{Email: email, Password: password, FName: "Admin", Role: models.RoleAdmin})
	if err != nil {
		return fmt.Errorf("service: invalid admin account: %w", err)
	}
	if err := s.repo.CreateProfile(ctx, &profile); err != nil && !errors.Is(err, auctionerrors.ErrEmailTaken) {
		return fmt.Errorf("service: failed to create admin %s: %w", email, err)
	}

	utils.Info("admin account created", map[string]any{"email": profile.Email})
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
