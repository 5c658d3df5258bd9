package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orgauth.app/internal/ids"
)

// Service provides registration, login and organisation access operations.
type Service struct {
	store Store
}

// NewService constructs Service over the given store.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("account store is required")
	}
	return &Service{store: store}, nil
}

// RegisterInput carries the registration request fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// Register creates the user, their default organisation and the membership
// row. The default organisation is named "<firstName>'s Organisation".
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, *Organisation, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	var fields []FieldError
	if in.FirstName == "" {
		fields = append(fields, FieldError{Field: "firstName", Message: "firstName is required"})
	}
	if in.LastName == "" {
		fields = append(fields, FieldError{Field: "lastName", Message: "lastName is required"})
	}
	switch {
	case in.Email == "":
		fields = append(fields, FieldError{Field: "email", Message: "email is required"})
	case !strings.Contains(in.Email, "@"):
		fields = append(fields, FieldError{Field: "email", Message: "email must be a valid address"})
	}
	if in.Password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "password is required"})
	}
	if len(fields) > 0 {
		return nil, nil, newValidationError(fields...)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		UserID:       ids.FromName(in.FirstName + " " + in.LastName),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	}
	orgName := fmt.Sprintf("%s's Organisation", in.FirstName)
	org := &Organisation{
		OrgID: ids.FromName(orgName),
		Name:  orgName,
	}

	if err := s.store.CreateUserWithOrganisation(ctx, user, org); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, nil, newValidationError(FieldError{
				Field:   "email",
				Message: "email is already registered",
			})
		}
		return nil, nil, err
	}
	return user, org, nil
}

// Login authenticates credentials and returns the user on success. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var fields []FieldError
	if email == "" {
		fields = append(fields, FieldError{Field: "email", Message: "email is required"})
	}
	if password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "password is required"})
	}
	if len(fields) > 0 {
		return nil, newValidationError(fields...)
	}

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// GetUser returns the user record when the caller is the user themselves or
// shares an organisation with them; otherwise ErrNotFound.
func (s *Service) GetUser(ctx context.Context, callerID, userID string) (*User, error) {
	callerID = strings.TrimSpace(callerID)
	userID = strings.TrimSpace(userID)
	if callerID == "" || userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if callerID != userID {
		shared, err := s.store.SharesOrganisation(ctx, callerID, userID)
		if err != nil {
			return nil, err
		}
		if !shared {
			return nil, ErrNotFound
		}
	}
	return s.store.FindUser(ctx, userID)
}

// CreateOrganisation creates an organisation owned (via membership) by ownerID.
func (s *Service) CreateOrganisation(ctx context.Context, ownerID, name, description string) (*Organisation, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError(FieldError{Field: "name", Message: "name is required"})
	}
	org := &Organisation{
		OrgID:       ids.FromName(name),
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.store.CreateOrganisation(ctx, org, ownerID); err != nil {
		return nil, err
	}
	return org, nil
}

// GetOrganisation returns the organisation only when the caller has a
// membership row. Non-members get ErrNotFound, never a hint the org exists.
func (s *Service) GetOrganisation(ctx context.Context, callerID, orgID string) (*Organisation, error) {
	callerID = strings.TrimSpace(callerID)
	orgID = strings.TrimSpace(orgID)
	if callerID == "" || orgID == "" {
		return nil, fmt.Errorf("%w: organisation id is required", ErrInvalidInput)
	}
	return s.store.FindOrganisationForUser(ctx, orgID, callerID)
}

// ListOrganisations returns the organisations the caller belongs to.
func (s *Service) ListOrganisations(ctx context.Context, callerID string) ([]*Organisation, error) {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		return nil, fmt.Errorf("%w: caller id is required", ErrInvalidInput)
	}
	return s.store.ListOrganisationsForUser(ctx, callerID)
}

// AddMember adds userID to the organisation. The caller must already be a
// member; the target user must exist. Adding an existing member is a no-op.
func (s *Service) AddMember(ctx context.Context, callerID, orgID, userID string) error {
	callerID = strings.TrimSpace(callerID)
	orgID = strings.TrimSpace(orgID)
	userID = strings.TrimSpace(userID)
	if callerID == "" || orgID == "" {
		return fmt.Errorf("%w: organisation id is required", ErrInvalidInput)
	}
	if userID == "" {
		return newValidationError(FieldError{Field: "userId", Message: "userId is required"})
	}

	member, err := s.store.IsMember(ctx, orgID, callerID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotFound
	}
	if _, err := s.store.FindUser(ctx, userID); err != nil {
		return err
	}
	return s.store.AddMember(ctx, orgID, userID)
}
