package account

import "context"

// Store describes persistence operations required by the account subsystem.
type Store interface {
	// CreateUserWithOrganisation persists the user, their default
	// organisation, and the membership row in a single transaction.
	CreateUserWithOrganisation(ctx context.Context, u *User, org *Organisation) error

	FindUser(ctx context.Context, userID string) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)

	// SharesOrganisation reports whether two users have at least one
	// organisation in common.
	SharesOrganisation(ctx context.Context, userID, otherID string) (bool, error)

	// CreateOrganisation persists the organisation and a membership row for
	// its creator in a single transaction.
	CreateOrganisation(ctx context.Context, org *Organisation, ownerID string) error

	// FindOrganisationForUser returns the organisation only when the user has
	// a membership row; otherwise ErrNotFound.
	FindOrganisationForUser(ctx context.Context, orgID, userID string) (*Organisation, error)
	ListOrganisationsForUser(ctx context.Context, userID string) ([]*Organisation, error)

	IsMember(ctx context.Context, orgID, userID string) (bool, error)
	AddMember(ctx context.Context, orgID, userID string) error
}
