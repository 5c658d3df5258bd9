package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, phone, created_at, updated_at`

func (s *PGStore) CreateUserWithOrganisation(ctx context.Context, u *User, org *Organisation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`insert into users(id, first_name, last_name, email, password_hash, phone)
		 values($1,$2,$3,$4,$5,$6)`,
		u.UserID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Phone,
	); err != nil {
		return mapPgError(err)
	}
	if _, err := tx.ExecContext(ctx,
		`insert into organisations(id, name, description) values($1,$2,$3)`,
		org.OrgID, org.Name, org.Description,
	); err != nil {
		return mapPgError(err)
	}
	if _, err := tx.ExecContext(ctx,
		`insert into organisation_members(user_id, org_id) values($1,$2)`,
		u.UserID, org.OrgID,
	); err != nil {
		return mapPgError(err)
	}
	return tx.Commit()
}

func (s *PGStore) FindUser(ctx context.Context, userID string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where id=$1`, userID)
	return scanUser(row)
}

func (s *PGStore) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from users where email=$1`, email)
	return scanUser(row)
}

func (s *PGStore) SharesOrganisation(ctx context.Context, userID, otherID string) (bool, error) {
	var shared bool
	err := s.db.QueryRowContext(ctx,
		`select exists(
			select 1 from organisation_members a
			join organisation_members b on a.org_id = b.org_id
			where a.user_id=$1 and b.user_id=$2
		)`, userID, otherID).Scan(&shared)
	if err != nil {
		return false, err
	}
	return shared, nil
}

func (s *PGStore) CreateOrganisation(ctx context.Context, org *Organisation, ownerID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`insert into organisations(id, name, description) values($1,$2,$3)`,
		org.OrgID, org.Name, org.Description,
	); err != nil {
		return mapPgError(err)
	}
	if _, err := tx.ExecContext(ctx,
		`insert into organisation_members(user_id, org_id) values($1,$2)`,
		ownerID, org.OrgID,
	); err != nil {
		return mapPgError(err)
	}
	return tx.Commit()
}

func (s *PGStore) FindOrganisationForUser(ctx context.Context, orgID, userID string) (*Organisation, error) {
	row := s.db.QueryRowContext(ctx,
		`select o.id, o.name, o.description, o.created_at, o.updated_at
		 from organisations o
		 join organisation_members m on m.org_id = o.id
		 where o.id=$1 and m.user_id=$2`, orgID, userID)
	var org Organisation
	if err := row.Scan(&org.OrgID, &org.Name, &org.Description, &org.CreatedAt, &org.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (s *PGStore) ListOrganisationsForUser(ctx context.Context, userID string) ([]*Organisation, error) {
	rows, err := s.db.QueryContext(ctx,
		`select o.id, o.name, o.description, o.created_at, o.updated_at
		 from organisations o
		 join organisation_members m on m.org_id = o.id
		 where m.user_id=$1
		 order by o.created_at asc`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Organisation
	for rows.Next() {
		var org Organisation
		if err := rows.Scan(&org.OrgID, &org.Name, &org.Description, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &org)
	}
	return res, rows.Err()
}

func (s *PGStore) IsMember(ctx context.Context, orgID, userID string) (bool, error) {
	var member bool
	err := s.db.QueryRowContext(ctx,
		`select exists(select 1 from organisation_members where org_id=$1 and user_id=$2)`,
		orgID, userID).Scan(&member)
	if err != nil {
		return false, err
	}
	return member, nil
}

func (s *PGStore) AddMember(ctx context.Context, orgID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`insert into organisation_members(user_id, org_id) values($1,$2) on conflict do nothing`,
		userID, orgID,
	)
	return mapPgError(err)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.UserID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return ErrConflict
		case pgErrForeignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}
