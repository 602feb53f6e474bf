package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"stayhub/internal/domain"
)

func (r *Repo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	_, err := r.q(ctx).ExecContext(ctx, insertUserSQL,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, string(u.Role), u.Verified,
		valStr(u.Phone), valStr(u.AvatarURL),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, err
	}
	return r.GetUser(ctx, u.ID)
}

func (r *Repo) GetUser(ctx context.Context, id string) (domain.User, error) {
	return r.scanUser(r.q(ctx).QueryRowContext(ctx, selectUserCols+`WHERE id = ?`, id))
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.q(ctx).QueryRowContext(ctx, selectUserCols+`WHERE email = ?`, email))
}

func (r *Repo) SetUserVerified(ctx context.Context, id string, verified bool) error {
	res, err := r.q(ctx).ExecContext(ctx,
		`UPDATE users SET verified = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, verified, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// zero rows can also mean the flag already had this value
		if _, gerr := r.GetUser(ctx, id); gerr != nil {
			return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
	}
	return nil
}

func (r *Repo) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var role string
	var phone, avatar sql.NullString
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.Verified,
		&phone, &avatar, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.Phone = strPtr(phone)
	u.AvatarURL = strPtr(avatar)
	return u, nil
}
