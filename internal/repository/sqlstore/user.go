package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/newsdesk/internal/domain"
)

const userColumns = `id, first_name, last_name, middle_name, birth_date, gender_id,
	email, login, password_hash, photo, created_at, updated_at`

// UserRepository implements domain.UserRepository.
type UserRepository struct {
	db *sql.DB
	d  dialect
}

// NewUserRepository creates a UserRepository bound to db.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB, d: db.dialect}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ts := now()
	err := r.db.QueryRowContext(ctx, r.d.rebind(
		`INSERT INTO users (first_name, last_name, middle_name, birth_date, gender_id,
		 email, login, password_hash, photo, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		user.FirstName, user.LastName, nullString(user.MiddleName), user.BirthDate, user.GenderID,
		user.Email, user.Login, user.PasswordHash, nullBytes(user.Photo), ts, ts,
	).Scan(&user.ID)
	if err != nil {
		if derr := r.d.translate(err); derr != nil {
			return derr
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.CreatedAt = ts
	user.UpdatedAt = ts
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, r.d.rebind(
		`SELECT `+userColumns+` FROM users WHERE id = ?`), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, r.d.rebind(
		`SELECT `+userColumns+` FROM users WHERE `+r.d.equalFold("login")), login))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by login: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error) {
	users := make(map[int64]*domain.User, len(ids))
	args := int64Args(ids)
	if len(args) == 0 {
		return users, nil
	}

	rows, err := r.db.QueryContext(ctx, r.d.rebind(
		`SELECT `+userColumns+` FROM users WHERE id IN (`+placeholders(len(args))+`)`), args...)
	if err != nil {
		return nil, fmt.Errorf("query users by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users[u.ID] = u
	}
	return users, rows.Err()
}

func (r *UserRepository) List(ctx context.Context, page domain.Page) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, r.d.rebind(
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT ? OFFSET ?`),
		page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Update writes the set fields of upd and always bumps updated_at.
func (r *UserRepository) Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	var sets []string
	var args []any
	set := func(column string, v any) {
		sets = append(sets, column+" = ?")
		args = append(args, v)
	}

	if upd.FirstName.Set {
		set("first_name", upd.FirstName.Value)
	}
	if upd.LastName.Set {
		set("last_name", upd.LastName.Value)
	}
	if upd.MiddleName.Set {
		set("middle_name", nullString(upd.MiddleName.Value))
	}
	if upd.BirthDate.Set {
		set("birth_date", upd.BirthDate.Value)
	}
	if upd.GenderID.Set {
		set("gender_id", upd.GenderID.Value)
	}
	if upd.Email.Set {
		set("email", upd.Email.Value)
	}
	if upd.Login.Set {
		set("login", upd.Login.Value)
	}
	if upd.Photo.Set {
		set("photo", nullBytes(upd.Photo.Value))
	}
	set("updated_at", now())
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, r.d.rebind(
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
	if err != nil {
		if derr := r.d.translate(err); derr != nil {
			return nil, derr
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	result, err := r.db.ExecContext(ctx, r.d.rebind(
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`), hash, now(), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "users")
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	var middle sql.NullString
	var photo []byte
	if err := s.Scan(&u.ID, &u.FirstName, &u.LastName, &middle, &u.BirthDate, &u.GenderID,
		&u.Email, &u.Login, &u.PasswordHash, &photo, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if middle.Valid {
		u.MiddleName = &middle.String
	}
	if len(photo) > 0 {
		u.Photo = photo
	}
	return &u, nil
}

// count returns the number of rows in table. table is never user input.
func count(ctx context.Context, db *sql.DB, table string) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
