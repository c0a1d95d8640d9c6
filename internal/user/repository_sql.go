package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wichananm65/user-service/internal/database"
)

// SQLRepository stores users in the relational users table. It works with
// MySQL, SQLite and (through pgx) PostgreSQL.
type SQLRepository struct {
	db        database.Querier
	returning bool

	listQuery   string
	getQuery    string
	insertQuery string
	updateQuery string
	deleteQuery string
}

var _ Repository = (*SQLRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	userColumns = `id, email, firstname, lastname, age, gender, phone, profilePicture`

	listUsersQuery   = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	getUserByIDQuery = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	insertUserQuery  = `INSERT INTO users (email, firstname, lastname, age, gender, phone, profilePicture) VALUES (?, ?, ?, ?, ?, ?, ?)`
	updateUserQuery  = `UPDATE users SET email = ?, firstname = ?, lastname = ?, age = ?, gender = ?, phone = ?, profilePicture = ? WHERE id = ?`
	deleteUserQuery  = `DELETE FROM users WHERE id = ?`
)

func NewSQLRepository(db database.Querier, dialect database.Dialect) *SQLRepository {
	insert := insertUserQuery
	if dialect.UsesReturning() {
		insert += ` RETURNING id`
	}

	return &SQLRepository{
		db:          db,
		returning:   dialect.UsesReturning(),
		listQuery:   dialect.Rebind(listUsersQuery),
		getQuery:    dialect.Rebind(getUserByIDQuery),
		insertQuery: dialect.Rebind(insert),
		updateQuery: dialect.Rebind(updateUserQuery),
		deleteQuery: dialect.Rebind(deleteUserQuery),
	}
}

func (r *SQLRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, r.listQuery)
	if err != nil {
		return nil, storeErr("list", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, storeErr("list", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", err)
	}

	return users, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, r.getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, storeErr("get", err)
	}

	return user, nil
}

func (r *SQLRepository) Create(ctx context.Context, user User) (int64, error) {
	args := writeArgs(user)

	if r.returning {
		var id int64
		if err := r.db.QueryRowContext(ctx, r.insertQuery, args...).Scan(&id); err != nil {
			return 0, storeErr("insert", err)
		}
		return id, nil
	}

	result, err := r.db.ExecContext(ctx, r.insertQuery, args...)
	if err != nil {
		return 0, storeErr("insert", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, storeErr("insert", err)
	}

	return id, nil
}

func (r *SQLRepository) Update(ctx context.Context, id int64, user User) (int64, error) {
	result, err := r.db.ExecContext(ctx, r.updateQuery, append(writeArgs(user), id)...)
	if err != nil {
		return 0, storeErr("update", err)
	}

	return rowsAffected(result), nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, r.deleteQuery, id)
	if err != nil {
		return 0, storeErr("delete", err)
	}

	return rowsAffected(result), nil
}

func writeArgs(user User) []any {
	return []any{
		user.Email,
		user.FirstName,
		user.LastName,
		user.Age,
		user.Gender,
		user.Phone,
		user.ProfilePicture,
	}
}

// rowsAffected is informational only; drivers that cannot report it yield -1.
func rowsAffected(result sql.Result) int64 {
	n, err := result.RowsAffected()
	if err != nil {
		return -1
	}
	return n
}

func scanUser(scanner rowScanner) (User, error) {
	user := User{}
	var email, firstName, lastName, gender, phone, picture sql.NullString
	var age sql.NullInt64

	if err := scanner.Scan(
		&user.ID,
		&email,
		&firstName,
		&lastName,
		&age,
		&gender,
		&phone,
		&picture,
	); err != nil {
		return User{}, err
	}

	user.Email = email.String
	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.Age = int(age.Int64)
	user.Gender = gender.String
	user.Phone = phone.String
	user.ProfilePicture = picture.String

	return user, nil
}
