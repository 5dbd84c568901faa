package user

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listUsersQuery = `
		SELECT "userId", email, password, "firstName", "lastName", phone, "isAdmin", street, apartment, zip, city, country, "createdAt", "updatedAt"
		FROM users
		ORDER BY "userId"
	`
	getUserByIDQuery = `
		SELECT "userId", email, password, "firstName", "lastName", phone, "isAdmin", street, apartment, zip, city, country, "createdAt", "updatedAt"
		FROM users
		WHERE "userId" = $1
	`
	getUserByEmailQuery = `
		SELECT "userId", email, password, "firstName", "lastName", phone, "isAdmin", street, apartment, zip, city, country, "createdAt", "updatedAt"
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (email, password, "firstName", "lastName", phone, "isAdmin", street, apartment, zip, city, country, "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING "userId"
	`
	deleteUserQuery = `DELETE FROM users WHERE "userId" = $1`
	countUsersQuery = `SELECT COUNT(*) FROM users`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			continue
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.getOne(getUserByIDQuery, id)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.getOne(getUserByEmailQuery, email)
}

func (r *PostgresRepository) getOne(query string, arg any) (User, error) {
	user, err := scanUser(r.db.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) Create(user User) (User, error) {
	err := r.db.QueryRow(insertUserQuery,
		user.Email, user.Password, user.FirstName, user.LastName, user.Phone, user.IsAdmin,
		user.Street, user.Apartment, user.Zip, user.City, user.Country, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteUserQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(countUsersQuery).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		user      User
		street    sql.NullString
		apartment sql.NullString
		zip       sql.NullString
		city      sql.NullString
		country   sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.Phone,
		&user.IsAdmin, &street, &apartment, &zip, &city, &country, &createdAt, &updatedAt)
	if err != nil {
		return User{}, err
	}
	user.Street = street.String
	user.Apartment = apartment.String
	user.Zip = zip.String
	user.City = city.String
	user.Country = country.String
	user.CreatedAt = createdAt.String
	user.UpdatedAt = updatedAt.String
	return user, nil
}
