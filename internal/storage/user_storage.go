package storage

import (
	"SAFE_AISafetySuite/internal/models"
	"database/sql"
	"errors"

	"modernc.org/sqlite"
)

var ErrUsernameExists = errors.New("username already exists")

func CreateUser(username, passwordHash string, profile models.UserProfile) error {
	stmt, err := db.Prepare("INSERT INTO users(username, password_hash, name, organization, role) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(username, passwordHash, profile.Name, profile.Organization, profile.Role)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) {
			if sqliteErr.Code() == 2067 {
				return ErrUsernameExists
			}
		}
		return err
	}
	return nil
}

func GetUserByUsername(username string) (models.User, error) {
	var user models.User
	var id int

	row := db.QueryRow("SELECT id, username, password_hash, name, organization, role FROM users WHERE username = ?", username)

	var nullName, nullOrg, nullRole sql.NullString

	if err := row.Scan(
		&id, &user.Username,
		&user.PasswordHash,
		&nullName,
		&nullOrg,
		&nullRole,
	); err != nil {
		return user, err
	}

	if nullName.Valid {
		user.Profile.Name = nullName.String
	}
	if nullOrg.Valid {
		user.Profile.Organization = nullOrg.String
	}
	if nullRole.Valid {
		user.Profile.Role = nullRole.String
	}

	return user, nil
}

func GetUserIDByUsername(username string) (int, error) {
	var id int
	row := db.QueryRow("SELECT id FROM users WHERE username = ?", username)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
