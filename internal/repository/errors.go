package repository

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrAlreadyExists surfaces a uniqueness violation as a typed error so
// orchestrators can treat a lost insert race as a benign no-op.
var ErrAlreadyExists = errors.New("record already exists")

func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrAlreadyExists
		}
	}
	return err
}
