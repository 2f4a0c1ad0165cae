package database

import (
	"github.com/gocql/gocql"
)

// Requêtes du keyspace users. Chaque appel construit une Query neuve: gocql
// prépare et met en cache le statement par session, et une Query partagée
// n'est pas sûre pour des Bind concurrents.
const (
	stmtGetUserByEmail = `SELECT user_id FROM users_by_email WHERE email = ?`
	stmtGetUserByID    = `SELECT email, password, name, role FROM users WHERE user_id = ?`
	stmtInsertUser     = `INSERT INTO users (user_id, email, password, name, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	stmtInsertUserByEmail = `INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`
)

func usersQuery(stmt string) (*gocql.Query, error) {
	session, err := GetUsersSession()
	if err != nil {
		return nil, err
	}
	return session.Query(stmt), nil
}

func QueryGetUserByEmail() (*gocql.Query, error) {
	return usersQuery(stmtGetUserByEmail)
}

func QueryGetUserByID() (*gocql.Query, error) {
	return usersQuery(stmtGetUserByID)
}

func QueryInsertUser() (*gocql.Query, error) {
	return usersQuery(stmtInsertUser)
}

func QueryInsertUserByEmail() (*gocql.Query, error) {
	return usersQuery(stmtInsertUserByEmail)
}
