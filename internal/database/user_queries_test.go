package database

import (
	"testing"

	"github.com/gocql/gocql"
)

func TestUserQueriesFailCleanlyWithoutKeyspace(t *testing.T) {
	// Sans keyspace configuré, les constructeurs doivent renvoyer une erreur
	// exploitable par le handler, jamais une Query nil qui paniquerait au
	// premier Bind.
	t.Setenv("SCYLLA_KS_USERS_KEYSPACE", "")

	builders := map[string]func() (*gocql.Query, error){
		"QueryGetUserByEmail":    QueryGetUserByEmail,
		"QueryGetUserByID":       QueryGetUserByID,
		"QueryInsertUser":        QueryInsertUser,
		"QueryInsertUserByEmail": QueryInsertUserByEmail,
	}
	for name, build := range builders {
		q, err := build()
		if err == nil {
			t.Errorf("%s: erreur attendue sans keyspace configuré", name)
		}
		if q != nil {
			t.Errorf("%s: Query non nil malgré l'erreur", name)
		}
	}
}
