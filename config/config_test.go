package config_test

import (
	"net/url"
	"testing"

	"guesthouse/config"

	"github.com/stretchr/testify/assert"
)

func TestPostgresNode_URL(t *testing.T) {
	node := config.PostgresNode{
		Host:     "db.internal",
		Port:     "5432",
		Username: "desk",
		Password: "p@ss word",
		Name:     "guesthouse",
		SSLMode:  "disable",
		Timezone: "Africa/Accra",
	}

	t.Run("plain", func(t *testing.T) {
		parsed, err := url.Parse(node.URL("", nil))

		assert.NoError(t, err)
		assert.Equal(t, "db.internal:5432", parsed.Host)
		assert.Equal(t, "/guesthouse", parsed.Path)
		assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
		assert.Equal(t, "Africa/Accra", parsed.Query().Get("timezone"))

		password, _ := parsed.User.Password()
		assert.Equal(t, "p@ss word", password)
	})

	t.Run("prefixed with migration table", func(t *testing.T) {
		parsed, err := url.Parse(node.URL("staging_", url.Values{"x-migrations-table": {"schema_migrations"}}))

		assert.NoError(t, err)
		assert.Equal(t, "/staging_guesthouse", parsed.Path)
		assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
	})
}

func TestRedis_Addr(t *testing.T) {
	assert.Equal(t, "cache:6379", config.Redis{Host: "cache", Port: "6379"}.Addr())
	assert.Equal(t, "[::1]:6380", config.Redis{Host: "::1", Port: "6380"}.Addr())
}
