package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  postgres://u:p@localhost:5432/fact?sslmode=disable  ", "postgres://u:p@localhost:5432/fact?sslmode=disable"},
		{`"host=localhost user=fact dbname=fact"`, "host=localhost user=fact dbname=fact sslmode=disable"},
		{"host=localhost   user=fact  dbname=fact sslmode=require", "host=localhost user=fact dbname=fact sslmode=require"},
		{"file:facturation.db", "file:facturation.db"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeDSN(c.in), c.in)
	}
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u@localhost/fact"))
	assert.True(t, IsPostgres("host=localhost dbname=fact"))
	assert.False(t, IsPostgres("file:facturation.db"))
	assert.False(t, IsPostgres("facturation.db"))
}
