package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingSortColumnAcceptsKnownColumns(t *testing.T) {
	for _, col := range []string{"created_at", "reference", "client_name", "destination", "status", "check_in"} {
		assert.Equal(t, col, bookingSortColumn(col))
	}
}

func TestBookingSortColumnRejectsArbitraryInput(t *testing.T) {
	cases := []string{
		"",
		"agent_id",
		"CREATED_AT",
		"created_at; DROP TABLE bookings",
		"(SELECT password FROM users LIMIT 1)",
	}
	for _, in := range cases {
		assert.Equal(t, "created_at", bookingSortColumn(in), "sort_by=%q", in)
	}
}
