package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserInputValidate(t *testing.T) {
	valid := func() UserInput {
		return UserInput{Name: "Alice", Email: "alice@example.com", Password: "password123"}
	}

	t.Run("valid with default role", func(t *testing.T) {
		in := valid()
		assert.Empty(t, in.Validate(true))
		assert.Equal(t, "USER", in.Role)
	})

	t.Run("password optional on update", func(t *testing.T) {
		in := valid()
		in.Password = ""
		assert.Empty(t, in.Validate(false))
	})

	tests := []struct {
		name   string
		mutate func(*UserInput)
		want   string
	}{
		{"missing name", func(u *UserInput) { u.Name = "" }, "name"},
		{"bad email", func(u *UserInput) { u.Email = "not-an-email" }, "email"},
		{"short password", func(u *UserInput) { u.Password = "short" }, "password"},
		{"unknown role", func(u *UserInput) { u.Role = "ROOT" }, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			assert.Contains(t, in.Validate(true), tt.want)
		})
	}
}
