package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Shifts-api/pkg/validator"
)

type signup struct {
	Name     string `json:"name" validate:"required,personname" msg:"required=Name is required;personname=Name should only contain letters"`
	Email    string `json:"email" validate:"required,emailshape"`
	Password string `json:"password" validate:"min=6"`
}

func TestStruct_Valid(t *testing.T) {
	in := signup{Name: "Jane O'Neil-Smith", Email: "jane@company.com", Password: "secret1"}
	assert.NoError(t, validator.Struct(&in))
}

func TestStruct_FirstFailingFieldWins(t *testing.T) {
	in := signup{Name: "", Email: "bad", Password: "1"}
	err := validator.Struct(&in)
	require.Error(t, err)

	var fe *validator.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "name", fe.Field)
	assert.Equal(t, "required", fe.Tag)
	assert.Equal(t, "Name is required", fe.Message)
}

func TestStruct_CustomTagMessages(t *testing.T) {
	cases := []struct {
		name string
		in   signup
		want string
	}{
		{"digits in name", signup{Name: "R2D2", Email: "a@b.co", Password: "secret1"}, "Name should only contain letters"},
		{"single letter name", signup{Name: "A", Email: "a@b.co", Password: "secret1"}, "Name should only contain letters"},
		{"email without dot", signup{Name: "Ann", Email: "a@b", Password: "secret1"}, "Invalid email format"},
		{"short password", signup{Name: "Ann", Email: "a@b.co", Password: "12345"}, "password must be at least 6 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Struct(&tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}
