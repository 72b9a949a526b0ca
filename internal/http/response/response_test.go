package response

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKWithData(t *testing.T) {
	resp := OKWithData([]string{"Grade 1"})

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Grade 1"}, resp.Data)
	assert.Empty(t, resp.Error)
}

func TestOKWithMessage_NullData(t *testing.T) {
	resp := OKWithMessage(nil, "Not authenticated")

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Not authenticated"}`, string(data))
}

func TestOKWithData_EmptySliceIsKept(t *testing.T) {
	resp := OKWithData([]string{})

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	// пустой список должен попадать в ответ, а не пропадать
	assert.JSONEq(t, `{"success":true,"data":[]}`, string(data))
}

func TestError(t *testing.T) {
	resp := Error("invalid credentials")

	assert.False(t, resp.Success)
	assert.Equal(t, "invalid credentials", resp.Error)
}

func TestValidationError(t *testing.T) {
	type req struct {
		UserName string `validate:"required"`
		Password string `validate:"required,min=6"`
	}

	err := validator.New().Struct(req{Password: "123"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "UserName is a required field")
	assert.Contains(t, resp.Error, "Password is too short")
}
