package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-api/pkg/apperror"
)

type registrationReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
}

type activationReq struct {
	Code string `json:"activation_code" validate:"required,code"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	v := newValidator()
	err := v.Struct(registrationReq{Email: "nope", Password: "123"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 6 characters long", details["password"])
}

func TestActivationCodeAlias(t *testing.T) {
	v := newValidator()
	assert.NoError(t, v.Struct(activationReq{Code: "1234"}))

	err := v.Struct(activationReq{Code: "12a4"})
	require.Error(t, err)
	assert.Equal(t, "must be a 4 digit code", ToDetails(err)["activation_code"])
}

func TestToDetailsInvalidJSON(t *testing.T) {
	var dst map[string]any
	err := json.Unmarshal([]byte(`{"name":`), &dst)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}

func TestBindErrorIsValidation(t *testing.T) {
	v := newValidator()
	err := BindError(v.Struct(registrationReq{}))
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
