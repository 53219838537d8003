package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedRequest struct {
	Name string `json:"name" validate:"required,max=5"`
}

type selfValidating struct {
	err error
}

func (s selfValidating) Validate() error { return s.err }

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		wantName    string
		errContains string
	}{
		{name: "valid json", requestBody: `{"name": "test"}`, wantName: "test"},
		{name: "invalid json", requestBody: `{"name": "test",}`, errContains: "invalid character"},
		{name: "empty body", requestBody: "", errContains: "EOF"},
		{name: "unknown field", requestBody: `{"name": "test", "age": 3}`, errContains: "unknown field"},
		{name: "trailing data", requestBody: `{"name": "a"} {"name": "b"}`, errContains: "single JSON object"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.requestBody))

			var got namedRequest
			err := DecodeJSON(req, &got)

			if tc.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, got.Name)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Run("struct tags", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(namedRequest{Name: "abc"}))

		err := ValidateRequest(namedRequest{Name: "toolong"})
		require.Error(t, err)
		var vErrs validator.ValidationErrors
		require.ErrorAs(t, err, &vErrs)
		assert.Equal(t, "max", vErrs[0].Tag())

		assert.Error(t, ValidateRequest(namedRequest{}))
	})

	t.Run("custom validate method", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(selfValidating{}))
		assert.EqualError(t, ValidateRequest(selfValidating{err: assert.AnError}), assert.AnError.Error())
	})
}
