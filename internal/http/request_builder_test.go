package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/engraving-service/internal/domain/dto"
	"github.com/guttosm/engraving-service/internal/i18n"
	"github.com/guttosm/engraving-service/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBuilder_Bind(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		body          string
		expectedText string
		expectError   bool
	}{
		{
			name:          "valid request",
			body:          `{"text": "Forever & Always"}`,
			expectedText: "Forever & Always",
			expectError:   false,
		},
		{
			name:        "invalid JSON",
			body:        `{"text": invalid}`,
			expectError: true,
		},
		{
			name:        "empty body",
			body:        ``,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			c.Request = req

			builder := NewRequestBuilder(c)
			var request dto.AddTextRequest
			err := builder.Bind(&request)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedText, request.Text)
			}
		})
	}
}

func TestUnmarshalFromBytes(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		expectError bool
	}{
		{
			name:        "valid JSON",
			data:        []byte(`{"text": "Forever & Always"}`),
			expectError: false,
		},
		{
			name:        "invalid JSON",
			data:        []byte(`{"text": invalid}`),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := UnmarshalFromBytes[dto.AddTextRequest](tt.data)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, "Forever & Always", result.Text)
			}
		})
	}
}

func TestUnmarshalFromReader(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid JSON",
			body:        `{"text": "Forever & Always"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			body:        `{"text": invalid}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := bytes.NewBufferString(tt.body)
			result, err := UnmarshalFromReader[dto.AddTextRequest](reader)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, "Forever & Always", result.Text)
			}
		})
	}
}

func TestBuildRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid request",
			body:        `{"text": "Forever & Always"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			body:        `{"text": invalid}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			c.Request = req

			result, err := BuildRequest[dto.AddTextRequest](c)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, "Forever & Always", result.Text)
			}
		})
	}
}

func TestBuildRequestAndValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid request",
			body:        `{"text": "Forever & Always"}`,
			expectError: false,
		},
		{
			name:        "invalid request - empty text",
			body:        `{"text": ""}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			c.Request = req

			result, err := BuildRequestAndValidate[dto.AddTextRequest](c)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, "Forever & Always", result.Text)
			}
		})
	}
}

func TestResponseBuilder_ErrorWithKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	middleware.RequestID()(c)
	builder := NewResponseBuilder(c)

	builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errorResp dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &errorResp)
	assert.NoError(t, err)
	assert.Equal(t, dto.ErrCodeInvalidRequest, errorResp.Error)
	assert.NotEmpty(t, errorResp.Message)
}

func TestResponseBuilder_ErrorWithCustomMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	middleware.RequestID()(c)
	builder := NewResponseBuilder(c)

	customMessage := "Custom error message"
	builder.ErrorWithMessage(http.StatusBadRequest, customMessage, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errorResp dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &errorResp)
	assert.NoError(t, err)
	assert.Equal(t, customMessage, errorResp.Message)
}

func TestMarshalJSON(t *testing.T) {
	data := dto.AddTextRequest{Text: "Forever & Always"}
	result, err := MarshalJSON(data)

	assert.NoError(t, err)
	assert.NotNil(t, result)

	var unmarshaled dto.AddTextRequest
	err = json.Unmarshal(result, &unmarshaled)
	assert.NoError(t, err)
	assert.Equal(t, "Forever & Always", unmarshaled.Text)
}

func TestMarshalToWriter(t *testing.T) {
	data := dto.AddTextRequest{Text: "Forever & Always"}
	var buf bytes.Buffer

	err := MarshalToWriter(&buf, data)
	assert.NoError(t, err)

	var result dto.AddTextRequest
	err = json.Unmarshal(buf.Bytes(), &result)
	assert.NoError(t, err)
	assert.Equal(t, "Forever & Always", result.Text)
}
