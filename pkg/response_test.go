package pkg

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type TestHttpResponseWriter struct {
	HeaderMap  http.Header
	Body       []byte
	StatusCode int
}

func (w *TestHttpResponseWriter) Header() http.Header {
	return w.HeaderMap
}

func (w *TestHttpResponseWriter) Write(bytes []byte) (int, error) {
	w.Body = bytes
	return len(bytes), nil
}

func (w *TestHttpResponseWriter) WriteHeader(statusCode int) {
	w.StatusCode = statusCode
}

func TestWriteResponseBytes(t *testing.T) {
	w := &TestHttpResponseWriter{
		HeaderMap: make(http.Header),
	}

	testJson := `{"key":"val"}`
	WriteResponseBytes(w, ContentType.JSON, []byte(testJson), http.StatusCreated)

	assert.Equal(t, http.StatusCreated, w.StatusCode)
	assert.Equal(t, ContentType.JSON, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, testJson, string(w.Body))
}

func TestWriteTextResponseOK(t *testing.T) {
	w := &TestHttpResponseWriter{
		HeaderMap: make(http.Header),
	}

	testText := `test text`
	WriteTextResponseOK(w, testText)

	assert.Equal(t, http.StatusOK, w.StatusCode)
	assert.Equal(t, ContentType.Text, w.HeaderMap.Get("Content-Type"))
	assert.Equal(t, testText, string(w.Body))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, map[string]int{"count": 3}, http.StatusOK)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())

	// NaN cannot be marshaled
	rec = httptest.NewRecorder()
	WriteJSON(rec, math.NaN(), http.StatusOK)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONError(rec, "no can do", http.StatusUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ContentType.JSON, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"no can do"}`, rec.Body.String())
}
