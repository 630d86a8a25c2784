package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tchybbi/Smatico/internal/alerts"
	"github.com/Tchybbi/Smatico/internal/storage"
	"github.com/Tchybbi/Smatico/internal/store"
)

const testSecret = "test-secret"

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	st := store.New(storage.NewMemory())
	require.NoError(t, st.Load(context.Background()))
	t.Cleanup(func() { st.Close() })
	return &Handler{Store: st, Events: alerts.New(st, ""), Secret: testSecret}
}

func doJSON(e *echo.Echo, handler echo.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = handler(c)
	return rec
}

func TestSignupIssuesValidToken(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()

	rec := doJSON(e, h.Signup, http.MethodPost, "/auth/signup",
		`{"name":"Aisha","email":"aisha@example.com","password":"secret123","role":"customer"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Aisha", resp.User.Name)
	assert.Equal(t, "customer", resp.User.Role)
	assert.NotEmpty(t, resp.User.ID)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID, claims["user_id"])
	assert.Equal(t, "customer", claims["role"])
}

func TestSignupRejectsShortPassword(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()

	rec := doJSON(e, h.Signup, http.MethodPost, "/auth/signup",
		`{"name":"Aisha","email":"aisha@example.com","password":"short","role":"customer"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()

	rec := doJSON(e, h.Signup, http.MethodPost, "/auth/signup",
		`{"name":"Aisha","email":"aisha@example.com","password":"secret123","role":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()

	rec := doJSON(e, h.Signup, http.MethodPost, "/auth/signup",
		`{"name":"Omar","email":"omar@example.com","password":"secret123","role":"provider"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, h.Login, http.MethodPost, "/auth/login",
		`{"email":"omar@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "omar@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)

	rec = doJSON(e, h.Login, http.MethodPost, "/auth/login",
		`{"email":"omar@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()

	rec := doJSON(e, h.Signup, http.MethodPost, "/auth/signup",
		`{"name":"Omar","email":"omar@example.com","password":"secret123","role":"provider"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	mrec := httptest.NewRecorder()
	c := e.NewContext(req, mrec)
	c.Set("user_id", resp.User.ID)
	require.NoError(t, h.Me(c))
	require.Equal(t, http.StatusOK, mrec.Code)

	var me store.PublicUser
	require.NoError(t, json.Unmarshal(mrec.Body.Bytes(), &me))
	assert.Equal(t, "Omar", me.Name)

	// Missing user id on the context.
	urec := httptest.NewRecorder()
	uc := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/me", nil), urec)
	require.NoError(t, h.Me(uc))
	assert.Equal(t, http.StatusUnauthorized, urec.Code)
}
