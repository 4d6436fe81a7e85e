package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGerarEValidarToken(t *testing.T) {
	Init("segredo-de-teste")

	token, err := GerarToken(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidarToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestValidarTokenComSegredoErrado(t *testing.T) {
	Init("segredo-a")
	token, err := GerarToken(1, false)
	require.NoError(t, err)

	Init("segredo-b")
	_, err = ValidarToken(token)
	assert.Error(t, err)
}

func TestMiddlewareAutenticacao(t *testing.T) {
	Init("segredo-de-teste")

	proximo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := r.Context().Value(CtxUserID).(uint)
		assert.Equal(t, uint(7), id)
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("token válido", func(t *testing.T) {
		token, err := GerarToken(7, false)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/vendas", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		MiddlewareAutenticacao(proximo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("sem token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/vendas", nil)
		rec := httptest.NewRecorder()

		MiddlewareAutenticacao(proximo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token adulterado", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/vendas", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		rec := httptest.NewRecorder()

		MiddlewareAutenticacao(proximo).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	Init("segredo-de-teste")

	proximo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	protegido := MiddlewareAutenticacao(RequireAdmin(proximo))

	t.Run("administrador passa", func(t *testing.T) {
		token, err := GerarToken(1, true)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		protegido.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("usuário comum é barrado", func(t *testing.T) {
		token, err := GerarToken(2, false)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		protegido.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
