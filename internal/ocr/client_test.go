package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servidor(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, "token-teste")
	c.HTTP = srv.Client()
	return c
}

func TestExtrairItensSucesso(t *testing.T) {
	imagem := []byte("foto-do-pano")

	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-teste", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, base64.StdEncoding.EncodeToString(imagem), payload["imagem"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"rawText": "3x brinco R$ 25,00",
			"items": []map[string]interface{}{
				{"categoria": "brinco", "valor": 25.0, "quantidade": 3},
			},
		})
	})

	itens, raw, err := c.ExtrairItens(context.Background(), imagem)
	require.NoError(t, err)
	assert.Equal(t, "3x brinco R$ 25,00", raw)
	require.Len(t, itens, 1)
	assert.Equal(t, Candidato{Categoria: "brinco", Valor: 25, Quantidade: 3}, itens[0])
}

func TestExtrairItensNenhumItem(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"rawText": "texto ilegível",
			"items":   []interface{}{},
		})
	})

	itens, raw, err := c.ExtrairItens(context.Background(), []byte("x"))
	assert.ErrorIs(t, err, ErrNenhumItem)
	assert.Empty(t, itens)
	assert.Equal(t, "texto ilegível", raw)
}

func TestExtrairItensFalhaDoServico(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "imagem muito escura",
		})
	})

	_, _, err := c.ExtrairItens(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "imagem muito escura")
}

func TestExtrairItensStatusInesperado(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "interno", http.StatusInternalServerError)
	})

	_, _, err := c.ExtrairItens(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestExtrairItensRespostaInvalida(t *testing.T) {
	c := servidor(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("não é json"))
	})

	_, _, err := c.ExtrairItens(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resposta de OCR inválida")
}
