package item

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requisicaoAtualizar(id uint, corpo string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/itens/%d", id), strings.NewReader(corpo))
	return mux.SetURLVars(req, map[string]string{"id": fmt.Sprintf("%d", id)})
}

func TestAtualizarReduzInicialLimitaDisponivel(t *testing.T) {
	repo := NewRepository(abrirBanco(t))
	h := NewHandler(repo, nil)
	i := criarItem(t, repo, 10)

	rec := httptest.NewRecorder()
	h.Atualizar(rec, requisicaoAtualizar(i.ID, `{"quantidadeInicial":5}`))
	require.Equal(t, http.StatusOK, rec.Code)

	atual, err := repo.BuscarPorID(i.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, atual.QuantidadeInicial)
	assert.Equal(t, 5, atual.QuantidadeDisponivel)
	assert.LessOrEqual(t, atual.QuantidadeDisponivel, atual.QuantidadeInicial)
}

func TestAtualizarDisponivelForaDoIntervalo(t *testing.T) {
	repo := NewRepository(abrirBanco(t))
	h := NewHandler(repo, nil)
	i := criarItem(t, repo, 10)

	rec := httptest.NewRecorder()
	h.Atualizar(rec, requisicaoAtualizar(i.ID, `{"quantidadeInicial":5,"quantidadeDisponivel":8}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Atualizar(rec, requisicaoAtualizar(i.ID, `{"quantidadeDisponivel":-1}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAtualizarDisponivelDentroDoIntervalo(t *testing.T) {
	repo := NewRepository(abrirBanco(t))
	h := NewHandler(repo, nil)
	i := criarItem(t, repo, 10)

	rec := httptest.NewRecorder()
	h.Atualizar(rec, requisicaoAtualizar(i.ID, `{"quantidadeInicial":5,"quantidadeDisponivel":3}`))
	require.Equal(t, http.StatusOK, rec.Code)

	atual, err := repo.BuscarPorID(i.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, atual.QuantidadeInicial)
	assert.Equal(t, 3, atual.QuantidadeDisponivel)
}
