package categoria

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/atelie-prata/api-revenda/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler gerencia rotas de categorias.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type categoriaDTO struct {
	Nome  string `json:"nome"`
	Cor   string `json:"cor"`
	Ordem int    `json:"ordem"`
	Ativa *bool  `json:"ativa"`
}

// Criar trata POST /categorias. A categoria criada pertence ao usuário logado.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto categoriaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Nome) == "" {
		http.Error(w, "O campo 'nome' é obrigatório", http.StatusBadRequest)
		return
	}

	c := Categoria{Nome: strings.TrimSpace(dto.Nome), Cor: dto.Cor, Ordem: dto.Ordem, Ativa: true}
	if userID, ok := r.Context().Value(auth.CtxUserID).(uint); ok {
		c.UsuarioID = &userID
	}
	if dto.Ativa != nil {
		c.Ativa = *dto.Ativa
	}

	if err := h.Repo.Criar(&c); err != nil {
		http.Error(w, "Erro ao criar categoria", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Listar trata GET /categorias?ativas=true
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	somenteAtivas := r.URL.Query().Get("ativas") == "true"
	list, err := h.Repo.ListarTodas(somenteAtivas)
	if err != nil {
		http.Error(w, "Erro ao listar categorias", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Atualizar trata PUT /categorias/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	c, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Categoria não encontrada", http.StatusNotFound)
		return
	}

	var dto categoriaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Nome) != "" {
		c.Nome = strings.TrimSpace(dto.Nome)
	}
	c.Cor = dto.Cor
	c.Ordem = dto.Ordem
	if dto.Ativa != nil {
		c.Ativa = *dto.Ativa
	}

	if err := h.Repo.Atualizar(c); err != nil {
		http.Error(w, "Erro ao atualizar categoria", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Deletar trata DELETE /categorias/{id}.
// Categorias do sistema (sem usuário dono) não podem ser excluídas.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	c, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Categoria não encontrada", http.StatusNotFound)
		return
	}
	if c.UsuarioID == nil {
		http.Error(w, "Categorias do sistema não podem ser excluídas", http.StatusForbidden)
		return
	}

	if err := h.Repo.Deletar(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Categoria não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao excluir categoria", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
