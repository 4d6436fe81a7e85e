package pano

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler gerencia rotas de panos.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type panoDTO struct {
	Nome               string   `json:"nome"`
	DataRetirada       string   `json:"dataRetirada"`
	DataDevolucao      string   `json:"dataDevolucao"`
	Foto               string   `json:"foto"`
	ComissaoPercentual *float64 `json:"comissaoPercentual"`
	Fornecedor         string   `json:"fornecedor"`
}

func parseData(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Criar trata POST /panos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto panoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Nome) == "" {
		http.Error(w, "O campo 'nome' é obrigatório", http.StatusBadRequest)
		return
	}
	retirada, err := parseData(dto.DataRetirada)
	if err != nil {
		http.Error(w, "Data de retirada inválida", http.StatusBadRequest)
		return
	}
	devolucao, err := parseData(dto.DataDevolucao)
	if err != nil {
		http.Error(w, "Data de devolução inválida", http.StatusBadRequest)
		return
	}

	p := Pano{
		Nome:               strings.TrimSpace(dto.Nome),
		DataRetirada:       retirada,
		DataDevolucao:      devolucao,
		Foto:               dto.Foto,
		ComissaoPercentual: dto.ComissaoPercentual,
		Fornecedor:         dto.Fornecedor,
	}
	if err := h.Repo.Salvar(&p); err != nil {
		http.Error(w, "Erro ao salvar pano", http.StatusInternalServerError)
		return
	}
	p.CalcularAtraso(time.Now())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// Listar trata GET /panos?status=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListarTodos(r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "Erro ao listar panos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /panos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Pano não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Atualizar trata PUT /panos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	p, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Pano não encontrado", http.StatusNotFound)
		return
	}

	var dto panoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Nome) != "" {
		p.Nome = strings.TrimSpace(dto.Nome)
	}
	if dto.DataRetirada != "" {
		if t, err := parseData(dto.DataRetirada); err == nil {
			p.DataRetirada = t
		}
	}
	if dto.DataDevolucao != "" {
		if t, err := parseData(dto.DataDevolucao); err == nil {
			p.DataDevolucao = t
		}
	}
	p.Foto = dto.Foto
	p.ComissaoPercentual = dto.ComissaoPercentual
	p.Fornecedor = dto.Fornecedor

	if err := h.Repo.Atualizar(p); err != nil {
		http.Error(w, "Erro ao atualizar pano", http.StatusInternalServerError)
		return
	}
	p.CalcularAtraso(time.Now())
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Devolver trata PATCH /panos/{id}/devolver
func (h *Handler) Devolver(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repo.Devolver(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Pano não encontrado ou já devolvido", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao devolver pano", http.StatusInternalServerError)
		return
	}
	p, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Erro ao carregar pano", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Deletar trata DELETE /panos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repo.Deletar(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Pano não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao excluir pano", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
