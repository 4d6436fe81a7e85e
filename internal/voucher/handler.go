package voucher

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// Handler gerencia rotas de vouchers.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Listar trata GET /vouchers?clienteId=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	clienteID, _ := strconv.Atoi(r.URL.Query().Get("clienteId"))
	list, err := h.Repo.ListarPorCliente(uint(clienteID))
	if err != nil {
		http.Error(w, "Erro ao listar vouchers", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorCodigo trata GET /vouchers/{codigo}
func (h *Handler) BuscarPorCodigo(w http.ResponseWriter, r *http.Request) {
	v, err := h.Repo.BuscarPorCodigo(mux.Vars(r)["codigo"])
	if err != nil {
		http.Error(w, "Voucher não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Utilizar trata POST /vouchers/{codigo}/utilizar
func (h *Handler) Utilizar(w http.ResponseWriter, r *http.Request) {
	v, err := h.Repo.BuscarPorCodigo(mux.Vars(r)["codigo"])
	if err != nil {
		http.Error(w, "Voucher não encontrado", http.StatusNotFound)
		return
	}

	var payload struct {
		Valor float64 `json:"valor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	if err := v.Abater(payload.Valor, time.Now()); err != nil {
		switch {
		case errors.Is(err, ErrVoucherInativo), errors.Is(err, ErrVoucherExpirado):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	if err := h.Repo.Atualizar(v); err != nil {
		http.Error(w, "Erro ao atualizar voucher", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
