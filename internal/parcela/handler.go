package parcela

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/atelie-prata/api-revenda/internal/models"
	"github.com/gorilla/mux"
)

// Handler gerencia rotas de parcelas.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Listar trata GET /parcelas?status=pendente|pago|atrasado&clienteId=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	clienteID, _ := strconv.Atoi(r.URL.Query().Get("clienteId"))

	parcelas, err := h.Repo.ListarComFiltro(status, uint(clienteID))
	if err != nil {
		http.Error(w, "Erro ao buscar parcelas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(parcelas)
}

// ListarPorVenda trata GET /vendas/{id}/parcelas
func (h *Handler) ListarPorVenda(w http.ResponseWriter, r *http.Request) {
	vendaID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}

	parcelas, err := h.Repo.ListarPorVenda(uint(vendaID))
	if err != nil {
		http.Error(w, "Erro ao buscar parcelas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(parcelas)
}

// AtualizarStatus trata PATCH /parcelas/{id}/status.
// Marcar "Pago" registra a data de pagamento; voltar para "Pendente" a
// limpa. O status da venda é recalculado em seguida.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da parcela inválido", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if payload.Status != models.StatusPago && payload.Status != models.StatusPendente {
		http.Error(w, "Status inválido. Use 'Pago' ou 'Pendente'.", http.StatusBadRequest)
		return
	}

	parcela, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Parcela não encontrada", http.StatusNotFound)
		return
	}

	if err := h.Repo.UpdateStatus(uint(id), payload.Status, time.Now()); err != nil {
		http.Error(w, "Erro ao atualizar status da parcela", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.RecalcStatusVenda(nil, parcela.VendaID); err != nil {
		http.Error(w, "Erro ao recalcular status da venda", http.StatusInternalServerError)
		return
	}

	atualizada, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Erro ao buscar parcela atualizada", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizada)
}
