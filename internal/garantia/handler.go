package garantia

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atelie-prata/api-revenda/internal/infra/metrics"
	"github.com/atelie-prata/api-revenda/internal/item"
	"github.com/atelie-prata/api-revenda/internal/models"
	"github.com/atelie-prata/api-revenda/internal/venda"
	"github.com/atelie-prata/api-revenda/internal/voucher"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// ValidadeVoucher é o prazo de uso do crédito emitido por uma devolução.
const ValidadeVoucher = 90 * 24 * time.Hour

// Handler gerencia o fluxo de garantias: abertura, aprovação e conclusão
// com efeito em estoque e emissão de voucher.
type Handler struct {
	DB       *gorm.DB
	Repo     *Repository
	Itens    *item.Repository
	Vouchers *voucher.Repository
}

func NewHandler(db *gorm.DB, repo *Repository, itens *item.Repository, vouchers *voucher.Repository) *Handler {
	return &Handler{DB: db, Repo: repo, Itens: itens, Vouchers: vouchers}
}

type garantiaCreateDTO struct {
	VendaID                 uint   `json:"vendaId"`
	ItemVendaID             uint   `json:"itemVendaId"`
	ItemNovoID              *uint  `json:"itemNovoId"`
	Tipo                    string `json:"tipo"`
	Motivo                  string `json:"motivo"`
	FormaPagamentoDiferenca string `json:"formaPagamentoDiferenca"`
}

// VendasParaGarantia trata GET /clientes/{id}/vendas-para-garantia
func (h *Handler) VendasParaGarantia(w http.ResponseWriter, r *http.Request) {
	clienteID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do cliente inválido", http.StatusBadRequest)
		return
	}
	vendas, err := h.Repo.VendasParaGarantia(uint(clienteID))
	if err != nil {
		http.Error(w, "Erro ao buscar vendas elegíveis", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(vendas)
}

// Criar trata POST /garantias. Só grava o pedido com os snapshots de
// valor; estoque e pagamento ficam para a conclusão.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto garantiaCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	if dto.Tipo != models.TipoTroca && dto.Tipo != models.TipoDevolucao {
		http.Error(w, "Tipo inválido. Use 'Troca' ou 'Devolucao'.", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Motivo) == "" {
		http.Error(w, "O campo 'motivo' é obrigatório", http.StatusBadRequest)
		return
	}

	var v venda.Venda
	if err := h.DB.First(&v, dto.VendaID).Error; err != nil {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}
	if v.DataVenda.Before(time.Now().Add(-JanelaElegibilidade)) {
		http.Error(w, "Venda fora da janela de garantia de 2 anos", http.StatusUnprocessableEntity)
		return
	}

	var linha venda.ItemVenda
	if err := h.DB.First(&linha, dto.ItemVendaID).Error; err != nil || linha.VendaID != v.ID {
		http.Error(w, "Item da venda não encontrado", http.StatusNotFound)
		return
	}

	valorOriginal := linha.ValorUnitario
	valorNovo := 0.0

	if dto.Tipo == models.TipoTroca {
		if dto.ItemNovoID == nil {
			http.Error(w, "Troca exige o item de reposição", http.StatusBadRequest)
			return
		}
		novo, err := h.Itens.BuscarPorID(*dto.ItemNovoID)
		if err != nil {
			http.Error(w, "Item de reposição não encontrado", http.StatusNotFound)
			return
		}
		if novo.QuantidadeDisponivel < 1 {
			http.Error(w, "Item de reposição sem estoque disponível", http.StatusConflict)
			return
		}
		valorNovo = novo.ValorUnitario
	} else if dto.ItemNovoID != nil {
		http.Error(w, "Devolução não aceita item de reposição", http.StatusBadRequest)
		return
	}

	diferenca, exigePagamento := CalcularDiferenca(valorOriginal, valorNovo)
	if dto.Tipo == models.TipoDevolucao {
		diferenca = 0
		exigePagamento = false
	}
	if exigePagamento && strings.TrimSpace(dto.FormaPagamentoDiferenca) == "" {
		http.Error(w, "Informe a forma de pagamento da diferença", http.StatusBadRequest)
		return
	}

	g := Garantia{
		VendaID:                 v.ID,
		ItemVendaID:             linha.ID,
		ItemNovoID:              dto.ItemNovoID,
		Tipo:                    dto.Tipo,
		Motivo:                  strings.TrimSpace(dto.Motivo),
		Status:                  models.GarantiaPendente,
		ValorItemOriginal:       valorOriginal,
		ValorItemNovo:           valorNovo,
		DiferencaValor:          diferenca,
		FormaPagamentoDiferenca: dto.FormaPagamentoDiferenca,
	}
	if err := h.Repo.Criar(&g); err != nil {
		http.Error(w, "Erro ao registrar garantia", http.StatusInternalServerError)
		return
	}
	metrics.GarantiasAbertas.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(g)
}

// Listar trata GET /garantias?status=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListarTodas(r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "Erro ao listar garantias", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /garantias/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	g, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Garantia não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(g)
}

// AtualizarStatus trata PATCH /garantias/{id}/status.
// A conclusão de uma troca baixa o item de reposição e devolve o original
// ao estoque; a conclusão de uma devolução devolve o original e emite um
// voucher para o cliente. Tudo em uma transação.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da garantia inválido", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	g, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Garantia não encontrada", http.StatusNotFound)
		return
	}
	if !TransicaoValida(g.Status, payload.Status) {
		http.Error(w, "Transição de status não permitida", http.StatusConflict)
		return
	}

	if payload.Status != models.GarantiaConcluida {
		if err := h.Repo.AtualizarStatus(nil, g.ID, payload.Status); err != nil {
			http.Error(w, "Erro ao atualizar status", http.StatusInternalServerError)
			return
		}
		g.Status = payload.Status
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(g)
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Não foi possível iniciar transação", http.StatusInternalServerError)
		return
	}

	var linha venda.ItemVenda
	if err := tx.First(&linha, g.ItemVendaID).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Item da venda não encontrado", http.StatusInternalServerError)
		return
	}

	switch g.Tipo {
	case models.TipoTroca:
		if g.ItemNovoID == nil {
			_ = tx.Rollback()
			http.Error(w, "Garantia de troca sem item de reposição", http.StatusConflict)
			return
		}
		if err := h.Itens.DecrementarEstoque(tx, *g.ItemNovoID, 1); err != nil {
			_ = tx.Rollback()
			if errors.Is(err, item.ErrEstoqueInsuficiente) {
				http.Error(w, "Item de reposição sem estoque disponível", http.StatusConflict)
				return
			}
			http.Error(w, "Erro ao baixar estoque do item de reposição", http.StatusInternalServerError)
			return
		}
		if linha.ItemID != nil {
			if err := h.Itens.IncrementarEstoque(tx, *linha.ItemID, 1); err != nil {
				_ = tx.Rollback()
				http.Error(w, "Erro ao devolver item original ao estoque", http.StatusInternalServerError)
				return
			}
		}

	case models.TipoDevolucao:
		if linha.ItemID != nil {
			if err := h.Itens.IncrementarEstoque(tx, *linha.ItemID, 1); err != nil {
				_ = tx.Rollback()
				http.Error(w, "Erro ao devolver item ao estoque", http.StatusInternalServerError)
				return
			}
		}

		var v venda.Venda
		if err := tx.First(&v, g.VendaID).Error; err != nil {
			_ = tx.Rollback()
			http.Error(w, "Venda da garantia não encontrada", http.StatusInternalServerError)
			return
		}
		garantiaID := g.ID
		vc := voucher.Voucher{
			ClienteID:       v.ClienteID,
			Codigo:          voucher.NovoCodigo(),
			ValorOriginal:   g.ValorItemOriginal,
			ValorDisponivel: g.ValorItemOriginal,
			Status:          models.VoucherAtivo,
			DataValidade:    time.Now().Add(ValidadeVoucher),
			GarantiaID:      &garantiaID,
		}
		if err := h.Vouchers.Criar(tx, &vc); err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao emitir voucher", http.StatusInternalServerError)
			return
		}
		metrics.VouchersEmitidos.Inc()
	}

	if err := h.Repo.AtualizarStatus(tx, g.ID, models.GarantiaConcluida); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao atualizar status", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}
	slog.Info("garantia concluída", "garantia", g.ID, "tipo", g.Tipo)

	g.Status = models.GarantiaConcluida
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(g)
}
