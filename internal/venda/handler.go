package venda

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/atelie-prata/api-revenda/internal/cliente"
	"github.com/atelie-prata/api-revenda/internal/infra/metrics"
	"github.com/atelie-prata/api-revenda/internal/item"
	"github.com/atelie-prata/api-revenda/internal/models"
	"github.com/atelie-prata/api-revenda/internal/parcela"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler orquestra o ciclo de vida da venda: criação, edição com
// reconciliação de estoque e exclusão, sempre dentro de uma única
// transação.
type Handler struct {
	DB       *gorm.DB
	Repo     *Repository
	Clientes *cliente.Repository
	Itens    *item.Repository
	Parcelas *parcela.Repository
}

func NewHandler(db *gorm.DB, repo *Repository, clientes *cliente.Repository, itens *item.Repository, parcelas *parcela.Repository) *Handler {
	return &Handler{DB: db, Repo: repo, Clientes: clientes, Itens: itens, Parcelas: parcelas}
}

/* ============================== DTOs ============================== */

type selecaoItemDTO struct {
	ItemID     uint `json:"itemId"`
	Quantidade int  `json:"quantidade"`
}

type descontoDTO struct {
	Tipo  string  `json:"tipo"` // "percentual" | "fixo"
	Valor float64 `json:"valor"`
}

type parcelamentoDTO struct {
	Quantidade  int      `json:"quantidade"`
	Vencimentos []string `json:"vencimentos"`
	Entrada     float64  `json:"entrada"`
}

type vendaCreateDTO struct {
	ClienteID      uint             `json:"clienteId"`
	Data           string           `json:"data"`
	FormaPagamento string           `json:"formaPagamento"`
	Observacoes    string           `json:"observacoes"`
	Desconto       descontoDTO      `json:"desconto"`
	Itens          []selecaoItemDTO `json:"itens"`
	Parcelamento   parcelamentoDTO  `json:"parcelamento"`
}

type vendaUpdateDTO struct {
	ClienteID      uint         `json:"clienteId"`
	Data           string       `json:"data"`
	FormaPagamento string       `json:"formaPagamento"`
	Observacoes    string       `json:"observacoes"`
	Desconto       *descontoDTO `json:"desconto"`
	Itens          []EdicaoItem `json:"itens"`
}

func parseData(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

/* ========================= POST /vendas ========================= */

// Criar valida, calcula totais, grava a venda com linhas e parcelas e
// baixa o estoque — tudo em uma transação. Estoque insuficiente em
// qualquer linha desfaz a venda inteira.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto vendaCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	if dto.ClienteID == 0 {
		http.Error(w, "Selecione um cliente", http.StatusBadRequest)
		return
	}
	if len(dto.Itens) == 0 {
		http.Error(w, "A venda precisa de pelo menos um item", http.StatusBadRequest)
		return
	}
	for _, sel := range dto.Itens {
		if sel.Quantidade <= 0 {
			http.Error(w, "Quantidade deve ser positiva", http.StatusBadRequest)
			return
		}
	}
	if dto.Desconto.Tipo == models.DescontoPercentual && dto.Desconto.Valor > 100 {
		http.Error(w, "Desconto percentual não pode exceder 100%", http.StatusBadRequest)
		return
	}

	n := dto.Parcelamento.Quantidade
	if n < 1 {
		n = 1
	}
	hoje := time.Now()

	dataVenda := hoje
	if dto.Data != "" {
		t, err := parseData(dto.Data)
		if err != nil {
			http.Error(w, "Data da venda inválida", http.StatusBadRequest)
			return
		}
		dataVenda = t
	}

	vencimentos := []time.Time{hoje}
	if n > 1 {
		if len(dto.Parcelamento.Vencimentos) != n {
			http.Error(w, "Informe a data de vencimento de cada parcela", http.StatusBadRequest)
			return
		}
		vencimentos = vencimentos[:0]
		for _, s := range dto.Parcelamento.Vencimentos {
			t, err := parseData(s)
			if err != nil {
				http.Error(w, "Data de vencimento inválida: "+s, http.StatusBadRequest)
				return
			}
			vencimentos = append(vencimentos, t)
		}
	}

	if _, err := h.Clientes.BuscarPorID(dto.ClienteID); err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusBadRequest)
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Não foi possível iniciar transação", http.StatusInternalServerError)
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			_ = tx.Rollback()
			http.Error(w, "Falha interna", http.StatusInternalServerError)
		}
	}()

	// Snapshots de preço e subtotal, lidos dentro da transação.
	var subtotal float64
	linhas := make([]ItemVenda, 0, len(dto.Itens))
	for _, sel := range dto.Itens {
		var it item.Item
		if err := tx.First(&it, sel.ItemID).Error; err != nil {
			_ = tx.Rollback()
			http.Error(w, "Item não encontrado", http.StatusBadRequest)
			return
		}
		itemID := it.ID
		linha := ItemVenda{
			ItemID:        &itemID,
			Descricao:     it.Descricao,
			Quantidade:    sel.Quantidade,
			ValorUnitario: it.ValorUnitario,
			ValorTotal:    centavos(float64(sel.Quantidade) * it.ValorUnitario),
		}
		subtotal += linha.ValorTotal
		linhas = append(linhas, linha)
	}
	subtotal = centavos(subtotal)

	desconto := CalcularDesconto(subtotal, dto.Desconto.Tipo, dto.Desconto.Valor)
	total := centavos(subtotal - desconto)

	status := models.StatusPendente
	if n == 1 {
		status = models.StatusPago
	}

	v := Venda{
		ClienteID:       dto.ClienteID,
		DataVenda:       dataVenda,
		ValorTotal:      total,
		Desconto:        desconto,
		FormaPagamento:  dto.FormaPagamento,
		StatusPagamento: status,
		Observacoes:     dto.Observacoes,
	}
	if err := tx.Create(&v).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao criar venda", http.StatusInternalServerError)
		return
	}

	totalUnidades := 0
	for i := range linhas {
		linhas[i].VendaID = v.ID
		totalUnidades += linhas[i].Quantidade
	}
	if err := tx.Create(&linhas).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao gravar itens da venda", http.StatusInternalServerError)
		return
	}

	// Baixa de estoque: um UPDATE condicional por item, sem fallback.
	for _, sel := range dto.Itens {
		if err := h.Itens.DecrementarEstoque(tx, sel.ItemID, sel.Quantidade); err != nil {
			_ = tx.Rollback()
			if errors.Is(err, item.ErrEstoqueInsuficiente) {
				http.Error(w, "Estoque insuficiente para um dos itens", http.StatusConflict)
				return
			}
			http.Error(w, "Erro ao baixar estoque", http.StatusInternalServerError)
			return
		}
	}

	parcelas, err := parcela.Gerar(v.ID, total, vencimentos, dto.Parcelamento.Entrada, hoje)
	if err != nil {
		_ = tx.Rollback()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Parcelas.CriarEmLote(tx, parcelas); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao gerar parcelas", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}

	metrics.VendasCriadas.Inc()
	metrics.ItensVendidos.Add(float64(totalUnidades))
	slog.Info("venda criada", "venda", v.ID, "cliente", v.ClienteID, "total", v.ValorTotal)

	criada, err := h.Repo.BuscarPorID(nil, v.ID)
	if err != nil {
		http.Error(w, "Erro ao carregar venda", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(criada)
}

/* ========================= PUT /vendas/{id} ========================= */

// Atualizar edita os campos da venda e reconcilia o estoque a partir de um
// snapshot recém-carregado das linhas. As parcelas existentes não são
// regeneradas quando o total muda; a conciliação do plano é manual.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}

	var dto vendaUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Não foi possível iniciar transação", http.StatusInternalServerError)
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			_ = tx.Rollback()
			http.Error(w, "Falha interna", http.StatusInternalServerError)
		}
	}()

	var v Venda
	if err := tx.First(&v, id).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}

	atuais, err := h.Repo.ListarItens(tx, v.ID)
	if err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao carregar itens da venda", http.StatusInternalServerError)
		return
	}

	plano, err := PlanejarEdicao(atuais, dto.Itens)
	if err != nil {
		_ = tx.Rollback()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for _, aj := range plano.Ajustes {
		if aj.Delta > 0 {
			err = h.Itens.IncrementarEstoque(tx, aj.ItemID, aj.Delta)
		} else {
			err = h.Itens.DecrementarEstoque(tx, aj.ItemID, -aj.Delta)
		}
		if err != nil {
			_ = tx.Rollback()
			if errors.Is(err, item.ErrEstoqueInsuficiente) {
				http.Error(w, "Estoque insuficiente para aumentar a quantidade vendida", http.StatusConflict)
				return
			}
			http.Error(w, "Erro ao ajustar estoque", http.StatusInternalServerError)
			return
		}
	}

	for _, linha := range plano.Remover {
		if err := tx.Delete(&ItemVenda{}, linha.ID).Error; err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao remover item da venda", http.StatusInternalServerError)
			return
		}
	}
	for _, linha := range plano.Atualizar {
		if err := tx.Model(&ItemVenda{}).Where("id = ?", linha.ID).Updates(map[string]interface{}{
			"quantidade":  linha.Quantidade,
			"descricao":   linha.Descricao,
			"valor_total": linha.ValorTotal,
		}).Error; err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao atualizar item da venda", http.StatusInternalServerError)
			return
		}
	}

	// Campos escalares e total recalculado.
	desconto := v.Desconto
	if dto.Desconto != nil {
		desconto = CalcularDesconto(plano.Subtotal, dto.Desconto.Tipo, dto.Desconto.Valor)
	}
	if desconto > plano.Subtotal {
		desconto = plano.Subtotal
	}
	updates := map[string]interface{}{
		"valor_total": centavos(plano.Subtotal - desconto),
		"desconto":    desconto,
	}
	if dto.ClienteID != 0 {
		updates["cliente_id"] = dto.ClienteID
	}
	if dto.Data != "" {
		t, err := parseData(dto.Data)
		if err != nil {
			_ = tx.Rollback()
			http.Error(w, "Data da venda inválida", http.StatusBadRequest)
			return
		}
		updates["data_venda"] = t
	}
	if dto.FormaPagamento != "" {
		updates["forma_pagamento"] = dto.FormaPagamento
	}
	updates["observacoes"] = dto.Observacoes

	if err := tx.Model(&v).Updates(updates).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao atualizar venda", http.StatusInternalServerError)
		return
	}

	if err := h.Parcelas.RecalcStatusVenda(tx, v.ID); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao recalcular status de pagamento", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}

	atualizada, err := h.Repo.BuscarPorID(nil, v.ID)
	if err != nil {
		http.Error(w, "Erro ao carregar venda", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizada)
}

/* ======================== DELETE /vendas/{id} ======================== */

// Deletar devolve todas as quantidades ao estoque e remove linhas,
// parcelas e a venda, em uma transação.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Não foi possível iniciar transação", http.StatusInternalServerError)
		return
	}

	var v Venda
	if err := tx.First(&v, id).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}

	atuais, err := h.Repo.ListarItens(tx, v.ID)
	if err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao carregar itens da venda", http.StatusInternalServerError)
		return
	}

	for _, linha := range atuais {
		if linha.ItemID == nil {
			continue
		}
		if err := h.Itens.IncrementarEstoque(tx, *linha.ItemID, linha.Quantidade); err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao restaurar estoque", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Where("venda_id = ?", v.ID).Delete(&ItemVenda{}).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao remover itens da venda", http.StatusInternalServerError)
		return
	}
	if err := h.Parcelas.DeletarPorVenda(tx, v.ID); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao remover parcelas", http.StatusInternalServerError)
		return
	}
	if err := tx.Delete(&v).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao excluir venda", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}
	slog.Info("venda excluída", "venda", v.ID)
	w.WriteHeader(http.StatusNoContent)
}

/* ============================ Consultas ============================ */

// Listar trata GET /vendas?clienteId=&status=&inicio=&fim=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var f Filtro
	if cid, _ := strconv.Atoi(r.URL.Query().Get("clienteId")); cid > 0 {
		f.ClienteID = uint(cid)
	}
	f.Status = r.URL.Query().Get("status")
	if s := r.URL.Query().Get("inicio"); s != "" {
		if t, err := parseData(s); err == nil {
			f.Inicio = t
		}
	}
	if s := r.URL.Query().Get("fim"); s != "" {
		if t, err := parseData(s); err == nil {
			f.Fim = t
		}
	}

	list, err := h.Repo.Listar(f)
	if err != nil {
		http.Error(w, "Erro ao listar vendas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /vendas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	v, err := h.Repo.BuscarPorID(nil, uint(id))
	if err != nil {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
