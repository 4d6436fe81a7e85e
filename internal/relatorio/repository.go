package relatorio

import (
	"time"

	"github.com/atelie-prata/api-revenda/internal/item"
	"github.com/atelie-prata/api-revenda/internal/models"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// LinhaVenda é uma linha do relatório de vendas já com o nome do cliente.
type LinhaVenda struct {
	Data    time.Time `json:"data"`
	Cliente string    `json:"cliente"`
	Total   float64   `json:"total"`
	Status  string    `json:"status"`
}

// FiltroVendas delimita o período e o status do relatório.
type FiltroVendas struct {
	Inicio *time.Time
	Fim    *time.Time
	Status string
}

func (r *Repository) ListarVendas(f FiltroVendas) ([]LinhaVenda, error) {
	var linhas []LinhaVenda
	q := r.DB.Table("vendas").
		Select("vendas.data_venda AS data, clientes.nome AS cliente, vendas.valor_total AS total, vendas.status_pagamento AS status").
		Joins("JOIN clientes ON clientes.id = vendas.cliente_id").
		Where("vendas.deleted_at IS NULL")
	if f.Inicio != nil {
		q = q.Where("vendas.data_venda >= ?", *f.Inicio)
	}
	if f.Fim != nil {
		q = q.Where("vendas.data_venda <= ?", *f.Fim)
	}
	if f.Status != "" {
		q = q.Where("vendas.status_pagamento = ?", f.Status)
	}
	err := q.Order("vendas.data_venda").Scan(&linhas).Error
	return linhas, err
}

// GrupoCatalogo agrupa os itens disponíveis de uma categoria.
type GrupoCatalogo struct {
	Categoria string      `json:"categoria"`
	Itens     []item.Item `json:"itens"`
}

// Catalogo lista os itens com estoque dos panos ainda ativos, agrupados
// por categoria na ordem do conjunto de categorias.
func (r *Repository) Catalogo() ([]GrupoCatalogo, error) {
	var itens []item.Item
	err := r.DB.
		Joins("JOIN panos ON panos.id = itens.pano_id").
		Where("panos.status = ? AND panos.deleted_at IS NULL", models.PanoAtivo).
		Where("itens.quantidade_disponivel > 0").
		Order("itens.valor_unitario").
		Find(&itens).Error
	if err != nil {
		return nil, err
	}

	porCategoria := make(map[string][]item.Item)
	for _, i := range itens {
		porCategoria[i.Categoria] = append(porCategoria[i.Categoria], i)
	}

	grupos := make([]GrupoCatalogo, 0, len(porCategoria))
	for _, cat := range item.Categorias {
		if lista, ok := porCategoria[cat]; ok {
			grupos = append(grupos, GrupoCatalogo{Categoria: cat, Itens: lista})
		}
	}
	return grupos, nil
}

// Resumo reúne os agregados do painel inicial.
type Resumo struct {
	EstoqueTotal           int64   `json:"estoqueTotal"`
	VendasMesValor         float64 `json:"vendasMesValor"`
	VendasMesQuantidade    int64   `json:"vendasMesQuantidade"`
	ParcelasPendentes      int64   `json:"parcelasPendentes"`
	ParcelasPendentesValor float64 `json:"parcelasPendentesValor"`
	ParcelasAtrasadas      int64   `json:"parcelasAtrasadas"`
	ParcelasAtrasadasValor float64 `json:"parcelasAtrasadasValor"`
	PanosAtivos            int64   `json:"panosAtivos"`
	PanosEmAtraso          int64   `json:"panosEmAtraso"`
	VouchersAtivos         int64   `json:"vouchersAtivos"`
}

func (r *Repository) MontarResumo(hoje time.Time) (*Resumo, error) {
	res := &Resumo{}
	dia := hoje.Truncate(24 * time.Hour)
	inicioMes := time.Date(hoje.Year(), hoje.Month(), 1, 0, 0, 0, 0, hoje.Location())

	type somaContagem struct {
		Soma  float64
		Total int64
	}

	var estoque struct{ Soma int64 }
	if err := r.DB.Table("itens").
		Select("COALESCE(SUM(quantidade_disponivel), 0) AS soma").
		Scan(&estoque).Error; err != nil {
		return nil, err
	}
	res.EstoqueTotal = estoque.Soma

	var mes somaContagem
	if err := r.DB.Table("vendas").
		Select("COALESCE(SUM(valor_total), 0) AS soma, COUNT(*) AS total").
		Where("data_venda >= ? AND deleted_at IS NULL", inicioMes).
		Scan(&mes).Error; err != nil {
		return nil, err
	}
	res.VendasMesValor = mes.Soma
	res.VendasMesQuantidade = mes.Total

	var pendentes somaContagem
	if err := r.DB.Table("parcelas").
		Select("COALESCE(SUM(valor), 0) AS soma, COUNT(*) AS total").
		Where("status = ? AND data_vencimento >= ?", models.StatusPendente, dia).
		Scan(&pendentes).Error; err != nil {
		return nil, err
	}
	res.ParcelasPendentes = pendentes.Total
	res.ParcelasPendentesValor = pendentes.Soma

	var atrasadas somaContagem
	if err := r.DB.Table("parcelas").
		Select("COALESCE(SUM(valor), 0) AS soma, COUNT(*) AS total").
		Where("status = ? AND data_vencimento < ?", models.StatusPendente, dia).
		Scan(&atrasadas).Error; err != nil {
		return nil, err
	}
	res.ParcelasAtrasadas = atrasadas.Total
	res.ParcelasAtrasadasValor = atrasadas.Soma

	if err := r.DB.Table("panos").
		Where("status = ? AND deleted_at IS NULL", models.PanoAtivo).
		Count(&res.PanosAtivos).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Table("panos").
		Where("status = ? AND data_devolucao < ? AND deleted_at IS NULL", models.PanoAtivo, dia).
		Count(&res.PanosEmAtraso).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Table("vouchers").
		Where("status = ? AND data_validade >= ?", models.VoucherAtivo, hoje).
		Count(&res.VouchersAtivos).Error; err != nil {
		return nil, err
	}
	return res, nil
}
