package parcela

import (
	"time"

	"github.com/atelie-prata/api-revenda/internal/models"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de parcelas.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// CriarEmLote cria múltiplas parcelas de uma vez (ignora se vazio).
// Se db == nil, usa o r.DB. Permite usar dentro de transação.
func (r *Repository) CriarEmLote(db *gorm.DB, parcelas []*Parcela) error {
	if db == nil {
		db = r.DB
	}
	if len(parcelas) == 0 {
		return nil
	}
	return db.Create(parcelas).Error
}

// FindByID busca uma única parcela pelo seu ID.
func (r *Repository) FindByID(id uint) (*Parcela, error) {
	var p Parcela
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	p.CalcularAtraso(time.Now())
	return &p, nil
}

// ListarPorVenda busca todas as parcelas de uma venda, em ordem de número.
func (r *Repository) ListarPorVenda(vendaID uint) ([]Parcela, error) {
	var parcelas []Parcela
	err := r.DB.
		Where("venda_id = ?", vendaID).
		Order("numero ASC").
		Find(&parcelas).Error
	if err != nil {
		return nil, err
	}
	hoje := time.Now()
	for i := range parcelas {
		parcelas[i].CalcularAtraso(hoje)
	}
	return parcelas, nil
}

// ListarComFiltro busca parcelas pelos filtros de status e cliente.
// O bucket "atrasado" significa pendente com vencimento anterior a hoje;
// "pendente" passa a significar pendente com vencimento de hoje em diante.
func (r *Repository) ListarComFiltro(status string, clienteID uint) ([]Parcela, error) {
	hoje := time.Now().Truncate(24 * time.Hour)

	q := r.DB.Model(&Parcela{}).
		Select("parcelas.*").
		Joins("JOIN vendas ON vendas.id = parcelas.venda_id").
		Order("parcelas.data_vencimento ASC")

	if clienteID != 0 {
		q = q.Where("vendas.cliente_id = ?", clienteID)
	}
	switch status {
	case "pago":
		q = q.Where("parcelas.status = ?", models.StatusPago)
	case "atrasado":
		q = q.Where("parcelas.status = ? AND parcelas.data_vencimento < ?", models.StatusPendente, hoje)
	case "pendente":
		q = q.Where("parcelas.status = ? AND parcelas.data_vencimento >= ?", models.StatusPendente, hoje)
	}

	var parcelas []Parcela
	if err := q.Find(&parcelas).Error; err != nil {
		return nil, err
	}
	for i := range parcelas {
		parcelas[i].CalcularAtraso(hoje)
	}
	return parcelas, nil
}

// UpdateStatus atualiza o status e ajusta data_pagamento.
// - Se status == "Pago", define data_pagamento = data informada.
// - Caso contrário, zera data_pagamento (NULL).
func (r *Repository) UpdateStatus(id uint, status string, dataPagamento time.Time) error {
	updates := map[string]interface{}{"status": status}
	if status == models.StatusPago {
		updates["data_pagamento"] = &dataPagamento
	} else {
		updates["data_pagamento"] = nil
	}
	return r.DB.Model(&Parcela{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// RecalcStatusVenda lê as parcelas da venda e grava o status de pagamento
// derivado em vendas.status_pagamento. Chamada explícita após qualquer
// mutação de parcela. Se db == nil, usa o r.DB.
func (r *Repository) RecalcStatusVenda(db *gorm.DB, vendaID uint) error {
	if db == nil {
		db = r.DB
	}
	var parcelas []Parcela
	if err := db.Where("venda_id = ?", vendaID).Find(&parcelas).Error; err != nil {
		return err
	}
	status := CalcularStatusVenda(parcelas)
	return db.Table("vendas").
		Where("id = ?", vendaID).
		Update("status_pagamento", status).Error
}

// DeletarPorVenda remove todas as parcelas da venda.
// Se db == nil, usa o r.DB. Permite usar dentro de transação.
func (r *Repository) DeletarPorVenda(db *gorm.DB, vendaID uint) error {
	if db == nil {
		db = r.DB
	}
	return db.Where("venda_id = ?", vendaID).Delete(&Parcela{}).Error
}
