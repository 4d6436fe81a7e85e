package venda

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de vendas.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// BuscarPorID carrega a venda com linhas e parcelas.
// Se db == nil, usa o r.DB. Permite usar dentro de transação.
func (r *Repository) BuscarPorID(db *gorm.DB, id uint) (*Venda, error) {
	if db == nil {
		db = r.DB
	}
	var v Venda
	err := db.
		Preload("Itens").
		Preload("Parcelas", func(db *gorm.DB) *gorm.DB { return db.Order("numero ASC") }).
		First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Filtro delimita a listagem de vendas.
type Filtro struct {
	ClienteID uint
	Status    string
	Inicio    time.Time
	Fim       time.Time
}

// Listar devolve as vendas mais recentes primeiro.
func (r *Repository) Listar(f Filtro) ([]Venda, error) {
	q := r.DB.
		Preload("Itens").
		Preload("Parcelas", func(db *gorm.DB) *gorm.DB { return db.Order("numero ASC") }).
		Order("data_venda DESC")

	if f.ClienteID != 0 {
		q = q.Where("cliente_id = ?", f.ClienteID)
	}
	if f.Status != "" {
		q = q.Where("status_pagamento = ?", f.Status)
	}
	if !f.Inicio.IsZero() {
		q = q.Where("data_venda >= ?", f.Inicio)
	}
	if !f.Fim.IsZero() {
		q = q.Where("data_venda <= ?", f.Fim)
	}

	var list []Venda
	err := q.Find(&list).Error
	return list, err
}

// ListarItens recarrega as linhas persistidas de uma venda, para o diff da
// edição nunca partir de uma cópia em memória possivelmente velha.
func (r *Repository) ListarItens(db *gorm.DB, vendaID uint) ([]ItemVenda, error) {
	if db == nil {
		db = r.DB
	}
	var itens []ItemVenda
	err := db.Where("venda_id = ?", vendaID).Find(&itens).Error
	return itens, err
}
