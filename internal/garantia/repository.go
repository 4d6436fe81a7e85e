package garantia

import (
	"time"

	"github.com/atelie-prata/api-revenda/internal/venda"
	"gorm.io/gorm"
)

// JanelaElegibilidade é o período após a venda em que troca ou devolução
// ainda são aceitas.
const JanelaElegibilidade = 2 * 365 * 24 * time.Hour

// Repository encapsula o acesso a dados de garantias.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(g *Garantia) error {
	return r.DB.Create(g).Error
}

func (r *Repository) ListarTodas(status string) ([]Garantia, error) {
	var list []Garantia
	q := r.DB.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) BuscarPorID(id uint) (*Garantia, error) {
	var g Garantia
	if err := r.DB.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// AtualizarStatus grava o novo status. Se db == nil, usa o r.DB.
func (r *Repository) AtualizarStatus(db *gorm.DB, id uint, status string) error {
	if db == nil {
		db = r.DB
	}
	return db.Model(&Garantia{}).Where("id = ?", id).Update("status", status).Error
}

// VendasParaGarantia busca as vendas do cliente dentro da janela de
// elegibilidade, com as linhas carregadas para a seleção do item.
func (r *Repository) VendasParaGarantia(clienteID uint) ([]venda.Venda, error) {
	limite := time.Now().Add(-JanelaElegibilidade)
	var vendas []venda.Venda
	err := r.DB.
		Preload("Itens").
		Where("cliente_id = ? AND data_venda >= ?", clienteID, limite).
		Order("data_venda DESC").
		Find(&vendas).Error
	return vendas, err
}
