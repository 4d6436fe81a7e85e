package venda

import (
	"time"

	"github.com/atelie-prata/api-revenda/internal/parcela"
	"gorm.io/gorm"
)

// Venda representa a venda de um ou mais itens de pano para um cliente,
// com plano de parcelas próprio.
type Venda struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	ClienteID       uint      `gorm:"not null;index" json:"clienteId"`
	DataVenda       time.Time `gorm:"not null" json:"dataVenda"`
	ValorTotal      float64   `gorm:"not null;default:0" json:"valorTotal"`
	Desconto        float64   `gorm:"not null;default:0" json:"desconto"`
	FormaPagamento  string    `gorm:"size:50" json:"formaPagamento"`
	StatusPagamento string    `gorm:"size:50;not null;default:'Pendente';index" json:"statusPagamento"`
	Observacoes     string    `json:"observacoes"`

	Itens    []ItemVenda       `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE" json:"itens"`
	Parcelas []parcela.Parcela `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE" json:"parcelas"`
}

// ItemVenda é a linha da venda com o preço congelado no momento da venda.
// ItemID fica nulo se o item do pano for excluído depois; a linha sobrevive
// como registro histórico.
type ItemVenda struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	VendaID       uint    `gorm:"not null;index" json:"vendaId"`
	ItemID        *uint   `gorm:"index;constraint:OnDelete:SET NULL" json:"itemId,omitempty"`
	Descricao     string  `json:"descricao"`
	Quantidade    int     `gorm:"not null" json:"quantidade"`
	ValorUnitario float64 `gorm:"not null" json:"valorUnitario"`
	ValorTotal    float64 `gorm:"not null" json:"valorTotal"`
}

// Migrate cria as tabelas no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Venda{}, &ItemVenda{})
}
