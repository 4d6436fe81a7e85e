package pano

import (
	"time"

	"github.com/atelie-prata/api-revenda/internal/item"
	"github.com/atelie-prata/api-revenda/internal/models"
	"gorm.io/gorm"
)

// Pano representa um lote consignado retirado com o fornecedor por um
// período determinado.
type Pano struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome               string    `gorm:"size:150;not null" json:"nome"`
	DataRetirada       time.Time `json:"dataRetirada"`
	DataDevolucao      time.Time `json:"dataDevolucao"`
	Status             string    `gorm:"size:50;not null;default:'Ativo';index" json:"status"`
	Foto               string    `json:"foto"`
	ComissaoPercentual *float64  `json:"comissaoPercentual,omitempty"`
	Fornecedor         string    `gorm:"size:150" json:"fornecedor"`

	Itens []item.Item `gorm:"foreignKey:PanoID;constraint:OnDelete:CASCADE" json:"itens,omitempty"`

	// Derivado, nunca persistido: pano ativo com devolução vencida.
	EmAtraso bool `gorm:"-" json:"emAtraso"`
}

// CalcularAtraso preenche o campo derivado EmAtraso em relação à data dada.
func (p *Pano) CalcularAtraso(hoje time.Time) {
	dia := hoje.Truncate(24 * time.Hour)
	p.EmAtraso = p.Status == models.PanoAtivo && p.DataDevolucao.Before(dia)
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pano{})
}
