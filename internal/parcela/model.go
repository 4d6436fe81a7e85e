package parcela

import (
	"time"

	"github.com/atelie-prata/api-revenda/internal/models"
	"gorm.io/gorm"
)

// Parcela representa uma única parcela do plano de pagamento de uma venda.
type Parcela struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	VendaID        uint       `gorm:"not null;index" json:"vendaId"`
	Numero         int        `gorm:"not null" json:"numero"`
	Valor          float64    `gorm:"not null;default:0" json:"valor"`
	DataVencimento time.Time  `gorm:"not null" json:"dataVencimento"`
	Status         string     `gorm:"size:50;not null;default:'Pendente';index" json:"status"`
	DataPagamento  *time.Time `json:"dataPagamento"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	// Derivado na resposta: pendente com vencimento anterior a hoje.
	Atrasada bool `gorm:"-" json:"atrasada"`
}

// CalcularAtraso preenche o campo derivado Atrasada em relação à data dada.
func (p *Parcela) CalcularAtraso(hoje time.Time) {
	dia := hoje.Truncate(24 * time.Hour)
	p.Atrasada = p.Status == models.StatusPendente && p.DataVencimento.Before(dia)
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Parcela{})
}
