package garantia

import (
	"math"
	"time"

	"github.com/atelie-prata/api-revenda/internal/models"
	"gorm.io/gorm"
)

// Garantia é um pedido de troca ou devolução vinculado a uma linha
// específica de uma venda. A criação não mexe em estoque nem pagamento;
// os efeitos acontecem na conclusão.
type Garantia struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	VendaID     uint   `gorm:"not null;index" json:"vendaId"`
	ItemVendaID uint   `gorm:"not null;index" json:"itemVendaId"`
	ItemNovoID  *uint  `gorm:"index" json:"itemNovoId,omitempty"`
	Tipo        string `gorm:"size:20;not null" json:"tipo"` // "Troca" | "Devolucao"
	Motivo      string `gorm:"not null" json:"motivo"`
	Status      string `gorm:"size:50;not null;default:'Pendente';index" json:"status"`

	// Snapshots de valor no momento da abertura.
	ValorItemOriginal float64 `gorm:"not null" json:"valorItemOriginal"`
	ValorItemNovo     float64 `gorm:"not null;default:0" json:"valorItemNovo"`

	// Diferença armazenada sempre não negativa; o sentido vem dos
	// snapshots. Quando o item novo é mais caro, a forma de pagamento da
	// diferença é obrigatória.
	DiferencaValor          float64 `gorm:"not null;default:0" json:"diferencaValor"`
	FormaPagamentoDiferenca string  `gorm:"size:50" json:"formaPagamentoDiferenca"`
}

// CalcularDiferenca devolve a diferença absoluta entre os valores e se ela
// exige uma forma de pagamento (item novo mais caro que o original).
func CalcularDiferenca(valorOriginal, valorNovo float64) (diferenca float64, exigePagamento bool) {
	diferenca = math.Round(math.Abs(valorNovo-valorOriginal)*100) / 100
	return diferenca, valorNovo > valorOriginal
}

// TransicaoValida define o fluxo de status:
// Pendente → Aprovada | Rejeitada; Aprovada → Concluida.
func TransicaoValida(de, para string) bool {
	switch de {
	case models.GarantiaPendente:
		return para == models.GarantiaAprovada || para == models.GarantiaRejeitada
	case models.GarantiaAprovada:
		return para == models.GarantiaConcluida
	}
	return false
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Garantia{})
}
