package voucher

import (
	"errors"
	"strings"
	"time"

	"github.com/atelie-prata/api-revenda/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Voucher é um crédito em loja emitido para um cliente, normalmente a
// partir de uma devolução concluída.
type Voucher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ClienteID       uint      `gorm:"not null;index" json:"clienteId"`
	Codigo          string    `gorm:"size:20;uniqueIndex;not null" json:"codigo"`
	ValorOriginal   float64   `gorm:"not null" json:"valorOriginal"`
	ValorDisponivel float64   `gorm:"not null" json:"valorDisponivel"`
	ValorUtilizado  float64   `gorm:"not null;default:0" json:"valorUtilizado"`
	Status          string    `gorm:"size:50;not null;default:'Ativo';index" json:"status"`
	DataValidade    time.Time `gorm:"not null" json:"dataValidade"`
	GarantiaID      *uint     `gorm:"index" json:"garantiaId,omitempty"`
}

var (
	ErrVoucherInativo  = errors.New("voucher não está ativo")
	ErrVoucherExpirado = errors.New("voucher expirado")
	ErrValorInvalido   = errors.New("valor deve ser positivo e não exceder o disponível")
)

// NovoCodigo gera um código curto e único para impressão no comprovante.
func NovoCodigo() string {
	return "VC-" + strings.ToUpper(uuid.NewString()[:8])
}

// Abater consome parte do crédito. Zera o status para Utilizado quando o
// disponível chega a zero.
func (v *Voucher) Abater(valor float64, hoje time.Time) error {
	// A expiração pode já ter sido derivada na leitura; nos dois casos o
	// chamador recebe o mesmo erro.
	if v.Status == models.VoucherExpirado {
		return ErrVoucherExpirado
	}
	if v.Status != models.VoucherAtivo {
		return ErrVoucherInativo
	}
	if hoje.After(v.DataValidade) {
		return ErrVoucherExpirado
	}
	if valor <= 0 || valor > v.ValorDisponivel {
		return ErrValorInvalido
	}
	v.ValorDisponivel -= valor
	v.ValorUtilizado += valor
	if v.ValorDisponivel <= 0 {
		v.Status = models.VoucherUtilizado
	}
	return nil
}

// CalcularExpiracao marca como Expirado um voucher ativo vencido.
// Derivação de leitura; a linha só é regravada na próxima mutação.
func (v *Voucher) CalcularExpiracao(hoje time.Time) {
	if v.Status == models.VoucherAtivo && hoje.After(v.DataValidade) {
		v.Status = models.VoucherExpirado
	}
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Voucher{})
}
