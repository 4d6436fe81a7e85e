package parcela

import (
	"errors"
	"math"
	"time"

	"github.com/atelie-prata/api-revenda/internal/models"
)

var (
	ErrSemVencimentos   = errors.New("cada parcela precisa de uma data de vencimento")
	ErrEntradaInvalida  = errors.New("o valor da entrada deve ser menor que o total")
	ErrTotalInvalido    = errors.New("o total da venda não pode ser negativo")
	ErrQuantidadeParcel = errors.New("a quantidade de parcelas deve ser pelo menos 1")
)

func centavos(v float64) float64 {
	return math.Round(v*100) / 100
}

// Gerar monta o plano de parcelas de uma venda.
//
// Pagamento à vista (n == 1): uma parcela datada de hoje, já paga.
// Parcelado: divisão igual em centavos, com a sobra de arredondamento somada
// à primeira parcela para que a soma feche exatamente no total. Uma entrada
// opcional vira a parcela 1, paga hoje, e o restante é dividido entre as
// demais datas.
func Gerar(vendaID uint, total float64, vencimentos []time.Time, entrada float64, hoje time.Time) ([]*Parcela, error) {
	if total < 0 {
		return nil, ErrTotalInvalido
	}
	n := len(vencimentos)
	if n < 1 {
		return nil, ErrQuantidadeParcel
	}

	if n == 1 {
		return []*Parcela{{
			VendaID:        vendaID,
			Numero:         1,
			Valor:          centavos(total),
			DataVencimento: hoje,
			Status:         models.StatusPago,
			DataPagamento:  &hoje,
		}}, nil
	}

	for _, v := range vencimentos {
		if v.IsZero() {
			return nil, ErrSemVencimentos
		}
	}

	parcelas := make([]*Parcela, 0, n+1)
	restante := total
	numero := 1

	if entrada > 0 {
		if entrada >= total {
			return nil, ErrEntradaInvalida
		}
		parcelas = append(parcelas, &Parcela{
			VendaID:        vendaID,
			Numero:         numero,
			Valor:          centavos(entrada),
			DataVencimento: hoje,
			Status:         models.StatusPago,
			DataPagamento:  &hoje,
		})
		restante = centavos(total - entrada)
		numero++
	}

	base := math.Floor(restante*100/float64(n)) / 100
	primeira := centavos(restante - base*float64(n-1))
	for i, venc := range vencimentos {
		valor := base
		if i == 0 {
			valor = primeira
		}
		parcelas = append(parcelas, &Parcela{
			VendaID:        vendaID,
			Numero:         numero,
			Valor:          valor,
			DataVencimento: venc,
			Status:         models.StatusPendente,
		})
		numero++
	}
	return parcelas, nil
}

// CalcularStatusVenda deriva o status de pagamento da venda a partir das
// suas parcelas: todas pagas = Pago, nenhuma = Pendente, algumas = Parcial.
func CalcularStatusVenda(parcelas []Parcela) string {
	if len(parcelas) == 0 {
		return models.StatusPendente
	}
	pagas := 0
	for _, p := range parcelas {
		if p.Status == models.StatusPago {
			pagas++
		}
	}
	switch pagas {
	case 0:
		return models.StatusPendente
	case len(parcelas):
		return models.StatusPago
	default:
		return models.StatusParcial
	}
}
