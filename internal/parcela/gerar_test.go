package parcela

import (
	"testing"
	"time"

	"github.com/atelie-prata/api-revenda/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hoje() time.Time {
	return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
}

func vencimentosMensais(n int) []time.Time {
	vs := make([]time.Time, n)
	for i := range vs {
		vs[i] = hoje().AddDate(0, i+1, 0)
	}
	return vs
}

func somar(parcelas []*Parcela) float64 {
	var total float64
	for _, p := range parcelas {
		total += p.Valor
	}
	return total
}

func TestGerarAVista(t *testing.T) {
	parcelas, err := Gerar(1, 150.50, vencimentosMensais(1), 0, hoje())
	require.NoError(t, err)
	require.Len(t, parcelas, 1)

	p := parcelas[0]
	assert.Equal(t, 1, p.Numero)
	assert.Equal(t, 150.50, p.Valor)
	assert.Equal(t, models.StatusPago, p.Status)
	require.NotNil(t, p.DataPagamento)
	assert.Equal(t, hoje(), p.DataVencimento)
}

func TestGerarSomaFechaNoTotal(t *testing.T) {
	casos := []struct {
		nome  string
		total float64
		n     int
	}{
		{"divisão exata", 300, 3},
		{"sobra de um centavo", 100, 3},
		{"sobra de centavos", 99.99, 7},
		{"valor quebrado", 123.45, 6},
		{"muitas parcelas", 1000.01, 12},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			parcelas, err := Gerar(1, c.total, vencimentosMensais(c.n), 0, hoje())
			require.NoError(t, err)
			require.Len(t, parcelas, c.n)
			assert.InDelta(t, c.total, somar(parcelas), 0.001)

			// A sobra de arredondamento vai para a primeira parcela.
			for i := 1; i < c.n; i++ {
				assert.Equal(t, parcelas[1].Valor, parcelas[i].Valor)
			}
		})
	}
}

func TestGerarComEntrada(t *testing.T) {
	parcelas, err := Gerar(7, 500, vencimentosMensais(4), 100, hoje())
	require.NoError(t, err)
	require.Len(t, parcelas, 5)

	entrada := parcelas[0]
	assert.Equal(t, 1, entrada.Numero)
	assert.Equal(t, 100.0, entrada.Valor)
	assert.Equal(t, models.StatusPago, entrada.Status)
	require.NotNil(t, entrada.DataPagamento)

	for i, p := range parcelas[1:] {
		assert.Equal(t, i+2, p.Numero)
		assert.Equal(t, models.StatusPendente, p.Status)
		assert.Equal(t, 100.0, p.Valor)
	}
	assert.InDelta(t, 500, somar(parcelas), 0.001)
}

func TestGerarErros(t *testing.T) {
	_, err := Gerar(1, -10, vencimentosMensais(2), 0, hoje())
	assert.ErrorIs(t, err, ErrTotalInvalido)

	_, err = Gerar(1, 100, nil, 0, hoje())
	assert.ErrorIs(t, err, ErrQuantidadeParcel)

	_, err = Gerar(1, 100, []time.Time{hoje().AddDate(0, 1, 0), {}}, 0, hoje())
	assert.ErrorIs(t, err, ErrSemVencimentos)

	_, err = Gerar(1, 100, vencimentosMensais(3), 100, hoje())
	assert.ErrorIs(t, err, ErrEntradaInvalida)

	_, err = Gerar(1, 100, vencimentosMensais(3), 150, hoje())
	assert.ErrorIs(t, err, ErrEntradaInvalida)
}

func TestCalcularStatusVenda(t *testing.T) {
	paga := Parcela{Status: models.StatusPago}
	pendente := Parcela{Status: models.StatusPendente}

	casos := []struct {
		nome     string
		parcelas []Parcela
		esperado string
	}{
		{"sem parcelas", nil, models.StatusPendente},
		{"todas pagas", []Parcela{paga, paga}, models.StatusPago},
		{"nenhuma paga", []Parcela{pendente, pendente}, models.StatusPendente},
		{"algumas pagas", []Parcela{paga, pendente, pendente}, models.StatusParcial},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.esperado, CalcularStatusVenda(c.parcelas))
		})
	}
}

func TestCalcularAtraso(t *testing.T) {
	ontem := hoje().AddDate(0, 0, -1)
	amanha := hoje().AddDate(0, 0, 1)

	p := Parcela{Status: models.StatusPendente, DataVencimento: ontem}
	p.CalcularAtraso(hoje())
	assert.True(t, p.Atrasada)

	p = Parcela{Status: models.StatusPendente, DataVencimento: amanha}
	p.CalcularAtraso(hoje())
	assert.False(t, p.Atrasada)

	// Parcela paga nunca conta como atrasada.
	p = Parcela{Status: models.StatusPago, DataVencimento: ontem}
	p.CalcularAtraso(hoje())
	assert.False(t, p.Atrasada)
}
