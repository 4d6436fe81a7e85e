package voucher

import (
	"strings"
	"testing"
	"time"

	"github.com/atelie-prata/api-revenda/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoAtivo(disponivel float64) *Voucher {
	return &Voucher{
		Codigo:          NovoCodigo(),
		ValorOriginal:   disponivel,
		ValorDisponivel: disponivel,
		Status:          models.VoucherAtivo,
		DataValidade:    time.Now().Add(30 * 24 * time.Hour),
	}
}

func TestNovoCodigo(t *testing.T) {
	a := NovoCodigo()
	b := NovoCodigo()
	assert.True(t, strings.HasPrefix(a, "VC-"))
	assert.Len(t, a, 11)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, strings.ToUpper(a))
}

func TestAbaterParcial(t *testing.T) {
	v := novoAtivo(100)
	require.NoError(t, v.Abater(40, time.Now()))
	assert.Equal(t, 60.0, v.ValorDisponivel)
	assert.Equal(t, 40.0, v.ValorUtilizado)
	assert.Equal(t, models.VoucherAtivo, v.Status)
}

func TestAbaterTotalMarcaUtilizado(t *testing.T) {
	v := novoAtivo(100)
	require.NoError(t, v.Abater(100, time.Now()))
	assert.Equal(t, 0.0, v.ValorDisponivel)
	assert.Equal(t, models.VoucherUtilizado, v.Status)

	assert.ErrorIs(t, v.Abater(1, time.Now()), ErrVoucherInativo)
}

func TestAbaterErros(t *testing.T) {
	v := novoAtivo(50)

	assert.ErrorIs(t, v.Abater(0, time.Now()), ErrValorInvalido)
	assert.ErrorIs(t, v.Abater(-10, time.Now()), ErrValorInvalido)
	assert.ErrorIs(t, v.Abater(50.01, time.Now()), ErrValorInvalido)

	vencido := novoAtivo(50)
	vencido.DataValidade = time.Now().Add(-time.Hour)
	assert.ErrorIs(t, vencido.Abater(10, time.Now()), ErrVoucherExpirado)

	usado := novoAtivo(50)
	usado.Status = models.VoucherUtilizado
	assert.ErrorIs(t, usado.Abater(10, time.Now()), ErrVoucherInativo)
}

func TestAbaterAposExpiracaoDerivadaNaLeitura(t *testing.T) {
	// O repositório deriva Expirado ao carregar; abater depois disso tem
	// que reportar expiração, não voucher inativo.
	v := novoAtivo(50)
	v.DataValidade = time.Now().Add(-time.Hour)
	v.CalcularExpiracao(time.Now())
	require.Equal(t, models.VoucherExpirado, v.Status)

	assert.ErrorIs(t, v.Abater(10, time.Now()), ErrVoucherExpirado)
}

func TestCalcularExpiracao(t *testing.T) {
	v := novoAtivo(50)
	v.DataValidade = time.Now().Add(-time.Hour)
	v.CalcularExpiracao(time.Now())
	assert.Equal(t, models.VoucherExpirado, v.Status)

	// Voucher já utilizado não muda de status ao vencer.
	u := novoAtivo(50)
	u.Status = models.VoucherUtilizado
	u.DataValidade = time.Now().Add(-time.Hour)
	u.CalcularExpiracao(time.Now())
	assert.Equal(t, models.VoucherUtilizado, u.Status)
}
