package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizarCategoria(t *testing.T) {
	casos := []struct {
		texto    string
		esperado string
	}{
		{"brinco", "brinco"},
		{"  Brinco  ", "brinco"},
		{"PULSEIRA", "pulseira"},
		{"brinco argola prata", "argola"},
		{"colarzinho", "colar"},
		{"pulseir", "pulseira"},
		{"corrente", "outro"},
		{"", "outro"},
		{"xyz", "outro"},
	}
	for _, c := range casos {
		t.Run(c.texto, func(t *testing.T) {
			assert.Equal(t, c.esperado, NormalizarCategoria(c.texto))
		})
	}
}

func TestCategoriaValida(t *testing.T) {
	assert.True(t, CategoriaValida("anel"))
	assert.True(t, CategoriaValida("outro"))
	assert.False(t, CategoriaValida("Anel"))
	assert.False(t, CategoriaValida("corrente"))
	assert.False(t, CategoriaValida(""))
}

func TestFiltrarElegiveis(t *testing.T) {
	linhas := []LinhaIntake{
		{Categoria: "brinco", Valor: 25, Quantidade: 3},
		{Categoria: "corrente", Valor: 25, Quantidade: 3}, // categoria desconhecida
		{Categoria: "anel", Valor: 0, Quantidade: 3},      // sem valor
		{Categoria: "colar", Valor: 40, Quantidade: 0},    // sem quantidade
		{Categoria: "pulseira", Valor: 18.50, Quantidade: 1},
	}
	aceitas, recusadas := FiltrarElegiveis(linhas)
	require.Len(t, aceitas, 2)
	assert.Equal(t, "brinco", aceitas[0].Categoria)
	assert.Equal(t, "pulseira", aceitas[1].Categoria)
	assert.Len(t, recusadas, 3)
}

func TestMontarItens(t *testing.T) {
	itens := MontarItens(9, []LinhaIntake{
		{Categoria: "brinco", Descricao: "par pequeno", Valor: 25, Quantidade: 3},
	})
	require.Len(t, itens, 1)

	i := itens[0]
	assert.Equal(t, uint(9), i.PanoID)
	assert.Equal(t, "brinco", i.Categoria)
	assert.Equal(t, 25.0, i.ValorUnitario)
	assert.Equal(t, 3, i.QuantidadeInicial)
	assert.Equal(t, 3, i.QuantidadeDisponivel)
}
