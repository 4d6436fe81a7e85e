package venda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcularDesconto(t *testing.T) {
	casos := []struct {
		nome     string
		subtotal float64
		tipo     string
		valor    float64
		esperado float64
	}{
		{"percentual simples", 200, "percentual", 10, 20},
		{"percentual com centavos", 99.90, "percentual", 15, 14.99},
		{"fixo dentro do subtotal", 150, "fixo", 30, 30},
		{"fixo maior que o subtotal", 50, "fixo", 80, 50},
		{"tipo vazio", 100, "", 10, 0},
		{"tipo desconhecido", 100, "cupom", 10, 0},
		{"valor zero", 100, "percentual", 0, 0},
		{"subtotal zero", 0, "fixo", 10, 0},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.esperado, CalcularDesconto(c.subtotal, c.tipo, c.valor))
		})
	}
}

func ptr(v uint) *uint { return &v }

func linha(id uint, itemID *uint, qtd int, unitario float64) ItemVenda {
	return ItemVenda{
		ID:            id,
		ItemID:        itemID,
		Quantidade:    qtd,
		ValorUnitario: unitario,
		ValorTotal:    float64(qtd) * unitario,
	}
}

func TestPlanejarEdicaoRemocaoDevolveEstoque(t *testing.T) {
	atuais := []ItemVenda{
		linha(1, ptr(10), 2, 25),
		linha(2, ptr(11), 1, 40),
	}
	plano, err := PlanejarEdicao(atuais, []EdicaoItem{
		{ItemVendaID: 1, Removido: true},
	})
	require.NoError(t, err)

	require.Len(t, plano.Remover, 1)
	assert.Equal(t, uint(1), plano.Remover[0].ID)
	require.Len(t, plano.Ajustes, 1)
	assert.Equal(t, AjusteEstoque{ItemID: 10, Delta: 2}, plano.Ajustes[0])
	// A linha não tocada continua no subtotal.
	assert.Equal(t, 40.0, plano.Subtotal)
}

func TestPlanejarEdicaoMudancaDeQuantidade(t *testing.T) {
	atuais := []ItemVenda{linha(1, ptr(10), 2, 25)}

	t.Run("reduzir devolve unidades", func(t *testing.T) {
		plano, err := PlanejarEdicao(atuais, []EdicaoItem{{ItemVendaID: 1, Quantidade: 1}})
		require.NoError(t, err)
		require.Len(t, plano.Ajustes, 1)
		assert.Equal(t, AjusteEstoque{ItemID: 10, Delta: 1}, plano.Ajustes[0])
		require.Len(t, plano.Atualizar, 1)
		assert.Equal(t, 25.0, plano.Atualizar[0].ValorTotal)
		assert.Equal(t, 25.0, plano.Subtotal)
	})

	t.Run("aumentar retira mais", func(t *testing.T) {
		plano, err := PlanejarEdicao(atuais, []EdicaoItem{{ItemVendaID: 1, Quantidade: 5}})
		require.NoError(t, err)
		require.Len(t, plano.Ajustes, 1)
		assert.Equal(t, AjusteEstoque{ItemID: 10, Delta: -3}, plano.Ajustes[0])
		assert.Equal(t, 125.0, plano.Subtotal)
	})

	t.Run("mesma quantidade não gera ajuste", func(t *testing.T) {
		plano, err := PlanejarEdicao(atuais, []EdicaoItem{{ItemVendaID: 1, Quantidade: 2}})
		require.NoError(t, err)
		assert.Empty(t, plano.Ajustes)
	})
}

func TestPlanejarEdicaoLinhaSemItem(t *testing.T) {
	// Linha cujo item de origem foi apagado: não há estoque a ajustar.
	atuais := []ItemVenda{linha(1, nil, 2, 25)}
	plano, err := PlanejarEdicao(atuais, []EdicaoItem{{ItemVendaID: 1, Removido: true}})
	require.NoError(t, err)
	assert.Empty(t, plano.Ajustes)
	require.Len(t, plano.Remover, 1)
}

func TestPlanejarEdicaoErros(t *testing.T) {
	atuais := []ItemVenda{linha(1, ptr(10), 2, 25)}

	_, err := PlanejarEdicao(atuais, []EdicaoItem{{ItemVendaID: 99, Quantidade: 1}})
	assert.ErrorIs(t, err, ErrLinhaDesconhecida)

	_, err = PlanejarEdicao(atuais, []EdicaoItem{{ItemVendaID: 1, Quantidade: 0}})
	assert.Error(t, err)

	_, err = PlanejarEdicao(atuais, []EdicaoItem{{ItemVendaID: 1, Quantidade: -3}})
	assert.Error(t, err)
}
