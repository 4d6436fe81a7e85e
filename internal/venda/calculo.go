package venda

import (
	"errors"
	"fmt"
	"math"

	"github.com/atelie-prata/api-revenda/internal/models"
)

func centavos(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalcularDesconto aplica o desconto sobre o subtotal.
// Percentual: subtotal × pct/100. Fixo: limitado ao subtotal, para que o
// total nunca fique negativo. Tipo vazio ou desconhecido = sem desconto.
func CalcularDesconto(subtotal float64, tipo string, valor float64) float64 {
	if valor <= 0 || subtotal <= 0 {
		return 0
	}
	switch tipo {
	case models.DescontoPercentual:
		return centavos(subtotal * valor / 100)
	case models.DescontoFixo:
		return centavos(math.Min(valor, subtotal))
	}
	return 0
}

/* ===================== Reconciliação de edição ===================== */

// EdicaoItem é uma linha da venda como veio da tela de edição.
type EdicaoItem struct {
	ItemVendaID uint   `json:"itemVendaId"`
	Quantidade  int    `json:"quantidade"`
	Descricao   string `json:"descricao"`
	Removido    bool   `json:"removido"`
}

// AjusteEstoque descreve o efeito de uma edição sobre o estoque de um item:
// delta positivo devolve unidades ao pano, negativo retira mais.
type AjusteEstoque struct {
	ItemID uint
	Delta  int
}

// PlanoEdicao é o resultado do diff entre as linhas persistidas e a edição.
type PlanoEdicao struct {
	Remover   []ItemVenda
	Atualizar []ItemVenda
	Ajustes   []AjusteEstoque
	Subtotal  float64
}

var ErrLinhaDesconhecida = errors.New("linha de venda desconhecida")

// PlanejarEdicao compara as linhas atuais da venda (recém-carregadas do
// banco) com a edição enviada e produz o plano de mutações: linhas a
// remover, linhas a atualizar e os ajustes de estoque correspondentes.
// Linhas não mencionadas na edição permanecem como estão, mas entram no
// subtotal recalculado.
func PlanejarEdicao(atuais []ItemVenda, edicao []EdicaoItem) (PlanoEdicao, error) {
	var plano PlanoEdicao

	porID := make(map[uint]ItemVenda, len(atuais))
	for _, l := range atuais {
		porID[l.ID] = l
	}
	tocadas := make(map[uint]bool, len(edicao))

	for _, e := range edicao {
		linha, ok := porID[e.ItemVendaID]
		if !ok {
			return PlanoEdicao{}, fmt.Errorf("%w: id %d", ErrLinhaDesconhecida, e.ItemVendaID)
		}
		tocadas[e.ItemVendaID] = true

		if e.Removido {
			if linha.ItemID != nil {
				plano.Ajustes = append(plano.Ajustes, AjusteEstoque{ItemID: *linha.ItemID, Delta: linha.Quantidade})
			}
			plano.Remover = append(plano.Remover, linha)
			continue
		}

		if e.Quantidade <= 0 {
			return PlanoEdicao{}, fmt.Errorf("quantidade inválida na linha %d", e.ItemVendaID)
		}

		if delta := linha.Quantidade - e.Quantidade; delta != 0 && linha.ItemID != nil {
			plano.Ajustes = append(plano.Ajustes, AjusteEstoque{ItemID: *linha.ItemID, Delta: delta})
		}

		linha.Quantidade = e.Quantidade
		if e.Descricao != "" {
			linha.Descricao = e.Descricao
		}
		linha.ValorTotal = centavos(float64(e.Quantidade) * linha.ValorUnitario)
		plano.Atualizar = append(plano.Atualizar, linha)
		plano.Subtotal += linha.ValorTotal
	}

	// Linhas não tocadas continuam valendo no subtotal.
	for _, l := range atuais {
		if !tocadas[l.ID] {
			plano.Subtotal += l.ValorTotal
		}
	}
	plano.Subtotal = centavos(plano.Subtotal)
	return plano, nil
}
