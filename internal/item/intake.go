package item

// LinhaIntake é uma linha conferida pelo usuário na tela de entrada em lote
// (manual ou pré-preenchida pelo OCR).
type LinhaIntake struct {
	Categoria  string  `json:"categoria"`
	Descricao  string  `json:"descricao"`
	Valor      float64 `json:"valor"`
	Quantidade int     `json:"quantidade"`
}

// Elegivel informa se a linha pode virar um item: valor e quantidade
// positivos e categoria pertencente ao conjunto conhecido.
func (l LinhaIntake) Elegivel() bool {
	return l.Valor > 0 && l.Quantidade > 0 && CategoriaValida(l.Categoria)
}

// FiltrarElegiveis separa as linhas aceitas das recusadas.
func FiltrarElegiveis(linhas []LinhaIntake) (aceitas, recusadas []LinhaIntake) {
	for _, l := range linhas {
		if l.Elegivel() {
			aceitas = append(aceitas, l)
		} else {
			recusadas = append(recusadas, l)
		}
	}
	return aceitas, recusadas
}

// MontarItens converte linhas elegíveis em itens do pano, com a quantidade
// inicial igual à disponível.
func MontarItens(panoID uint, linhas []LinhaIntake) []*Item {
	itens := make([]*Item, 0, len(linhas))
	for _, l := range linhas {
		itens = append(itens, &Item{
			PanoID:               panoID,
			Categoria:            l.Categoria,
			Descricao:            l.Descricao,
			ValorUnitario:        l.Valor,
			QuantidadeInicial:    l.Quantidade,
			QuantidadeDisponivel: l.Quantidade,
		})
	}
	return itens
}
