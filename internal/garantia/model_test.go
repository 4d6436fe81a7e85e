package garantia

import (
	"testing"

	"github.com/atelie-prata/api-revenda/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCalcularDiferenca(t *testing.T) {
	casos := []struct {
		nome           string
		original       float64
		novo           float64
		diferenca      float64
		exigePagamento bool
	}{
		{"item novo mais caro", 80, 95, 15, true},
		{"item novo mais barato", 95, 80, 15, false},
		{"valores iguais", 50, 50, 0, false},
		{"devolução sem item novo", 60, 0, 60, false},
		{"centavos", 19.90, 24.85, 4.95, true},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			diferenca, exige := CalcularDiferenca(c.original, c.novo)
			assert.Equal(t, c.diferenca, diferenca)
			assert.Equal(t, c.exigePagamento, exige)
		})
	}
}

func TestTransicaoValida(t *testing.T) {
	casos := []struct {
		de, para string
		ok       bool
	}{
		{models.GarantiaPendente, models.GarantiaAprovada, true},
		{models.GarantiaPendente, models.GarantiaRejeitada, true},
		{models.GarantiaAprovada, models.GarantiaConcluida, true},
		{models.GarantiaPendente, models.GarantiaConcluida, false},
		{models.GarantiaAprovada, models.GarantiaRejeitada, false},
		{models.GarantiaConcluida, models.GarantiaAprovada, false},
		{models.GarantiaRejeitada, models.GarantiaAprovada, false},
		{models.GarantiaConcluida, models.GarantiaConcluida, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.ok, TransicaoValida(c.de, c.para), "%s -> %s", c.de, c.para)
	}
}
