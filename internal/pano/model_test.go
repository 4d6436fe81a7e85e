package pano

import (
	"testing"
	"time"

	"github.com/atelie-prata/api-revenda/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCalcularAtraso(t *testing.T) {
	hoje := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	casos := []struct {
		nome      string
		status    string
		devolucao time.Time
		esperado  bool
	}{
		{"ativo vencido", models.PanoAtivo, hoje.AddDate(0, 0, -1), true},
		{"ativo vence hoje", models.PanoAtivo, hoje.Truncate(24 * time.Hour), false},
		{"ativo vence amanhã", models.PanoAtivo, hoje.AddDate(0, 0, 1), false},
		{"devolvido vencido", models.PanoDevolvido, hoje.AddDate(0, 0, -30), false},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			p := Pano{Status: c.status, DataDevolucao: c.devolucao}
			p.CalcularAtraso(hoje)
			assert.Equal(t, c.esperado, p.EmAtraso)
		})
	}
}
