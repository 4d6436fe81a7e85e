package relatorio

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linhasExemplo() []LinhaVenda {
	return []LinhaVenda{
		{Data: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Cliente: "Maria Souza", Total: 150.50, Status: "Pago"},
		{Data: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Cliente: "João Lima", Total: 89.90, Status: "Parcial"},
	}
}

func TestEscreverCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EscreverCSV(&buf, linhasExemplo()))

	registros, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 3)

	assert.Equal(t, []string{"Data", "Cliente", "Total", "Status"}, registros[0])
	assert.Equal(t, []string{"2024-03-01", "Maria Souza", "150.50", "Pago"}, registros[1])
	assert.Equal(t, []string{"2024-03-10", "João Lima", "89.90", "Parcial"}, registros[2])
}

func TestEscreverCSVVazio(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EscreverCSV(&buf, nil))

	registros, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 1)
}

func TestGerarXLSX(t *testing.T) {
	arq, err := GerarXLSX(linhasExemplo())
	require.NoError(t, err)
	defer arq.Close()

	assert.Equal(t, []string{"Vendas"}, arq.GetSheetList())

	linhas, err := arq.GetRows("Vendas")
	require.NoError(t, err)
	require.Len(t, linhas, 3)
	assert.Equal(t, []string{"Data", "Cliente", "Total", "Status"}, linhas[0])
	assert.Equal(t, "Maria Souza", linhas[1][1])
	assert.Equal(t, "150.5", linhas[1][2])
	assert.Equal(t, "Parcial", linhas[2][3])
}
