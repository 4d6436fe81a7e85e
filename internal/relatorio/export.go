package relatorio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var cabecalhoVendas = []string{"Data", "Cliente", "Total", "Status"}

// EscreverCSV grava o relatório de vendas em CSV com cabeçalho fixo.
func EscreverCSV(w io.Writer, linhas []LinhaVenda) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cabecalhoVendas); err != nil {
		return err
	}
	for _, l := range linhas {
		registro := []string{
			l.Data.Format("2006-01-02"),
			l.Cliente,
			fmt.Sprintf("%.2f", l.Total),
			l.Status,
		}
		if err := cw.Write(registro); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// GerarXLSX monta a planilha de vendas. O chamador é responsável por
// fechar o arquivo retornado.
func GerarXLSX(linhas []LinhaVenda) (*excelize.File, error) {
	f := excelize.NewFile()
	const aba = "Vendas"
	idx, err := f.NewSheet(aba)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, titulo := range cabecalhoVendas {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(aba, cell, titulo); err != nil {
			return nil, err
		}
	}

	for i, l := range linhas {
		linha := i + 2
		valores := []interface{}{
			l.Data.Format("2006-01-02"),
			l.Cliente,
			l.Total,
			l.Status,
		}
		for col, v := range valores {
			cell, err := excelize.CoordinatesToCellName(col+1, linha)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(aba, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
