package relatorio

import (
	"encoding/json"
	"net/http"
	"time"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

func parseFiltro(r *http.Request) (FiltroVendas, error) {
	var f FiltroVendas
	f.Status = r.URL.Query().Get("status")
	if s := r.URL.Query().Get("inicio"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		f.Inicio = &t
	}
	if s := r.URL.Query().Get("fim"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, err
		}
		// inclui o dia inteiro
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.Fim = &t
	}
	return f, nil
}

// VendasCSV trata GET /relatorios/vendas.csv?inicio=&fim=&status=
func (h *Handler) VendasCSV(w http.ResponseWriter, r *http.Request) {
	f, err := parseFiltro(r)
	if err != nil {
		http.Error(w, "Período inválido. Use o formato AAAA-MM-DD.", http.StatusBadRequest)
		return
	}
	linhas, err := h.Repo.ListarVendas(f)
	if err != nil {
		http.Error(w, "Erro ao montar relatório", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="vendas.csv"`)
	if err := EscreverCSV(w, linhas); err != nil {
		http.Error(w, "Erro ao gravar CSV", http.StatusInternalServerError)
	}
}

// VendasXLSX trata GET /relatorios/vendas.xlsx?inicio=&fim=&status=
func (h *Handler) VendasXLSX(w http.ResponseWriter, r *http.Request) {
	f, err := parseFiltro(r)
	if err != nil {
		http.Error(w, "Período inválido. Use o formato AAAA-MM-DD.", http.StatusBadRequest)
		return
	}
	linhas, err := h.Repo.ListarVendas(f)
	if err != nil {
		http.Error(w, "Erro ao montar relatório", http.StatusInternalServerError)
		return
	}
	arq, err := GerarXLSX(linhas)
	if err != nil {
		http.Error(w, "Erro ao gerar planilha", http.StatusInternalServerError)
		return
	}
	defer arq.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="vendas.xlsx"`)
	if err := arq.Write(w); err != nil {
		http.Error(w, "Erro ao gravar planilha", http.StatusInternalServerError)
	}
}

// Catalogo trata GET /relatorios/catalogo
func (h *Handler) Catalogo(w http.ResponseWriter, r *http.Request) {
	grupos, err := h.Repo.Catalogo()
	if err != nil {
		http.Error(w, "Erro ao montar catálogo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(grupos)
}

// Resumo trata GET /dashboard/resumo
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	resumo, err := h.Repo.MontarResumo(time.Now())
	if err != nil {
		http.Error(w, "Erro ao montar resumo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resumo)
}
