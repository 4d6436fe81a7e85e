package item

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/atelie-prata/api-revenda/internal/ocr"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler gerencia rotas de itens de um pano, incluindo a entrada em lote
// assistida por OCR.
type Handler struct {
	Repo *Repository
	OCR  *ocr.Client
}

func NewHandler(repo *Repository, ocrClient *ocr.Client) *Handler {
	return &Handler{Repo: repo, OCR: ocrClient}
}

type itemDTO struct {
	Categoria            string  `json:"categoria"`
	Descricao            string  `json:"descricao"`
	ValorUnitario        float64 `json:"valorUnitario"`
	QuantidadeInicial    int     `json:"quantidadeInicial"`
	QuantidadeDisponivel *int    `json:"quantidadeDisponivel"`
}

// Criar trata POST /panos/{id}/itens (cadastro manual de um item).
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	panoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do pano inválido", http.StatusBadRequest)
		return
	}

	var dto itemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if !CategoriaValida(dto.Categoria) {
		http.Error(w, "Categoria inválida", http.StatusBadRequest)
		return
	}
	if dto.ValorUnitario < 0 || dto.QuantidadeInicial <= 0 {
		http.Error(w, "Valor e quantidade devem ser positivos", http.StatusBadRequest)
		return
	}

	i := Item{
		PanoID:               uint(panoID),
		Categoria:            dto.Categoria,
		Descricao:            dto.Descricao,
		ValorUnitario:        dto.ValorUnitario,
		QuantidadeInicial:    dto.QuantidadeInicial,
		QuantidadeDisponivel: dto.QuantidadeInicial,
	}
	if err := h.Repo.Criar(&i); err != nil {
		http.Error(w, "Erro ao criar item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(i)
}

// Listar trata GET /panos/{id}/itens
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	panoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do pano inválido", http.StatusBadRequest)
		return
	}
	itens, err := h.Repo.ListarPorPano(uint(panoID))
	if err != nil {
		http.Error(w, "Erro ao listar itens", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(itens)
}

// Atualizar trata PUT /itens/{id}.
// A quantidade disponível só é aceita dentro de [0, quantidade inicial].
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	i, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Item não encontrado", http.StatusNotFound)
		return
	}

	var dto itemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.Categoria != "" {
		if !CategoriaValida(dto.Categoria) {
			http.Error(w, "Categoria inválida", http.StatusBadRequest)
			return
		}
		i.Categoria = dto.Categoria
	}
	i.Descricao = dto.Descricao
	if dto.ValorUnitario >= 0 {
		i.ValorUnitario = dto.ValorUnitario
	}
	if dto.QuantidadeInicial > 0 {
		i.QuantidadeInicial = dto.QuantidadeInicial
		// Reduzir a quantidade inicial não pode deixar o disponível acima dela.
		if i.QuantidadeDisponivel > i.QuantidadeInicial {
			i.QuantidadeDisponivel = i.QuantidadeInicial
		}
	}
	if dto.QuantidadeDisponivel != nil {
		q := *dto.QuantidadeDisponivel
		if q < 0 || q > i.QuantidadeInicial {
			http.Error(w, "Quantidade disponível fora do intervalo permitido", http.StatusBadRequest)
			return
		}
		i.QuantidadeDisponivel = q
	}

	if err := h.Repo.Atualizar(i); err != nil {
		http.Error(w, "Erro ao atualizar item", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(i)
}

// Deletar trata DELETE /itens/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repo.Deletar(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Item não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao excluir item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ======================= Entrada em lote via OCR ======================= */

type ocrRequestDTO struct {
	Imagem string `json:"imagem"` // base64
}

type ocrPreviewDTO struct {
	Itens   []LinhaIntake `json:"itens"`
	RawText string        `json:"rawText,omitempty"`
}

// ProcessarImagem trata POST /panos/{id}/itens/ocr. Envia a foto ao serviço
// de OCR e devolve candidatos para conferência humana. Nada é gravado aqui;
// falhas do OCR não impedem o cadastro manual.
func (h *Handler) ProcessarImagem(w http.ResponseWriter, r *http.Request) {
	if h.OCR == nil || h.OCR.URL == "" {
		http.Error(w, "Serviço de OCR não configurado", http.StatusServiceUnavailable)
		return
	}

	var dto ocrRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Imagem == "" {
		http.Error(w, "JSON inválido ou imagem ausente", http.StatusBadRequest)
		return
	}
	imagem, err := base64.StdEncoding.DecodeString(dto.Imagem)
	if err != nil {
		http.Error(w, "Imagem em base64 inválida", http.StatusBadRequest)
		return
	}

	candidatos, rawText, err := h.OCR.ExtrairItens(r.Context(), imagem)
	if err != nil {
		slog.Warn("falha no OCR", "erro", err)
		if errors.Is(err, ocr.ErrNenhumItem) {
			http.Error(w, "Nenhum item foi reconhecido na imagem. Cadastre os itens manualmente.", http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "Não foi possível processar a imagem: "+err.Error(), http.StatusBadGateway)
		return
	}

	preview := ocrPreviewDTO{RawText: rawText}
	for _, c := range candidatos {
		preview.Itens = append(preview.Itens, LinhaIntake{
			Categoria:  NormalizarCategoria(c.Categoria),
			Valor:      c.Valor,
			Quantidade: c.Quantidade,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(preview)
}

// CriarEmLote trata POST /panos/{id}/itens/lote. Recebe as linhas já
// conferidas pelo usuário e grava apenas as elegíveis.
func (h *Handler) CriarEmLote(w http.ResponseWriter, r *http.Request) {
	panoID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do pano inválido", http.StatusBadRequest)
		return
	}

	var linhas []LinhaIntake
	if err := json.NewDecoder(r.Body).Decode(&linhas); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	aceitas, recusadas := FiltrarElegiveis(linhas)
	if len(aceitas) == 0 {
		http.Error(w, "Nenhuma linha elegível: informe categoria, valor e quantidade positivos", http.StatusBadRequest)
		return
	}

	itens := MontarItens(uint(panoID), aceitas)
	if err := h.Repo.CriarEmLote(itens); err != nil {
		http.Error(w, "Erro ao gravar itens", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"criados":   itens,
		"recusadas": len(recusadas),
	})
}
