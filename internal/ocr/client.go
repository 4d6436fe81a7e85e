package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Candidato é um item sugerido pelo serviço de OCR a partir da foto do pano.
// Os valores vêm de um classificador externo e devem ser conferidos por um
// humano antes de qualquer gravação.
type Candidato struct {
	Categoria  string  `json:"categoria"`
	Valor      float64 `json:"valor"`
	Quantidade int     `json:"quantidade"`
}

type respostaOCR struct {
	Success bool        `json:"success"`
	Items   []Candidato `json:"items"`
	Error   string      `json:"error"`
	RawText string      `json:"rawText"`
}

// ErrNenhumItem indica que o serviço respondeu com sucesso mas não reconheceu
// nenhum item na imagem.
var ErrNenhumItem = errors.New("nenhum item foi reconhecido na imagem")

// Client fala com o serviço externo de OCR.
type Client struct {
	URL   string
	Token string
	HTTP  *http.Client
}

func NewClient(url, token string) *Client {
	return &Client{
		URL:   url,
		Token: token,
		HTTP:  &http.Client{Timeout: 60 * time.Second},
	}
}

// ExtrairItens envia a imagem e devolve os candidatos e o texto bruto
// reconhecido. Falhas de transporte, resposta malformada, success=false e
// lista vazia são todas devolvidas como erro com mensagem legível.
func (c *Client) ExtrairItens(ctx context.Context, imagem []byte) ([]Candidato, string, error) {
	payload := map[string]string{
		"imagem": base64.StdEncoding.EncodeToString(imagem),
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(body))
	if err != nil {
		return nil, "", fmt.Errorf("erro ao montar requisição de OCR: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao chamar serviço de OCR: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("serviço de OCR respondeu com status %d", resp.StatusCode)
	}

	var out respostaOCR
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("resposta de OCR inválida: %w", err)
	}
	if !out.Success {
		if out.Error == "" {
			out.Error = "falha não especificada"
		}
		return nil, out.RawText, fmt.Errorf("OCR falhou: %s", out.Error)
	}
	if len(out.Items) == 0 {
		return nil, out.RawText, ErrNenhumItem
	}
	return out.Items, out.RawText, nil
}
