package item

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Item representa um tipo de peça vendável dentro de um pano, com preço
// próprio e contagem disponível.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PanoID               uint    `gorm:"not null;index" json:"panoId"`
	Categoria            string  `gorm:"size:50;not null" json:"categoria"`
	Descricao            string  `json:"descricao"`
	ValorUnitario        float64 `gorm:"not null;default:0" json:"valorUnitario"`
	QuantidadeInicial    int     `gorm:"not null;default:0" json:"quantidadeInicial"`
	QuantidadeDisponivel int     `gorm:"not null;default:0" json:"quantidadeDisponivel"`
}

// Categorias é o conjunto fechado de categorias de peças.
// "outro" é a válvula de escape para tipos não listados.
var Categorias = []string{
	"argola",
	"infantil",
	"pulseira",
	"colar",
	"brinco",
	"anel",
	"tornozeleira",
	"pingente",
	"conjunto",
	"outro",
}

// CategoriaValida informa se a categoria pertence ao conjunto fechado.
func CategoriaValida(c string) bool {
	for _, v := range Categorias {
		if v == c {
			return true
		}
	}
	return false
}

// NormalizarCategoria mapeia o texto livre vindo do OCR para uma categoria
// conhecida por correspondência de substring. O resultado sempre passa pela
// tela de conferência antes de virar registro.
func NormalizarCategoria(texto string) string {
	t := strings.ToLower(strings.TrimSpace(texto))
	if t == "" {
		return "outro"
	}
	for _, c := range Categorias {
		if c == "outro" {
			continue
		}
		if strings.Contains(t, c) || strings.Contains(c, t) {
			return c
		}
	}
	return "outro"
}

func (Item) TableName() string {
	return "itens"
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Item{})
}
