package categoria

import (
	"time"

	"gorm.io/gorm"
)

// Categoria organiza os itens do catálogo. Categorias com UsuarioID nulo
// são do sistema e não podem ser excluídas.
type Categoria struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Nome      string `gorm:"size:100;not null" json:"nome"`
	Cor       string `gorm:"size:20" json:"cor"`
	Ordem     int    `gorm:"not null;default:0" json:"ordem"`
	Ativa     bool   `gorm:"not null;default:true" json:"ativa"`
	UsuarioID *uint  `gorm:"index" json:"usuarioId,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Categoria{})
}
