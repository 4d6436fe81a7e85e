package cliente

import (
	"time"

	"gorm.io/gorm"
)

// Cliente representa um comprador cadastrado pela equipe.
type Cliente struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome     string `gorm:"size:150;not null" json:"nome"`
	Telefone string `gorm:"size:30" json:"telefone"`
	Email    string `gorm:"size:150" json:"email"`
	Endereco string `json:"endereco"`
	CPF      string `gorm:"size:20" json:"cpf"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cliente{})
}
