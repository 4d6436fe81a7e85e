package usuario

import (
	"time"

	"gorm.io/gorm"
)

// Usuario representa um membro da equipe com acesso ao sistema.
type Usuario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome  string `gorm:"size:150;not null" json:"nome"`
	Email string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Senha string `gorm:"size:255;not null" json:"-"`
	Admin bool   `gorm:"not null;default:false" json:"admin"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
