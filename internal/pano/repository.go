package pano

import (
	"time"

	"github.com/atelie-prata/api-revenda/internal/models"
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de panos.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Salvar(p *Pano) error {
	return r.DB.Create(p).Error
}

// ListarTodos devolve os panos com itens pré-carregados, mais recentes
// primeiro. O filtro `status` aceita Ativo ou Devolvido.
func (r *Repository) ListarTodos(status string) ([]Pano, error) {
	var list []Pano
	q := r.DB.Preload("Itens").Order("data_retirada DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	hoje := time.Now()
	for i := range list {
		list[i].CalcularAtraso(hoje)
	}
	return list, nil
}

func (r *Repository) BuscarPorID(id uint) (*Pano, error) {
	var p Pano
	if err := r.DB.Preload("Itens").First(&p, id).Error; err != nil {
		return nil, err
	}
	p.CalcularAtraso(time.Now())
	return &p, nil
}

func (r *Repository) Atualizar(p *Pano) error {
	return r.DB.Save(p).Error
}

func (r *Repository) Deletar(id uint) error {
	res := r.DB.Delete(&Pano{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Devolver transiciona o pano de Ativo para Devolvido.
func (r *Repository) Devolver(id uint) error {
	res := r.DB.Model(&Pano{}).
		Where("id = ? AND status = ?", id, models.PanoAtivo).
		Update("status", models.PanoDevolvido)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
