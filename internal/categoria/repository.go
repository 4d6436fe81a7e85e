package categoria

import "gorm.io/gorm"

// Repository encapsula o acesso a dados de categorias.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(c *Categoria) error {
	return r.DB.Create(c).Error
}

// ListarTodas devolve as categorias ordenadas pela ordem de exibição.
func (r *Repository) ListarTodas(somenteAtivas bool) ([]Categoria, error) {
	var list []Categoria
	q := r.DB.Order("ordem ASC, nome ASC")
	if somenteAtivas {
		q = q.Where("ativa = true")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) BuscarPorID(id uint) (*Categoria, error) {
	var c Categoria
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Atualizar(c *Categoria) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Deletar(id uint) error {
	res := r.DB.Delete(&Categoria{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
