package cliente

import "gorm.io/gorm"

// Repository encapsula o acesso a dados de clientes.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Salvar(c *Cliente) error {
	return r.DB.Create(c).Error
}

// ListarTodos devolve os clientes em ordem alfabética. O filtro `busca`
// aplica ILIKE sobre nome e telefone.
func (r *Repository) ListarTodos(busca string) ([]Cliente, error) {
	var list []Cliente
	q := r.DB.Order("nome ASC")
	if busca != "" {
		q = q.Where("nome ILIKE ? OR telefone ILIKE ?", "%"+busca+"%", "%"+busca+"%")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) BuscarPorID(id uint) (*Cliente, error) {
	var c Cliente
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Atualizar(c *Cliente) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Deletar(id uint) error {
	res := r.DB.Delete(&Cliente{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TemVendas informa se o cliente é referenciado por alguma venda.
// A exclusão é bloqueada nesse caso.
func (r *Repository) TemVendas(id uint) (bool, error) {
	var count int64
	err := r.DB.Table("vendas").
		Where("cliente_id = ? AND deleted_at IS NULL", id).
		Count(&count).Error
	return count > 0, err
}
