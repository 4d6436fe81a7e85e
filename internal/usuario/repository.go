package usuario

import "gorm.io/gorm"

// Repository encapsula o acesso a dados de usuários.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(u *Usuario) error {
	return r.DB.Create(u).Error
}

func (r *Repository) ListarTodos() ([]Usuario, error) {
	var list []Usuario
	err := r.DB.Order("nome ASC").Find(&list).Error
	return list, err
}

func (r *Repository) BuscarPorID(id uint) (*Usuario, error) {
	var u Usuario
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) BuscarPorEmail(email string) (*Usuario, error) {
	var u Usuario
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Atualizar(u *Usuario) error {
	return r.DB.Save(u).Error
}

func (r *Repository) Deletar(id uint) error {
	res := r.DB.Delete(&Usuario{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
