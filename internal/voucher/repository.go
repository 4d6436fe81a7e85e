package voucher

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de vouchers.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Criar grava um voucher novo. Se db == nil, usa o r.DB.
// Permite usar dentro de transação (emissão junto da garantia).
func (r *Repository) Criar(db *gorm.DB, v *Voucher) error {
	if db == nil {
		db = r.DB
	}
	return db.Create(v).Error
}

func (r *Repository) ListarPorCliente(clienteID uint) ([]Voucher, error) {
	var list []Voucher
	q := r.DB.Order("created_at DESC")
	if clienteID != 0 {
		q = q.Where("cliente_id = ?", clienteID)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	hoje := time.Now()
	for i := range list {
		list[i].CalcularExpiracao(hoje)
	}
	return list, nil
}

func (r *Repository) BuscarPorID(id uint) (*Voucher, error) {
	var v Voucher
	if err := r.DB.First(&v, id).Error; err != nil {
		return nil, err
	}
	v.CalcularExpiracao(time.Now())
	return &v, nil
}

func (r *Repository) BuscarPorCodigo(codigo string) (*Voucher, error) {
	var v Voucher
	if err := r.DB.Where("codigo = ?", codigo).First(&v).Error; err != nil {
		return nil, err
	}
	v.CalcularExpiracao(time.Now())
	return &v, nil
}

func (r *Repository) Atualizar(v *Voucher) error {
	return r.DB.Save(v).Error
}
