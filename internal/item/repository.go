package item

import (
	"errors"

	"gorm.io/gorm"
)

// ErrEstoqueInsuficiente indica que o decremento foi recusado porque a
// quantidade disponível é menor que a pedida.
var ErrEstoqueInsuficiente = errors.New("estoque insuficiente")

// Repository encapsula o acesso a dados de itens.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(i *Item) error {
	return r.DB.Create(i).Error
}

// CriarEmLote cria múltiplos itens de uma vez (ignora se vazio).
func (r *Repository) CriarEmLote(itens []*Item) error {
	if len(itens) == 0 {
		return nil
	}
	return r.DB.Create(itens).Error
}

func (r *Repository) ListarPorPano(panoID uint) ([]Item, error) {
	var itens []Item
	err := r.DB.
		Where("pano_id = ?", panoID).
		Order("categoria ASC, descricao ASC").
		Find(&itens).Error
	return itens, err
}

func (r *Repository) BuscarPorID(id uint) (*Item, error) {
	var i Item
	if err := r.DB.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *Repository) Atualizar(i *Item) error {
	return r.DB.Save(i).Error
}

func (r *Repository) Deletar(id uint) error {
	res := r.DB.Delete(&Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

/* ========================= Mutação de estoque ========================= */

// DecrementarEstoque subtrai `qtd` da quantidade disponível em um único
// UPDATE condicional. Zero linhas afetadas significa estoque insuficiente
// (ou item inexistente); nunca há fallback de leitura-e-gravação.
// Se db == nil, usa o r.DB. Permite usar dentro de transação.
func (r *Repository) DecrementarEstoque(db *gorm.DB, id uint, qtd int) error {
	if db == nil {
		db = r.DB
	}
	res := db.Model(&Item{}).
		Where("id = ? AND quantidade_disponivel >= ?", id, qtd).
		Update("quantidade_disponivel", gorm.Expr("quantidade_disponivel - ?", qtd))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEstoqueInsuficiente
	}
	return nil
}

// IncrementarEstoque devolve `qtd` unidades ao estoque do item
// (remoção de linha de venda, edição de quantidade ou devolução).
func (r *Repository) IncrementarEstoque(db *gorm.DB, id uint, qtd int) error {
	if db == nil {
		db = r.DB
	}
	res := db.Model(&Item{}).
		Where("id = ?", id).
		Update("quantidade_disponivel", gorm.Expr("quantidade_disponivel + ?", qtd))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
