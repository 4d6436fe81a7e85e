package item

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func abrirBanco(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Item{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func criarItem(t *testing.T, repo *Repository, disponivel int) *Item {
	t.Helper()
	i := &Item{
		PanoID:               1,
		Categoria:            "anel",
		ValorUnitario:        30,
		QuantidadeInicial:    disponivel,
		QuantidadeDisponivel: disponivel,
	}
	require.NoError(t, repo.Criar(i))
	return i
}

func TestDecrementarEstoqueRecusaSemSaldo(t *testing.T) {
	repo := NewRepository(abrirBanco(t))
	i := criarItem(t, repo, 2)

	// Pedir mais do que o disponível: nenhuma linha afetada, nada muda.
	err := repo.DecrementarEstoque(nil, i.ID, 3)
	assert.ErrorIs(t, err, ErrEstoqueInsuficiente)

	atual, err := repo.BuscarPorID(i.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, atual.QuantidadeDisponivel)

	// Consumir exatamente o saldo é aceito; a unidade seguinte não.
	require.NoError(t, repo.DecrementarEstoque(nil, i.ID, 2))
	atual, err = repo.BuscarPorID(i.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, atual.QuantidadeDisponivel)

	assert.ErrorIs(t, repo.DecrementarEstoque(nil, i.ID, 1), ErrEstoqueInsuficiente)
}

func TestDecrementarEstoqueItemInexistente(t *testing.T) {
	repo := NewRepository(abrirBanco(t))
	assert.ErrorIs(t, repo.DecrementarEstoque(nil, 999, 1), ErrEstoqueInsuficiente)
}

func TestDecrementarEstoqueRollbackDesfazLinhasAnteriores(t *testing.T) {
	db := abrirBanco(t)
	repo := NewRepository(db)
	a := criarItem(t, repo, 5)
	b := criarItem(t, repo, 1)

	tx := db.Begin()
	require.NoError(t, tx.Error)

	require.NoError(t, repo.DecrementarEstoque(tx, a.ID, 3))
	assert.ErrorIs(t, repo.DecrementarEstoque(tx, b.ID, 2), ErrEstoqueInsuficiente)
	require.NoError(t, tx.Rollback().Error)

	// A baixa da primeira linha não pode sobreviver ao rollback.
	atualA, err := repo.BuscarPorID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, atualA.QuantidadeDisponivel)

	atualB, err := repo.BuscarPorID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, atualB.QuantidadeDisponivel)
}

func TestIncrementarEstoque(t *testing.T) {
	repo := NewRepository(abrirBanco(t))
	i := criarItem(t, repo, 3)

	require.NoError(t, repo.DecrementarEstoque(nil, i.ID, 2))
	require.NoError(t, repo.IncrementarEstoque(nil, i.ID, 2))

	atual, err := repo.BuscarPorID(i.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, atual.QuantidadeDisponivel)

	assert.ErrorIs(t, repo.IncrementarEstoque(nil, 999, 1), gorm.ErrRecordNotFound)
}
