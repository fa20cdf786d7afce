package repository

import (
	"errors"

	"github.com/soporteti/inventario_service/internal/domain"
	"gorm.io/gorm"
)

// InventarioRepository is the record store collaborator: a keyed store
// with select/insert/update/delete. All audit-trail and blob rules live in
// the service layer, not here.
type InventarioRepository interface {
	Insert(inv *domain.Inventario) (*domain.Inventario, error)
	FindByID(id string) (*domain.Inventario, error)
	FindAll() ([]domain.Inventario, error)
	Update(id string, updates map[string]any) (*domain.Inventario, error)
	Delete(id string) error
	DistinctCategorias() ([]string, error)
}

type inventarioRepository struct {
	db *gorm.DB
}

func NewInventarioRepository(db *gorm.DB) InventarioRepository {
	return &inventarioRepository{db: db}
}

func (r *inventarioRepository) Insert(inv *domain.Inventario) (*domain.Inventario, error) {
	if inv == nil {
		return nil, &domain.StoreError{Op: "insert", Err: errors.New("nil inventario")}
	}

	if err := r.db.Create(inv).Error; err != nil {
		// StoreError unwraps, pgconn errors stay reachable for errors.As.
		return nil, &domain.StoreError{Op: "insert", Err: err}
	}
	return inv, nil
}

func (r *inventarioRepository) FindByID(id string) (*domain.Inventario, error) {
	inv := &domain.Inventario{}

	if err := r.db.First(inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, &domain.StoreError{Op: "select", Err: err}
	}
	return inv, nil
}

func (r *inventarioRepository) FindAll() ([]domain.Inventario, error) {
	var items []domain.Inventario

	if err := r.db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, &domain.StoreError{Op: "select", Err: err}
	}
	return items, nil
}

func (r *inventarioRepository) Update(id string, updates map[string]any) (*domain.Inventario, error) {
	if len(updates) == 0 {
		return r.FindByID(id)
	}

	res := r.db.Model(&domain.Inventario{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, &domain.StoreError{Op: "update", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, &domain.NotFoundError{ID: id}
	}

	return r.FindByID(id)
}

func (r *inventarioRepository) Delete(id string) error {
	if err := r.db.Delete(&domain.Inventario{}, "id = ?", id).Error; err != nil {
		return &domain.StoreError{Op: "delete", Err: err}
	}
	return nil
}

func (r *inventarioRepository) DistinctCategorias() ([]string, error) {
	var categorias []string

	err := r.db.Model(&domain.Inventario{}).
		Distinct("categoria").
		Where("categoria <> ''").
		Pluck("categoria", &categorias).Error
	if err != nil {
		return nil, &domain.StoreError{Op: "select", Err: err}
	}
	return categorias, nil
}
