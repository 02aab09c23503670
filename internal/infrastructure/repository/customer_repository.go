package repository

import (
	"context"
	"errors"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	domainRepo "github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	db    *gorm.DB
	table string
}

// NewCustomerRepository creates a customer repository backed by table
func NewCustomerRepository(db *gorm.DB, table string) domainRepo.CustomerRepository {
	return &customerRepository{db: db, table: table}
}

func (r *customerRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return translateError(r.query(ctx).Create(customer).Error, "Customer with this phone already exists")
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.query(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.query(ctx).First(&customer, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return translateError(r.query(ctx).Save(customer).Error, "Customer with this phone already exists")
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.query(ctx).Scopes(Search(search, "name", "phone"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}
