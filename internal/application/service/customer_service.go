package service

import (
	"context"
	"strings"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/pagination"
	"github.com/sangkips/boutique-api/pkg/utils"
	"go.uber.org/zap"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	log          *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, log *zap.Logger) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, log: log}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Phone        string
	Name         string
	Measurements *string
}

// CreateCustomer registers a customer. The phone number must not be taken.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	phone := utils.NormalizePhone(input.Phone)
	name := strings.TrimSpace(input.Name)

	var errs fieldErrors
	errs.phone("phone", phone)
	errs.required("name", name)
	if err := errs.err(); err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		s.log.Error("customer lookup failed", zap.String("phone", phone), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Customer with this phone already exists")
	}

	customer := &entity.Customer{
		Phone:        phone,
		Name:         name,
		Measurements: input.Measurements,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.log.Error("customer create failed", zap.String("phone", phone), zap.Error(err))
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetCustomerByPhone retrieves a customer by phone number
func (s *CustomerService) GetCustomerByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByPhone(ctx, utils.NormalizePhone(phone))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers matching search on name or phone
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name         *string
	Measurements *string
}

// UpdateCustomer changes the name or measurements of the customer with phone
func (s *CustomerService) UpdateCustomer(ctx context.Context, phone string, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomerByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "is required")
		}
		customer.Name = name
	}
	if input.Measurements != nil {
		customer.Measurements = input.Measurements
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		s.log.Error("customer update failed", zap.String("phone", customer.Phone), zap.Error(err))
		return nil, err
	}

	return customer, nil
}

// EnsureCustomer returns the customer with phone, creating it on first use.
// phone must already be normalized.
func (s *CustomerService) EnsureCustomer(ctx context.Context, phone, name string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		return customer, nil
	}
	if name == "" {
		return nil, apperror.NewFieldError("customer_name", "is required for a new customer")
	}

	customer = &entity.Customer{Phone: phone, Name: name}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if apperror.IsConflict(err) {
			// created concurrently by another order
			return s.GetCustomerByPhone(ctx, phone)
		}
		return nil, err
	}
	s.log.Info("customer created from order", zap.String("phone", phone))
	return customer, nil
}
