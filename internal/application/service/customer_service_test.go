package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateCustomer(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("GetByPhone", ctx, testPhone).Return(nil, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(c *entity.Customer) bool {
		return c.Phone == testPhone && c.Name == "Asha"
	})).Return(nil)

	customer, err := svc.CreateCustomer(ctx, &CreateCustomerInput{Phone: "098765 43210", Name: "  Asha "})
	require.NoError(t, err)
	assert.Equal(t, testPhone, customer.Phone)
	assert.Equal(t, "Asha", customer.Name)
	repo.AssertExpectations(t)
}

func TestCreateCustomerDuplicatePhone(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("GetByPhone", ctx, testPhone).Return(&entity.Customer{Phone: testPhone}, nil)

	_, err := svc.CreateCustomer(ctx, &CreateCustomerInput{Phone: testPhone, Name: "Asha"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := NewCustomerService(new(MockCustomerRepository), zap.NewNop())

	_, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{Phone: "5555", Name: ""})

	appErr := apperror.GetAppError(err)
	require.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Len(t, appErr.Errors, 2)
}

func TestUpdateCustomer(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("GetByPhone", ctx, testPhone).Return(&entity.Customer{Phone: testPhone, Name: "Asha"}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	measurements := "bust 34, waist 28"
	customer, err := svc.UpdateCustomer(ctx, testPhone, &UpdateCustomerInput{Measurements: &measurements})
	require.NoError(t, err)
	assert.Equal(t, "Asha", customer.Name)
	assert.Equal(t, &measurements, customer.Measurements)

	blank := " "
	_, err = svc.UpdateCustomer(ctx, testPhone, &UpdateCustomerInput{Name: &blank})
	assert.Equal(t, http.StatusBadRequest, statusCode(err))
}

func TestEnsureCustomerRereadsAfterConcurrentCreate(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo, zap.NewNop())
	ctx := context.Background()

	repo.On("GetByPhone", ctx, testPhone).Return(nil, nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(apperror.NewConflictError("duplicate"))
	repo.On("GetByPhone", ctx, testPhone).Return(&entity.Customer{Phone: testPhone, Name: "Asha"}, nil).Once()

	customer, err := svc.EnsureCustomer(ctx, testPhone, "Asha K")
	require.NoError(t, err)
	assert.Equal(t, "Asha", customer.Name)
}

func TestGetCustomerByPhoneNotFound(t *testing.T) {
	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo, zap.NewNop())
	repo.On("GetByPhone", mock.Anything, testPhone).Return(nil, nil)

	_, err := svc.GetCustomerByPhone(context.Background(), "+91"+testPhone)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
