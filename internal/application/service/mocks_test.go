package service

import (
	"context"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/internal/domain/event"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/pkg/pagination"
	"github.com/stretchr/testify/mock"
)

// ptr returns args.Get(i) as *T, or nil when the mock returned nil.
func ptr[T any](args mock.Arguments, i int) *T {
	if v := args.Get(i); v != nil {
		return v.(*T)
	}
	return nil
}

func slice[T any](args mock.Arguments, i int) []T {
	if v := args.Get(i); v != nil {
		return v.([]T)
	}
	return nil
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	return ptr[entity.Customer](args, 0), args.Error(1)
}

func (m *MockCustomerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	args := m.Called(ctx, phone)
	return ptr[entity.Customer](args, 0), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *entity.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	args := m.Called(ctx, params, search)
	return slice[entity.Customer](args, 0), args.Get(1).(int64), args.Error(2)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) CreateBatch(ctx context.Context, items []entity.Item) error {
	return m.Called(ctx, items).Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	args := m.Called(ctx, id)
	return ptr[entity.Item](args, 0), args.Error(1)
}

func (m *MockItemRepository) GetByItemID(ctx context.Context, itemID string) (*entity.Item, error) {
	args := m.Called(ctx, itemID)
	return ptr[entity.Item](args, 0), args.Error(1)
}

func (m *MockItemRepository) GetByItemIDs(ctx context.Context, itemIDs []string) ([]entity.Item, error) {
	args := m.Called(ctx, itemIDs)
	return slice[entity.Item](args, 0), args.Error(1)
}

func (m *MockItemRepository) ExistingItemIDs(ctx context.Context, itemIDs []string) ([]string, error) {
	args := m.Called(ctx, itemIDs)
	return slice[string](args, 0), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *entity.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) List(ctx context.Context, params *repository.ItemFilterParams) ([]entity.Item, int64, error) {
	args := m.Called(ctx, params)
	return slice[entity.Item](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) ListAll(ctx context.Context) ([]entity.Item, error) {
	args := m.Called(ctx)
	return slice[entity.Item](args, 0), args.Error(1)
}

func (m *MockItemRepository) MarkSoldBatch(ctx context.Context, sales []repository.ItemSale) ([]string, error) {
	args := m.Called(ctx, sales)
	return slice[string](args, 0), args.Error(1)
}

func (m *MockItemRepository) ReleaseSoldBatch(ctx context.Context, billNo int64, itemIDs []string) error {
	return m.Called(ctx, billNo, itemIDs).Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *entity.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	args := m.Called(ctx, id)
	return ptr[entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) GetByBillNo(ctx context.Context, billNo int64) (*entity.Order, error) {
	args := m.Called(ctx, billNo)
	return ptr[entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *entity.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status enum.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	args := m.Called(ctx, params)
	return slice[entity.Order](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListSince(ctx context.Context, since time.Time) ([]entity.Order, error) {
	args := m.Called(ctx, since)
	return slice[entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderRepository) LatestBillNo(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockStitchingOrderRepository struct {
	mock.Mock
}

func (m *MockStitchingOrderRepository) Create(ctx context.Context, o *entity.StitchingOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockStitchingOrderRepository) GetByID(ctx context.Context, id string) (*entity.StitchingOrder, error) {
	args := m.Called(ctx, id)
	return ptr[entity.StitchingOrder](args, 0), args.Error(1)
}

func (m *MockStitchingOrderRepository) GetByBillNo(ctx context.Context, billNo int64) (*entity.StitchingOrder, error) {
	args := m.Called(ctx, billNo)
	return ptr[entity.StitchingOrder](args, 0), args.Error(1)
}

func (m *MockStitchingOrderRepository) Update(ctx context.Context, o *entity.StitchingOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockStitchingOrderRepository) UpdateStatus(ctx context.Context, id string, status enum.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockStitchingOrderRepository) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.StitchingOrder, int64, error) {
	args := m.Called(ctx, params)
	return slice[entity.StitchingOrder](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockStitchingOrderRepository) ListSince(ctx context.Context, since time.Time) ([]entity.StitchingOrder, error) {
	args := m.Called(ctx, since)
	return slice[entity.StitchingOrder](args, 0), args.Error(1)
}

func (m *MockStitchingOrderRepository) LatestBillNo(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockFabricRepository struct {
	mock.Mock
}

func (m *MockFabricRepository) Create(ctx context.Context, f *entity.Fabric) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFabricRepository) GetByID(ctx context.Context, id string) (*entity.Fabric, error) {
	args := m.Called(ctx, id)
	return ptr[entity.Fabric](args, 0), args.Error(1)
}

func (m *MockFabricRepository) GetByBusinessID(ctx context.Context, businessID string) (*entity.Fabric, error) {
	args := m.Called(ctx, businessID)
	return ptr[entity.Fabric](args, 0), args.Error(1)
}

func (m *MockFabricRepository) Update(ctx context.Context, f *entity.Fabric) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFabricRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Fabric, int64, error) {
	args := m.Called(ctx, params, search)
	return slice[entity.Fabric](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockFabricRepository) ListAll(ctx context.Context) ([]entity.Fabric, error) {
	args := m.Called(ctx)
	return slice[entity.Fabric](args, 0), args.Error(1)
}

func (m *MockFabricRepository) ConsumeBatch(ctx context.Context, uses []repository.MaterialUse) ([]string, error) {
	args := m.Called(ctx, uses)
	return slice[string](args, 0), args.Error(1)
}

func (m *MockFabricRepository) RestoreBatch(ctx context.Context, uses []repository.MaterialUse) error {
	return m.Called(ctx, uses).Error(0)
}

type MockAccessoryRepository struct {
	mock.Mock
}

func (m *MockAccessoryRepository) Create(ctx context.Context, a *entity.Accessory) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccessoryRepository) GetByID(ctx context.Context, id string) (*entity.Accessory, error) {
	args := m.Called(ctx, id)
	return ptr[entity.Accessory](args, 0), args.Error(1)
}

func (m *MockAccessoryRepository) GetByBusinessID(ctx context.Context, businessID string) (*entity.Accessory, error) {
	args := m.Called(ctx, businessID)
	return ptr[entity.Accessory](args, 0), args.Error(1)
}

func (m *MockAccessoryRepository) Update(ctx context.Context, a *entity.Accessory) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccessoryRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Accessory, int64, error) {
	args := m.Called(ctx, params, search)
	return slice[entity.Accessory](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccessoryRepository) ListAll(ctx context.Context) ([]entity.Accessory, error) {
	args := m.Called(ctx)
	return slice[entity.Accessory](args, 0), args.Error(1)
}

func (m *MockAccessoryRepository) ConsumeBatch(ctx context.Context, uses []repository.MaterialUse) ([]string, error) {
	args := m.Called(ctx, uses)
	return slice[string](args, 0), args.Error(1)
}

func (m *MockAccessoryRepository) RestoreBatch(ctx context.Context, uses []repository.MaterialUse) error {
	return m.Called(ctx, uses).Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entity.ShopSettings, error) {
	args := m.Called(ctx)
	return ptr[entity.ShopSettings](args, 0), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s *entity.ShopSettings) error {
	return m.Called(ctx, s).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	return ptr[entity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	return ptr[entity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) GetByProviderID(ctx context.Context, provider, providerID string) (*entity.User, error) {
	args := m.Called(ctx, provider, providerID)
	return ptr[entity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	args := m.Called(ctx, params, search)
	return slice[entity.User](args, 0), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// fixedSequence hands out consecutive numbers from next.
type fixedSequence struct {
	next    int64
	resyncs int
}

func (s *fixedSequence) Next(context.Context) int64 {
	n := s.next
	s.next++
	return n
}

func (s *fixedSequence) Resync(context.Context) { s.resyncs++ }

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	events []event.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// recordingPrinter keeps the last job.
type recordingPrinter struct {
	data []byte
	err  error
}

func (p *recordingPrinter) Print(data []byte) error {
	p.data = data
	return p.err
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return p.err == nil }
