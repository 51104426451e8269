package service_test

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/nautimar/nautica-shop/internal/domain/models"
	"github.com/nautimar/nautica-shop/internal/payment/mercadopago"
	"github.com/nautimar/nautica-shop/internal/service"
	"github.com/nautimar/nautica-shop/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

type fakeUserRepo struct {
	users map[string]*models.User // ключ — email
}

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return nil, storage.ErrUserExists
	}
	user.ID = int64(len(f.users) + 1)
	f.users[user.Email] = user
	return user, nil
}

type fakeProductRepo struct {
	products map[string]*models.Product
}

var _ storage.ProductStorage = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*models.Product)}
}

func (f *fakeProductRepo) ListProducts(ctx context.Context, filter storage.ProductFilter) ([]*models.Product, error) {
	var products []*models.Product
	for _, p := range f.products {
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	f.products[p.ID] = p
	return nil
}

type fakeAccessoryRepo struct {
	accessories map[string]*models.Accessory
}

var _ storage.AccessoryStorage = (*fakeAccessoryRepo)(nil)

func newFakeAccessoryRepo() *fakeAccessoryRepo {
	return &fakeAccessoryRepo{accessories: make(map[string]*models.Accessory)}
}

func (f *fakeAccessoryRepo) ListAccessories(ctx context.Context) ([]*models.Accessory, error) {
	var accessories []*models.Accessory
	for _, a := range f.accessories {
		accessories = append(accessories, a)
	}
	return accessories, nil
}

func (f *fakeAccessoryRepo) GetAccessoryByID(ctx context.Context, id string) (*models.Accessory, error) {
	a, ok := f.accessories[id]
	if !ok {
		return nil, storage.ErrAccessoryNotFound
	}
	return a, nil
}

type fakeOrderRepo struct {
	orders map[string]*models.Order
	items  map[string][]*models.OrderItem
}

var _ storage.OrderStorage = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[string]*models.Order),
		items:  make(map[string][]*models.OrderItem),
	}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) CreateOrderItem(ctx context.Context, tx *sql.Tx, item *models.OrderItem) error {
	cp := *item
	f.items[item.OrderID] = append(f.items[item.OrderID], &cp)
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrderRepo) GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	var orders []*models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) GetAllOrders(ctx context.Context) ([]*models.Order, error) {
	var orders []*models.Order
	for _, o := range f.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (f *fakeOrderRepo) GetItemsByOrderID(ctx context.Context, orderID string) ([]*models.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, paymentID string) error {
	order, ok := f.orders[id]
	if !ok {
		return storage.ErrOrderNotFound
	}
	order.Status = status
	order.PaymentID = &paymentID
	return nil
}

type fakeReservationRepo struct {
	reservations map[string][]*models.Reservation // ключ — orderID
	updateErr    error
}

var _ storage.ReservationStorage = (*fakeReservationRepo)(nil)

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[string][]*models.Reservation)}
}

func (f *fakeReservationRepo) CreateReservation(ctx context.Context, tx *sql.Tx, res *models.Reservation) error {
	cp := *res
	f.reservations[res.OrderID] = append(f.reservations[res.OrderID], &cp)
	return nil
}

func (f *fakeReservationRepo) GetReservationsByOrderID(ctx context.Context, orderID string) ([]*models.Reservation, error) {
	return f.reservations[orderID], nil
}

func (f *fakeReservationRepo) UpdateStatusByOrderID(ctx context.Context, orderID string, status models.ReservationStatus, paymentID string) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	var affected int64
	for _, res := range f.reservations[orderID] {
		res.Status = status
		res.PaymentID = &paymentID
		affected++
	}
	return affected, nil
}

// fakePayments — фиктивный платёжный провайдер, запоминает последний запрос
type fakePayments struct {
	lastPref    *mercadopago.Preference
	lastIdemKey string
	createErr   error
	payment     *mercadopago.Payment
	fetchErr    error
}

func (f *fakePayments) CreatePreference(ctx context.Context, idempotencyKey string, pref *mercadopago.Preference) (*mercadopago.PreferenceResponse, error) {
	f.lastPref = pref
	f.lastIdemKey = idempotencyKey
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &mercadopago.PreferenceResponse{
		ID:               "pref-1",
		InitPoint:        "https://mp.test/init",
		SandboxInitPoint: "https://mp.test/sandbox",
	}, nil
}

func (f *fakePayments) GetPayment(ctx context.Context, id string) (*mercadopago.Payment, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.payment, nil
}

func TestAuthService_Register_NewUser(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	fakeRepo := newFakeUserRepo()
	authSvc := service.NewAuthService(testLogger(), fakeRepo, 60*time.Minute)
	ctx := context.Background()

	email := "newuser@example.com"
	password := "password123"

	token, err := authSvc.Register(ctx, "Novo Usuario", email, "+5511999990000", password)
	assert.NoError(t, err, "Register should succeed for a new user")
	assert.NotEmpty(t, token, "Token should not be empty")

	user, err := fakeRepo.GetUserByEmail(ctx, email)
	assert.NoError(t, err, "User should exist after registration")
	assert.Equal(t, "Novo Usuario", user.Name)
	// Проверяем, что пароль хэширован (не равен исходному паролю)
	assert.NotEqual(t, password, string(user.PassHash), "Password should be hashed")
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	fakeRepo := newFakeUserRepo()
	authSvc := service.NewAuthService(testLogger(), fakeRepo, 60*time.Minute)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, "Primeiro", "dup@example.com", "", "password123")
	assert.NoError(t, err)

	token, err := authSvc.Register(ctx, "Segundo", "dup@example.com", "", "password456")
	assert.Error(t, err, "Second registration with same email should fail")
	assert.True(t, errors.Is(err, storage.ErrUserExists))
	assert.Empty(t, token)
}

func TestAuthService_Login_CorrectPassword(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	fakeRepo := newFakeUserRepo()
	authSvc := service.NewAuthService(testLogger(), fakeRepo, 60*time.Minute)
	ctx := context.Background()

	email := "existing@example.com"
	password := "password123"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	_, err = fakeRepo.CreateUser(ctx, &models.User{Email: email, PassHash: hashed})
	assert.NoError(t, err)

	token, err := authSvc.Login(ctx, email, password)
	assert.NoError(t, err, "Login should succeed with correct password")
	assert.NotEmpty(t, token, "Token should be returned")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	fakeRepo := newFakeUserRepo()
	authSvc := service.NewAuthService(testLogger(), fakeRepo, 60*time.Minute)
	ctx := context.Background()

	email := "existing@example.com"
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	_, err = fakeRepo.CreateUser(ctx, &models.User{Email: email, PassHash: hashed})
	assert.NoError(t, err)

	token, err := authSvc.Login(ctx, email, "wrongpassword")
	assert.Error(t, err, "Login should fail with incorrect password")
	assert.True(t, errors.Is(err, service.ErrInvalidCredentials))
	assert.Empty(t, token, "Token should be empty on failed login")
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	os.Setenv("JWT_SECRET", "testsecret")
	defer os.Unsetenv("JWT_SECRET")

	fakeRepo := newFakeUserRepo()
	authSvc := service.NewAuthService(testLogger(), fakeRepo, 60*time.Minute)

	token, err := authSvc.Login(context.Background(), "nobody@example.com", "password123")
	assert.Error(t, err, "Login should fail for unknown user")
	assert.True(t, errors.Is(err, service.ErrInvalidCredentials))
	assert.Empty(t, token)
}
