package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nautimar/nautica-shop/internal/domain/models"
	"github.com/nautimar/nautica-shop/internal/payment/mercadopago"
	"github.com/nautimar/nautica-shop/internal/storage"
)

var (
	// ErrEmptyCart — корзина пуста, проверяется до любых записей в БД
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnknownCartItem — позиция корзины ссылается на несуществующий товар
	ErrUnknownCartItem = errors.New("cart item not found in catalog")
)

// PreferenceCreator — то, что checkout требует от платёжного провайдера
type PreferenceCreator interface {
	CreatePreference(ctx context.Context, idempotencyKey string, pref *mercadopago.Preference) (*mercadopago.PreferenceResponse, error)
}

// CustomerData — контактные данные покупателя из формы checkout
type CustomerData struct {
	Name  string
	Email string
	Phone string
}

// CheckoutResult — идентификатор заказа и ссылки на hosted-checkout страницу
type CheckoutResult struct {
	OrderID     string
	CheckoutURL string
	SandboxURL  string
}

// CheckoutURLs — адреса, которые уходят провайдеру при создании предпочтения
type CheckoutURLs struct {
	Frontend     string // база для back_urls
	Notification string // вебхук для уведомлений о платеже
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID int64, entries []models.CartEntry, paymentMethod string, customer CustomerData) (*CheckoutResult, error)
}

type checkoutService struct {
	log             *slog.Logger
	db              *sql.DB
	userRepo        storage.UserStorage
	productRepo     storage.ProductStorage
	accessoryRepo   storage.AccessoryStorage
	orderRepo       storage.OrderStorage
	reservationRepo storage.ReservationStorage
	payments        PreferenceCreator
	urls            CheckoutURLs
}

func NewCheckoutService(
	log *slog.Logger,
	db *sql.DB,
	userRepo storage.UserStorage,
	productRepo storage.ProductStorage,
	accessoryRepo storage.AccessoryStorage,
	orderRepo storage.OrderStorage,
	reservationRepo storage.ReservationStorage,
	payments PreferenceCreator,
	urls CheckoutURLs,
) CheckoutService {
	return &checkoutService{
		log:             log,
		db:              db,
		userRepo:        userRepo,
		productRepo:     productRepo,
		accessoryRepo:   accessoryRepo,
		orderRepo:       orderRepo,
		reservationRepo: reservationRepo,
		payments:        payments,
		urls:            urls,
	}
}

// pricedEntry — позиция корзины после сверки с каталогом
type pricedEntry struct {
	title       string
	unitPrice   float64
	quantity    int
	productID   *string
	accessoryID *string
	mode        string // только для бронирований
}

// Checkout оформляет заказ: пересчитывает цены по каталогу, в одной транзакции
// создаёт заказ, его позиции и брони, затем запрашивает у Mercado Pago
// hosted-checkout сессию и возвращает ссылку на оплату.
func (s *checkoutService) Checkout(ctx context.Context, userID int64, entries []models.CartEntry, paymentMethod string, customer CustomerData) (*CheckoutResult, error) {
	const op = "service.CheckoutService.Checkout"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	if len(entries) == 0 {
		logger.Warn("empty cart")
		return nil, ErrEmptyCart
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	// Цены клиента игнорируются: каждая позиция пересчитывается по каталогу
	priced, err := s.priceEntries(ctx, entries)
	if err != nil {
		logger.Error("failed to price cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var total float64
	for _, p := range priced {
		total += p.unitPrice * float64(p.quantity)
	}

	order := &models.Order{
		ID:             uuid.NewString(),
		UserID:         userID,
		TotalAmount:    total,
		Status:         models.OrderStatusPending,
		PaymentMethod:  paymentMethod,
		IdempotencyKey: uuid.NewString(),
	}

	logger.Info("starting checkout transaction", slog.String("orderID", order.ID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	for _, p := range priced {
		item := &models.OrderItem{
			OrderID:     order.ID,
			Quantity:    p.quantity,
			UnitPrice:   p.unitPrice,
			ProductID:   p.productID,
			AccessoryID: p.accessoryID,
		}
		if p.productID != nil {
			item.ItemType = models.ItemTypeReservation
		} else {
			item.ItemType = models.ItemTypeAccessory
		}
		if err := s.orderRepo.CreateOrderItem(ctx, tx, item); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			logger.Error("failed to create order item", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to create order item: %w", op, err)
		}
	}

	for _, p := range priced {
		if p.productID == nil {
			continue
		}
		res := &models.Reservation{
			ID:        uuid.NewString(),
			UserID:    userID,
			ProductID: *p.productID,
			Mode:      p.mode,
			Amount:    p.unitPrice,
			Status:    models.ReservationStatusPending,
			OrderID:   order.ID,
		}
		if err := s.reservationRepo.CreateReservation(ctx, tx, res); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			logger.Error("failed to create reservation", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to create reservation: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	pref := s.buildPreference(order, priced, paymentMethod, user, customer)
	mpResp, err := s.payments.CreatePreference(ctx, order.IdempotencyKey, pref)
	if err != nil {
		// заказ остаётся в pending, клиент может повторить оплату позже
		logger.Error("failed to create payment preference", slog.Any("error", err))
		return nil, fmt.Errorf("%s: payment provider: %w", op, err)
	}

	logger.Info("checkout session created",
		slog.String("orderID", order.ID),
		slog.String("preferenceID", mpResp.ID),
	)

	return &CheckoutResult{
		OrderID:     order.ID,
		CheckoutURL: mpResp.InitPoint,
		SandboxURL:  mpResp.SandboxInitPoint,
	}, nil
}

// priceEntries сверяет позиции корзины с каталогом и возвращает их
// с авторитетными ценами. Ссылка на несуществующий товар — отказ.
func (s *checkoutService) priceEntries(ctx context.Context, entries []models.CartEntry) ([]pricedEntry, error) {
	priced := make([]pricedEntry, 0, len(entries))
	for _, entry := range entries {
		switch entry.Type {
		case models.ItemTypeReservation:
			product, err := s.productRepo.GetProductByID(ctx, entry.ProductID)
			if err != nil {
				if errors.Is(err, storage.ErrProductNotFound) {
					return nil, fmt.Errorf("%w: product %s", ErrUnknownCartItem, entry.ProductID)
				}
				return nil, err
			}
			mode := entry.Mode
			if mode == "" {
				mode = product.DepositMode
			}
			// если у товара режим both, а клиент свой не выбрал — берём fixed
			if mode != models.DepositModeFixed && mode != models.DepositModePercent {
				mode = models.DepositModeFixed
			}
			productID := product.ID
			priced = append(priced, pricedEntry{
				title:     product.Name,
				unitPrice: product.DepositAmount(mode),
				quantity:  1,
				productID: &productID,
				mode:      mode,
			})
		case models.ItemTypeAccessory:
			accessory, err := s.accessoryRepo.GetAccessoryByID(ctx, entry.ID)
			if err != nil {
				if errors.Is(err, storage.ErrAccessoryNotFound) {
					return nil, fmt.Errorf("%w: accessory %s", ErrUnknownCartItem, entry.ID)
				}
				return nil, err
			}
			quantity := entry.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			accessoryID := accessory.ID
			priced = append(priced, pricedEntry{
				title:       accessory.Name,
				unitPrice:   accessory.Price,
				quantity:    quantity,
				accessoryID: &accessoryID,
			})
		default:
			return nil, fmt.Errorf("%w: unsupported entry type %q", ErrUnknownCartItem, entry.Type)
		}
	}
	return priced, nil
}

func (s *checkoutService) buildPreference(order *models.Order, priced []pricedEntry, paymentMethod string, user *models.User, customer CustomerData) *mercadopago.Preference {
	items := make([]mercadopago.PreferenceItem, 0, len(priced))
	for _, p := range priced {
		items = append(items, mercadopago.PreferenceItem{
			Title:      p.title,
			Quantity:   p.quantity,
			UnitPrice:  p.unitPrice,
			CurrencyID: "BRL",
		})
	}

	name := customer.Name
	if name == "" {
		name = user.Name
	}
	email := customer.Email
	if email == "" {
		email = user.Email
	}

	// при оплате pix закрываем карты, при оплате картой — банковский перевод
	var excluded []mercadopago.PaymentType
	if paymentMethod == models.PaymentMethodPix {
		excluded = []mercadopago.PaymentType{{ID: "credit_card"}, {ID: "debit_card"}}
	} else {
		excluded = []mercadopago.PaymentType{{ID: "bank_transfer"}}
	}

	return &mercadopago.Preference{
		Items: items,
		Payer: mercadopago.Payer{
			Name:  name,
			Email: email,
			Phone: mercadopago.Phone{Number: customer.Phone},
		},
		BackURLs: mercadopago.BackURLs{
			Success: s.urls.Frontend + "/checkout/sucesso?order_id=" + order.ID,
			Failure: s.urls.Frontend + "/checkout",
			Pending: s.urls.Frontend + "/checkout/sucesso?order_id=" + order.ID,
		},
		AutoReturn:        "approved",
		ExternalReference: order.ID,
		NotificationURL:   s.urls.Notification,
		PaymentMethods:    mercadopago.PaymentMethods{ExcludedPaymentTypes: excluded},
	}
}
