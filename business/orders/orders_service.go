package orders

import (
	"context"
	"storefront/domain"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/pkg/optional"
	"storefront/pkg/validation"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Markup is applied to the sum of product prices of every order.
var Markup = decimal.RequireFromString("1.2")

type OrdersRepository interface {
	Create(ctx context.Context, order *domain.Orders) error
	FindAll(ctx context.Context) ([]domain.Orders, error)
	FindByID(ctx context.Context, id int64) (domain.Orders, error)
	Update(ctx context.Context, id int64, patch domain.OrderPatch) (domain.Orders, error)
	Delete(ctx context.Context, id int64) (domain.Orders, error)
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

type UserRepository interface {
	FindPublicByID(ctx context.Context, id int64) (domain.PublicUser, error)
	FindPublicByIDs(ctx context.Context, ids []int64) ([]domain.PublicUser, error)
}

// Transactor scopes the product existence check and the order write to a
// single transaction.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CreateOrderInput struct {
	UserID     int64   `json:"userId" validate:"required,gt=0"`
	ProductIDs []int64 `json:"productIds" validate:"required,min=1,dive,gt=0"`
}

// PatchOrderInput is a partial update; absent fields are left untouched.
type PatchOrderInput struct {
	ProductIDs optional.Field[[]int64] `json:"productIds" validate:"omitempty,min=1,dive,gt=0"`
	Payment    optional.Field[bool]    `json:"payment"`
}

type OrdersService struct {
	orderRepo    OrdersRepository
	productsRepo ProductRepository
	usersRepo    UserRepository
	tx           Transactor
	validate     *validation.Validator
	now          func() time.Time
}

func NewOrdersService(
	orderRepo OrdersRepository,
	productsRepo ProductRepository,
	usersRepo UserRepository,
	tx Transactor,
	validate *validation.Validator,
) *OrdersService {
	return &OrdersService{
		orderRepo:    orderRepo,
		productsRepo: productsRepo,
		usersRepo:    usersRepo,
		tx:           tx,
		validate:     validate,
		now:          time.Now,
	}
}

func (s *OrdersService) CreateOrder(ctx context.Context, in CreateOrderInput) (domain.OrderDetail, error) {
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid create order request", err)
		return domain.OrderDetail{}, err
	}

	var (
		order    domain.Orders
		products []domain.Product
	)
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var total decimal.Decimal
		var err error
		products, total, err = s.priceProducts(ctx, in.ProductIDs)
		if err != nil {
			return err
		}

		now := s.now()
		order = domain.Orders{
			UserID:     in.UserID,
			ProductIDs: pq.Int64Array(in.ProductIDs),
			Total:      total,
			Payment:    false,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return s.orderRepo.Create(ctx, &order)
	})
	if err != nil {
		logger.Error("Failed to create order", err)
		return domain.OrderDetail{}, err
	}

	metrics.OrdersCreated.Inc()
	logger.Info("order created", "order_id", order.ID, "total", order.Total.String())

	user, err := s.findUser(ctx, order.UserID)
	if err != nil {
		return domain.OrderDetail{}, err
	}

	return domain.OrderDetail{Orders: order, User: user, Products: products}, nil
}

func (s *OrdersService) GetAllOrders(ctx context.Context) ([]domain.OrderDetail, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all orders", err)
		return nil, err
	}
	if len(orders) == 0 {
		return []domain.OrderDetail{}, nil
	}

	var userIDs, productIDs []int64
	for _, o := range orders {
		userIDs = append(userIDs, o.UserID)
		productIDs = append(productIDs, o.ProductIDs...)
	}

	users, err := s.usersRepo.FindPublicByIDs(ctx, distinct(userIDs))
	if err != nil {
		logger.Error("Failed to join order users", err)
		return nil, err
	}
	products, err := s.productsRepo.FindByIDs(ctx, distinct(productIDs))
	if err != nil {
		logger.Error("Failed to join order products", err)
		return nil, err
	}

	usersByID := make(map[int64]domain.PublicUser, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}
	productsByID := indexProducts(products)

	details := make([]domain.OrderDetail, 0, len(orders))
	for _, o := range orders {
		detail := domain.OrderDetail{Orders: o, Products: orderedProducts(o.ProductIDs, productsByID)}
		if u, ok := usersByID[o.UserID]; ok {
			detail.User = &u
		}
		details = append(details, detail)
	}

	return details, nil
}

func (s *OrdersService) GetOrder(ctx context.Context, id int64) (domain.OrderDetail, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get order by id", err)
		return domain.OrderDetail{}, err
	}

	return s.detail(ctx, order)
}

// ReplaceOrder overwrites user and products of an existing order and
// resets its payment flag.
func (s *OrdersService) ReplaceOrder(ctx context.Context, id int64, in CreateOrderInput) (domain.OrderDetail, error) {
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid replace order request", err)
		return domain.OrderDetail{}, err
	}

	var (
		order    domain.Orders
		products []domain.Product
	)
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var total decimal.Decimal
		var err error
		products, total, err = s.priceProducts(ctx, in.ProductIDs)
		if err != nil {
			return err
		}

		unpaid := false
		order, err = s.orderRepo.Update(ctx, id, domain.OrderPatch{
			UserID:     &in.UserID,
			ProductIDs: in.ProductIDs,
			Total:      &total,
			Payment:    &unpaid,
			UpdatedAt:  s.now(),
		})
		return err
	})
	if err != nil {
		logger.Error("Failed to replace order", err)
		return domain.OrderDetail{}, err
	}

	user, err := s.findUser(ctx, order.UserID)
	if err != nil {
		return domain.OrderDetail{}, err
	}

	return domain.OrderDetail{Orders: order, User: user, Products: products}, nil
}

// PatchOrder writes only the fields present in the input. A new product
// list is validated and repriced; payment is staged on its own.
func (s *OrdersService) PatchOrder(ctx context.Context, id int64, in PatchOrderInput) (domain.OrderDetail, error) {
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid patch order request", err)
		return domain.OrderDetail{}, err
	}
	if in.ProductIDs.Set && in.ProductIDs.Null {
		return domain.OrderDetail{}, nullField("productIds")
	}
	if in.Payment.Set && in.Payment.Null {
		return domain.OrderDetail{}, nullField("payment")
	}

	var order domain.Orders
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		patch := domain.OrderPatch{UpdatedAt: s.now()}

		if productIDs, ok := in.ProductIDs.Get(); ok {
			_, total, err := s.priceProducts(ctx, productIDs)
			if err != nil {
				return err
			}
			patch.ProductIDs = productIDs
			patch.Total = &total
		}
		if payment, ok := in.Payment.Get(); ok {
			patch.Payment = &payment
		}

		var err error
		order, err = s.orderRepo.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		logger.Error("Failed to patch order", err)
		return domain.OrderDetail{}, err
	}

	return s.detail(ctx, order)
}

// DeleteOrder removes the order and returns the deleted row.
func (s *OrdersService) DeleteOrder(ctx context.Context, id int64) (domain.Orders, error) {
	order, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("Failed to delete order", err)
		return domain.Orders{}, err
	}

	logger.Info("order deleted", "order_id", id)
	return order, nil
}

// priceProducts checks every requested product exists and returns the
// distinct rows with the marked-up total. Duplicated ids count once for
// existence and once per occurrence for the total.
func (s *OrdersService) priceProducts(ctx context.Context, productIDs []int64) ([]domain.Product, decimal.Decimal, error) {
	unique := distinct(productIDs)

	products, err := s.productsRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if len(products) != len(unique) {
		metrics.OrderProductValidationFailures.Inc()
		return nil, decimal.Zero, apperror.Validation("one or more products are invalid", apperror.FieldViolation{
			Field:   "productIds",
			Rule:    "exists",
			Message: "one or more products are invalid",
		})
	}

	byID := indexProducts(products)
	return orderedProducts(productIDs, byID), Total(productIDs, byID), nil
}

// Total returns sum(price of each id occurrence) * Markup.
func Total(productIDs []int64, products map[int64]domain.Product) decimal.Decimal {
	sum := decimal.Zero
	for _, id := range productIDs {
		sum = sum.Add(products[id].Price)
	}
	return sum.Mul(Markup)
}

func (s *OrdersService) detail(ctx context.Context, order domain.Orders) (domain.OrderDetail, error) {
	user, err := s.findUser(ctx, order.UserID)
	if err != nil {
		return domain.OrderDetail{}, err
	}

	products, err := s.productsRepo.FindByIDs(ctx, distinct(order.ProductIDs))
	if err != nil {
		logger.Error("Failed to join order products", err)
		return domain.OrderDetail{}, err
	}

	return domain.OrderDetail{
		Orders:   order,
		User:     user,
		Products: orderedProducts(order.ProductIDs, indexProducts(products)),
	}, nil
}

// findUser returns nil when the owner no longer exists.
func (s *OrdersService) findUser(ctx context.Context, id int64) (*domain.PublicUser, error) {
	user, err := s.usersRepo.FindPublicByID(ctx, id)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, nil
		}
		logger.Error("Failed to join order user", err)
		return nil, err
	}
	return &user, nil
}

func nullField(field string) error {
	return apperror.Validation("request validation failed", apperror.FieldViolation{
		Field:   field,
		Rule:    "not_null",
		Message: field + " cannot be null",
	})
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func indexProducts(products []domain.Product) map[int64]domain.Product {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID
}

// orderedProducts lists each referenced product once, in order of first
// reference, skipping ids that no longer resolve.
func orderedProducts(ids []int64, byID map[int64]domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(byID))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
