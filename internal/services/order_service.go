package services

import (
	"context"
	"errors"

	"github.com/yoockh/bikeparts/internal/models"
	mongorepo "github.com/yoockh/bikeparts/internal/repositories/mongo"
	"github.com/yoockh/bikeparts/internal/utils"
)

type OrderService interface {
	Create(ctx context.Context, owner string, o models.Document) (*models.InsertResult, error)
	Get(ctx context.Context, id string) (models.Document, error)
	List(ctx context.Context, limit int64) ([]models.Document, error)
	ListByOwner(ctx context.Context, email string) ([]models.Document, error)
	Update(ctx context.Context, id string, set models.Document) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

type orderService struct {
	orders mongorepo.OrderRepository
}

func NewOrderService(orders mongorepo.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

// Create stores the order with the caller as owner, whatever addedBy the
// body claims.
func (s *orderService) Create(ctx context.Context, owner string, o models.Document) (*models.InsertResult, error) {
	const op = "OrderService.Create"

	if owner == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	doc := models.Without(o, models.FieldID)
	doc[models.FieldAddedBy] = owner

	res, err := s.orders.Insert(ctx, doc)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create order", err)
	}
	return res, nil
}

func (s *orderService) Get(ctx context.Context, id string) (models.Document, error) {
	const op = "OrderService.Get"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "order not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get order", err)
	}
	return o, nil
}

func (s *orderService) List(ctx context.Context, limit int64) ([]models.Document, error) {
	const op = "OrderService.List"

	out, err := s.orders.List(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list orders", err)
	}
	return out, nil
}

func (s *orderService) ListByOwner(ctx context.Context, email string) ([]models.Document, error) {
	const op = "OrderService.ListByOwner"

	if email == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}
	out, err := s.orders.ListByOwner(ctx, email)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list orders", err)
	}
	return out, nil
}

func (s *orderService) Update(ctx context.Context, id string, set models.Document) (*models.UpdateResult, error) {
	const op = "OrderService.Update"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	set = models.Without(set, models.FieldID, models.FieldAddedBy)
	if err := requireFields(op, set); err != nil {
		return nil, err
	}

	res, err := s.orders.Update(ctx, oid, set)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update order", err)
	}
	return res, nil
}

func (s *orderService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	const op = "OrderService.Delete"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	res, err := s.orders.Delete(ctx, oid)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to delete order", err)
	}
	return res, nil
}
