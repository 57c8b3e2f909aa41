package order

import (
	"context"
	"fmt"
	"strings"

	"brewline/internal/apperr"
	"brewline/internal/menu"

	"github.com/sirupsen/logrus"
)

// CatalogReader resolves menu items at pricing time.
type CatalogReader interface {
	Get(ctx context.Context, id int64) (*menu.MenuItem, error)
}

// Recorder receives order events for metrics.
type Recorder interface {
	OrderCreated(totalCents int64)
	OrderServed()
}

type nopRecorder struct{}

func (nopRecorder) OrderCreated(int64) {}
func (nopRecorder) OrderServed()       {}

type Service struct {
	repo    Repository
	catalog CatalogReader
	metrics Recorder
	log     logrus.FieldLogger
}

// NewService wires the order builder. metrics may be nil.
func NewService(repo Repository, catalog CatalogReader, metrics Recorder, log logrus.FieldLogger) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Service{repo: repo, catalog: catalog, metrics: metrics, log: log}
}

// Create prices every requested line against the current catalog and stores
// the order. The first unknown menu item aborts the whole order and nothing
// is written.
func (s *Service) Create(ctx context.Context, userID int64, name string, items []ItemRequest) (*Order, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("order is empty")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("order name is required")
	}

	for _, req := range items {
		if req.Quantity < 1 || req.Quantity > MaxQuantity {
			return nil, apperr.Validation(fmt.Sprintf("quantity must be between 1 and %d", MaxQuantity))
		}
	}

	lines := make([]Line, 0, len(items))
	for _, req := range items {
		item, err := s.catalog.Get(ctx, req.MenuItemID)
		if err != nil {
			return nil, err
		}
		line, err := ResolveLine(*item, req)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	total, err := Total(lines)
	if err != nil {
		return nil, err
	}

	order := &Order{
		UserID:     userID,
		Name:       name,
		Items:      lines,
		TotalCents: total,
		Served:     false,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.metrics.OrderCreated(order.TotalCents)
	s.log.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"user_id":     userID,
		"lines":       len(lines),
		"total_cents": order.TotalCents,
	}).Info("order created")

	return order, nil
}

// List returns every order to the master and only their own to everyone
// else, newest first.
func (s *Service) List(ctx context.Context, viewer Viewer) ([]Order, error) {
	var (
		orders []Order
		err    error
	)
	if viewer.IsMaster {
		orders, err = s.repo.ListAll(ctx)
	} else {
		orders, err = s.repo.ListByUser(ctx, viewer.UserID)
	}
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// MarkServed is idempotent.
func (s *Service) MarkServed(ctx context.Context, id int64) error {
	if err := s.repo.MarkServed(ctx, id); err != nil {
		return err
	}

	s.metrics.OrderServed()
	s.log.WithFields(logrus.Fields{"order_id": id}).Info("order served")
	return nil
}

func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("orders cleared")
	return nil
}
