package menu

import (
	"context"
	"fmt"
	"io"

	"brewline/internal/apperr"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Storage uploads an object and returns its public URL.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
	log     logrus.FieldLogger
}

// NewService wires the catalog. storage may be nil, which disables image
// uploads.
func NewService(repo Repository, storage Storage, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, storage: storage, log: log}
}

func (s *Service) List(ctx context.Context) ([]MenuItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []MenuItem{}
	}
	return items, nil
}

// Get reads the item fresh from the store; order pricing relies on this.
func (s *Service) Get(ctx context.Context, id int64) (*MenuItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, in ItemInput) (*MenuItem, error) {
	if err := ValidateItem(&in); err != nil {
		return nil, err
	}

	item := in.toItem(0)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"menu_item_id": item.ID, "name": item.Name}).Info("menu item created")
	return item, nil
}

func (s *Service) Update(ctx context.Context, id int64, in ItemInput) (*MenuItem, error) {
	if err := ValidateItem(&in); err != nil {
		return nil, err
	}

	item := in.toItem(id)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"menu_item_id": id}).Info("menu item updated")
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"menu_item_id": id}).Info("menu item deleted")
	return nil
}

func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("menu cleared")
	return nil
}

// --------------------------------------------------
// Item image (R2)
// --------------------------------------------------
func (s *Service) UploadImage(
	ctx context.Context,
	id int64,
	body io.Reader,
	filename string,
) (*MenuItem, error) {

	if s.storage == nil {
		return nil, apperr.Unavailable("image storage is not configured")
	}

	ext, contentType, err := ValidateImageExtension(filename)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("menu/%d/%s%s", id, uuid.New().String(), ext)

	url, err := s.storage.Upload(ctx, key, body, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetImage(ctx, id, url); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

// Seed fills an empty catalog with the sample drinks.
func (s *Service) Seed(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, in := range SampleItems() {
		if _, err := s.Create(ctx, in); err != nil {
			return fmt.Errorf("seed %q: %w", in.Name, err)
		}
	}

	s.log.WithFields(logrus.Fields{"items": len(SampleItems())}).Info("menu seeded")
	return nil
}
