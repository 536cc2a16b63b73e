package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"veriauth/internal/models"
	"veriauth/internal/repositories"
	"veriauth/internal/storage"
)

var ErrProductNotFound = errors.New("product not found")

const storageOpTimeout = 30 * time.Second

type ProductService interface {
	Upload(ctx context.Context, title, description, filename, contentType string, image io.Reader) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	repo  repositories.ProductRepository
	store storage.ObjectStorage
}

func NewProductService(repo repositories.ProductRepository, store storage.ObjectStorage) ProductService {
	return &productService{repo: repo, store: store}
}

func storageKey(filename string) string {
	return fmt.Sprintf("products/%s%s", uuid.New(), strings.ToLower(filepath.Ext(filename)))
}

func (s *productService) Upload(ctx context.Context, title, description, filename, contentType string, image io.Reader) (*models.Product, error) {
	key := storageKey(filename)

	putCtx, cancel := context.WithTimeout(ctx, storageOpTimeout)
	defer cancel()
	url, err := s.store.Put(putCtx, key, contentType, image)
	if err != nil {
		return nil, fmt.Errorf("product upload: %w", err)
	}

	p := &models.Product{
		Title:       title,
		Description: description,
		ImageURL:    url,
		ImageKey:    key,
	}
	if err := s.repo.Create(p); err != nil {
		// no record, so the uploaded object is an orphan
		delCtx, cancel := context.WithTimeout(context.Background(), storageOpTimeout)
		defer cancel()
		if derr := s.store.Delete(delCtx, key); derr != nil {
			log.Printf("[product][upload] orphan cleanup failed for %s: %v", key, derr)
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}

	delCtx, cancel := context.WithTimeout(ctx, storageOpTimeout)
	defer cancel()
	if err := s.store.Delete(delCtx, p.ImageKey); err != nil {
		// still remove the record, cleanup is best-effort
		log.Printf("[product][delete] object cleanup failed for %s: %v", p.ImageKey, err)
	}
	return s.repo.Delete(id)
}
