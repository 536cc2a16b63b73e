package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"veriauth/internal/models"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[int64]*models.Product
	next     int64

	createErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[int64]*models.Product{}}
}

func (f *fakeProductRepo) Create(p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.next++
	p.ID = f.next
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id int64) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Delete(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	return nil
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string]string

	putErr    error
	deleteErr error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string]string{}}
}

func (f *fakeObjectStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	f.objects[key] = contentType
	return "http://store.local/" + key, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStore) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func TestProductUpload(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	store := newFakeObjectStore()
	svc := NewProductService(repo, store)

	p, err := svc.Upload(context.Background(), "Chair", "A chair", "chair.PNG", "image/png", strings.NewReader("img-bytes"))
	require.NoError(t, err)
	require.NotZero(t, p.ID)
	require.True(t, strings.HasPrefix(p.ImageKey, "products/"))
	require.True(t, strings.HasSuffix(p.ImageKey, ".png"))
	require.Equal(t, "http://store.local/"+p.ImageKey, p.ImageURL)
	require.Equal(t, 1, store.len())
}

func TestProductUpload_RecordFailureCleansUpObject(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	repo.createErr = errors.New("db down")
	store := newFakeObjectStore()
	svc := NewProductService(repo, store)

	_, err := svc.Upload(context.Background(), "Chair", "A chair", "chair.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)
	require.Equal(t, 0, store.len())
}

func TestProductDelete(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	store := newFakeObjectStore()
	svc := NewProductService(repo, store)

	p, err := svc.Upload(context.Background(), "Chair", "A chair", "chair.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	require.Equal(t, 0, store.len())

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestProductDelete_Unknown(t *testing.T) {
	t.Parallel()

	svc := NewProductService(newFakeProductRepo(), newFakeObjectStore())
	require.ErrorIs(t, svc.Delete(context.Background(), 42), ErrProductNotFound)
}

func TestProductDelete_StorageFailureStillRemovesRecord(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	store := newFakeObjectStore()
	svc := NewProductService(repo, store)

	p, err := svc.Upload(context.Background(), "Chair", "A chair", "chair.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)

	store.deleteErr = errors.New("storage down")
	require.NoError(t, svc.Delete(context.Background(), p.ID))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}
