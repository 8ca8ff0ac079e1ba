package service

import (
	"context"
	"time"

	"github.com/gogotex/library-service/internal/library"
	"github.com/gogotex/library-service/internal/library/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service defines the library operations used by the handler layer.
type Service interface {
	Create(ctx context.Context, author, description string) (*library.Entry, error)
	List(ctx context.Context) ([]*library.Entry, error)
	Get(ctx context.Context, id string) (*library.Entry, error)
	Update(ctx context.Context, id string, p library.Patch) (*library.Entry, error)
	Delete(ctx context.Context, id string) (*library.Entry, error)
	Ping(ctx context.Context) error
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller owns the client behind col and disconnects it on shutdown.
func NewMongoService(col *mongo.Collection, opTimeout time.Duration) Service {
	return New(repository.NewMongoRepo(col, opTimeout))
}

// New wraps any repository.
func New(repo repository.Repository) Service {
	return &libraryService{repo: repo}
}

type libraryService struct {
	repo repository.Repository
}

func (s *libraryService) Create(ctx context.Context, author, description string) (*library.Entry, error) {
	e := &library.Entry{Author: author, Description: description}
	if err := library.Validate(e); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, e)
}

func (s *libraryService) List(ctx context.Context) ([]*library.Entry, error) {
	return s.repo.List(ctx)
}

func (s *libraryService) Get(ctx context.Context, id string) (*library.Entry, error) {
	oid, err := library.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *libraryService) Update(ctx context.Context, id string, p library.Patch) (*library.Entry, error) {
	oid, err := library.ParseID(id)
	if err != nil {
		return nil, err
	}
	if err := library.ValidatePatch(p); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, oid, p)
}

func (s *libraryService) Delete(ctx context.Context, id string) (*library.Entry, error) {
	oid, err := library.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, oid)
}

func (s *libraryService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
