package repository

import (
	"context"

	"github.com/gogotex/library-service/internal/library"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository is the persistence contract for library entries. Implementations
// return the sentinel errors of package library (ErrNotFound, ErrConflict,
// ErrUnavailable) so callers never inspect driver errors.
type Repository interface {
	Create(ctx context.Context, e *library.Entry) (*library.Entry, error)
	List(ctx context.Context) ([]*library.Entry, error)
	Get(ctx context.Context, id primitive.ObjectID) (*library.Entry, error)
	Update(ctx context.Context, id primitive.ObjectID, p library.Patch) (*library.Entry, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*library.Entry, error)
	Ping(ctx context.Context) error
}

// UnavailableRepo stands in when the store could not be reached at startup.
// Every call fails with library.ErrUnavailable.
type UnavailableRepo struct {
	cause error
}

func NewUnavailableRepo(cause error) *UnavailableRepo {
	return &UnavailableRepo{cause: cause}
}

func (u *UnavailableRepo) err() error {
	if u.cause == nil {
		return library.ErrUnavailable
	}
	return &unavailableError{cause: u.cause}
}

func (u *UnavailableRepo) Create(ctx context.Context, e *library.Entry) (*library.Entry, error) {
	return nil, u.err()
}

func (u *UnavailableRepo) List(ctx context.Context) ([]*library.Entry, error) {
	return nil, u.err()
}

func (u *UnavailableRepo) Get(ctx context.Context, id primitive.ObjectID) (*library.Entry, error) {
	return nil, u.err()
}

func (u *UnavailableRepo) Update(ctx context.Context, id primitive.ObjectID, p library.Patch) (*library.Entry, error) {
	return nil, u.err()
}

func (u *UnavailableRepo) Delete(ctx context.Context, id primitive.ObjectID) (*library.Entry, error) {
	return nil, u.err()
}

func (u *UnavailableRepo) Ping(ctx context.Context) error {
	return u.err()
}

type unavailableError struct {
	cause error
}

func (e *unavailableError) Error() string {
	return library.ErrUnavailable.Error() + ": " + e.cause.Error()
}

func (e *unavailableError) Is(target error) bool { return target == library.ErrUnavailable }

func (e *unavailableError) Unwrap() error { return e.cause }
