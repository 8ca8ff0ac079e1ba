package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogotex/library-service/internal/library"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultOpTimeout = 10 * time.Second

// MongoRepo implements Repository on a MongoDB collection. Documents use the
// store's ObjectID as _id; no unique index is declared.
type MongoRepo struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(col *mongo.Collection, timeout time.Duration) *MongoRepo {
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	return &MongoRepo{col: col, timeout: timeout}
}

func (m *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.timeout)
}

func (m *MongoRepo) Create(ctx context.Context, e *library.Entry) (*library.Entry, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	doc := &library.Entry{
		ID:          primitive.NewObjectID(),
		Author:      e.Author,
		Description: e.Description,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := m.col.InsertOne(ctx, doc); err != nil {
		return nil, translate("insert entry", err)
	}
	return doc, nil
}

func (m *MongoRepo) Get(ctx context.Context, id primitive.ObjectID) (*library.Entry, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	var d library.Entry
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, translate("find entry", err)
	}
	return &d, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*library.Entry, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translate("list entries", err)
	}
	defer cur.Close(ctx)
	out := []*library.Entry{}
	for cur.Next(ctx) {
		var d library.Entry
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		out = append(out, &d)
	}
	if err := cur.Err(); err != nil {
		return nil, translate("list entries", err)
	}
	return out, nil
}

// Update sets only the fields present in p and returns the post-update
// document. An empty patch returns the stored document unchanged.
func (m *MongoRepo) Update(ctx context.Context, id primitive.ObjectID, p library.Patch) (*library.Entry, error) {
	if p.Empty() {
		return m.Get(ctx, id)
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d library.Entry
	err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": p}, opts).Decode(&d)
	if err != nil {
		return nil, translate("update entry", err)
	}
	return &d, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id primitive.ObjectID) (*library.Entry, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	var d library.Entry
	if err := m.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, translate("delete entry", err)
	}
	return &d, nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.col.Database().Client().Ping(ctx, nil)
}

// translate maps driver errors onto the library error kinds.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return library.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w: %v", op, library.ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
