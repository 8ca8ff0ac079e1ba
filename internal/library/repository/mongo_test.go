package repository

import (
	"context"
	"testing"
	"time"

	"github.com/gogotex/library-service/internal/library"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func entryDoc(id primitive.ObjectID, author, description string, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "author", Value: author},
		{Key: "description", Value: description},
		{Key: "createdAt", Value: created},
	}
}

func TestMongoRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		e, err := repo.Create(ctx, &library.Entry{Author: "Orwell", Description: "1984"})
		require.NoError(mt, err)
		require.False(mt, e.ID.IsZero())
		require.Equal(mt, "Orwell", e.Author)
		require.WithinDuration(mt, time.Now(), e.CreatedAt, 5*time.Second)
	})

	mt.Run("create duplicate key maps to conflict", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := repo.Create(ctx, &library.Entry{Author: "Orwell", Description: "1984"})
		require.ErrorIs(mt, err, library.ErrConflict)
	})

	mt.Run("create store failure is passed through", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    8000,
			Name:    "AtlasError",
			Message: "quota exceeded",
		}))

		_, err := repo.Create(ctx, &library.Entry{Author: "Orwell", Description: "1984"})
		require.Error(mt, err)
		require.NotErrorIs(mt, err, library.ErrConflict)
		require.NotErrorIs(mt, err, library.ErrNotFound)
		require.Contains(mt, err.Error(), "quota exceeded")
	})

	mt.Run("get", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		id := primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, entryDoc(id, "Orwell", "1984", created)))

		e, err := repo.Get(ctx, id)
		require.NoError(mt, err)
		require.Equal(mt, id, e.ID)
		require.Equal(mt, "1984", e.Description)
		require.True(mt, created.Equal(e.CreatedAt))
	})

	mt.Run("get not found", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.Get(ctx, primitive.NewObjectID())
		require.ErrorIs(mt, err, library.ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			entryDoc(primitive.NewObjectID(), "a", "one", created),
			entryDoc(primitive.NewObjectID(), "b", "two", created),
		))

		list, err := repo.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		require.Equal(mt, "a", list[0].Author)
		require.Equal(mt, "two", list[1].Description)
	})

	mt.Run("list empty returns non-nil slice", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		list, err := repo.List(ctx)
		require.NoError(mt, err)
		require.NotNil(mt, list)
		require.Empty(mt, list)
	})

	mt.Run("update returns post-update document", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: entryDoc(id, "Orwell", "X", created)},
		))

		x := "X"
		e, err := repo.Update(ctx, id, library.Patch{Description: &x})
		require.NoError(mt, err)
		require.Equal(mt, "X", e.Description)
		require.Equal(mt, "Orwell", e.Author)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		require.Equal(mt, "findAndModify", started.CommandName)
		set := started.Command.Lookup("update", "$set").Document()
		_, err = set.LookupErr("author")
		require.Error(mt, err, "absent fields must not be written")
		require.Equal(mt, "X", set.Lookup("description").StringValue())
	})

	mt.Run("update not found", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		x := "X"
		_, err := repo.Update(ctx, primitive.NewObjectID(), library.Patch{Description: &x})
		require.ErrorIs(mt, err, library.ErrNotFound)
	})

	mt.Run("update duplicate key maps to conflict", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Name:    "DuplicateKey",
			Message: "E11000 duplicate key error",
		}))

		x := "X"
		_, err := repo.Update(ctx, primitive.NewObjectID(), library.Patch{Author: &x})
		require.ErrorIs(mt, err, library.ErrConflict)
	})

	mt.Run("empty update reads current document", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		id := primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, entryDoc(id, "Orwell", "1984", created)))

		e, err := repo.Update(ctx, id, library.Patch{})
		require.NoError(mt, err)
		require.Equal(mt, "1984", e.Description)
		require.Equal(mt, "find", mt.GetStartedEvent().CommandName)
	})

	mt.Run("delete returns prior document", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: entryDoc(id, "Orwell", "1984", created)},
		))

		e, err := repo.Delete(ctx, id)
		require.NoError(mt, err)
		require.Equal(mt, id, e.ID)
	})

	mt.Run("delete not found", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Delete(ctx, primitive.NewObjectID())
		require.ErrorIs(mt, err, library.ErrNotFound)
	})
}
