package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mkalil/prepdash/internal/storage"
	"github.com/mkalil/prepdash/internal/storage/sqlite"
	"github.com/mkalil/prepdash/internal/testutil"
)

type KVSuite struct {
	suite.Suite
	kv *sqlite.KV
}

func (s *KVSuite) SetupTest() {
	s.kv = testutil.NewTestKV(s.T())
}

func (s *KVSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.kv)
}

func (s *KVSuite) TestSetAndGet() {
	ctx := context.Background()

	err := s.kv.Set(ctx, storage.UserStorageKey, []byte(`{"version":1}`))
	s.Require().NoError(err)

	value, ok, err := s.kv.Get(ctx, storage.UserStorageKey)
	s.Require().NoError(err)
	s.Assert().True(ok)
	s.Assert().Equal([]byte(`{"version":1}`), value)
}

func (s *KVSuite) TestOverwrite() {
	ctx := context.Background()

	s.Require().NoError(s.kv.Set(ctx, "k", []byte("first")))
	s.Require().NoError(s.kv.Set(ctx, "k", []byte("second")))

	value, ok, err := s.kv.Get(ctx, "k")
	s.Require().NoError(err)
	s.Assert().True(ok)
	s.Assert().Equal([]byte("second"), value)
}

func (s *KVSuite) TestMissingKey() {
	_, ok, err := s.kv.Get(context.Background(), "missing")
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *KVSuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.kv.Set(ctx, "k", []byte("v")))
	s.Require().NoError(s.kv.Delete(ctx, "k"))

	_, ok, err := s.kv.Get(ctx, "k")
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *KVSuite) TestKeysOrderedByPrefix() {
	ctx := context.Background()

	s.Require().NoError(s.kv.Set(ctx, "store:b", []byte("2")))
	s.Require().NoError(s.kv.Set(ctx, "store:a", []byte("1")))
	s.Require().NoError(s.kv.Set(ctx, "token", []byte("t")))

	keys, err := s.kv.Keys(ctx, "store:")
	s.Require().NoError(err)
	s.Assert().Equal([]string{"store:a", "store:b"}, keys)
}

func (s *KVSuite) TestNotifyExternal() {
	var seen []string
	cancel := s.kv.Subscribe(func(key string) { seen = append(seen, key) })
	defer cancel()

	s.kv.NotifyExternal(storage.CourseStorageKey)
	s.Assert().Equal([]string{storage.CourseStorageKey}, seen)
}

func TestKVSuite(t *testing.T) {
	suite.Run(t, new(KVSuite))
}
