package items_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/torneo-cremesi/sheet-api/internal/entities"
	"github.com/torneo-cremesi/sheet-api/internal/errors"
	"github.com/torneo-cremesi/sheet-api/internal/pkg/idgen"
	"github.com/torneo-cremesi/sheet-api/internal/repositories/items"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	mini *miniredis.Miniredis
	repo items.Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	mini, err := miniredis.Run()
	s.Require().NoError(err)
	s.mini = mini

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	repo, err := items.NewRedis(&items.Config{
		Client:      client,
		IDGenerator: idgen.NewSequential("item"),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.mini.Close()
}

func (s *RedisRepositoryTestSuite) add(name string) entities.CustomItem {
	output, err := s.repo.Add(s.ctx, &items.AddInput{
		Item: entities.CustomItem{Name: name},
	})
	s.Require().NoError(err)
	return output.Item
}

func (s *RedisRepositoryTestSuite) TestAddAssignsID() {
	item := s.add("Anello della Fortuna")
	s.Equal("item_1", item.ID)
	s.Equal("Anello della Fortuna", item.Name)
}

func (s *RedisRepositoryTestSuite) TestAddKeepsGivenID() {
	output, err := s.repo.Add(s.ctx, &items.AddInput{
		Item: entities.CustomItem{ID: "anello-fortuna", Name: "Anello della Fortuna"},
	})
	s.Require().NoError(err)
	s.Equal("anello-fortuna", output.Item.ID)

	_, err = s.repo.Add(s.ctx, &items.AddInput{
		Item: entities.CustomItem{ID: "anello-fortuna", Name: "Doppione"},
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestListPreservesInsertionOrder() {
	s.add("Anello della Fortuna")
	s.add("Mantello Cremisi")

	output, err := s.repo.List(s.ctx, &items.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Items, 2)
	s.Equal("Anello della Fortuna", output.Items[0].Name)
	s.Equal("Mantello Cremisi", output.Items[1].Name)
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	item := s.add("Anello della Fortuna")
	item.Price = 2500
	item.Slot = "anello"

	updated, err := s.repo.Update(s.ctx, &items.UpdateInput{Item: item})
	s.Require().NoError(err)
	s.Equal(2500, updated.Item.Price)

	output, err := s.repo.List(s.ctx, &items.ListInput{})
	s.Require().NoError(err)
	s.Equal("anello", output.Items[0].Slot)
}

func (s *RedisRepositoryTestSuite) TestUpdateMissingItem() {
	_, err := s.repo.Update(s.ctx, &items.UpdateInput{
		Item: entities.CustomItem{ID: "ghost", Name: "Fantasma"},
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestRemove() {
	first := s.add("Anello della Fortuna")
	s.add("Mantello Cremisi")

	_, err := s.repo.Remove(s.ctx, &items.RemoveInput{ID: first.ID})
	s.Require().NoError(err)

	output, err := s.repo.List(s.ctx, &items.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(output.Items, 1)
	s.Equal("Mantello Cremisi", output.Items[0].Name)

	_, err = s.repo.Remove(s.ctx, &items.RemoveInput{ID: first.ID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestReplace() {
	s.add("Anello della Fortuna")

	output, err := s.repo.Replace(s.ctx, &items.ReplaceInput{
		Items: []entities.CustomItem{
			{Name: "Spada del Torneo"},
			{ID: "mantello", Name: "Mantello Cremisi"},
		},
	})
	s.Require().NoError(err)
	s.Equal(2, output.Count)

	listed, err := s.repo.List(s.ctx, &items.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(listed.Items, 2)
	s.Equal("Spada del Torneo", listed.Items[0].Name)
	s.NotEmpty(listed.Items[0].ID)
	s.Equal("mantello", listed.Items[1].ID)
}

func (s *RedisRepositoryTestSuite) TestCorruptCatalogStartsFresh() {
	s.Require().NoError(s.mini.Set("sheet:oc:v2", "not json"))

	output, err := s.repo.List(s.ctx, &items.ListInput{})
	s.Require().NoError(err)
	s.Empty(output.Items)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
