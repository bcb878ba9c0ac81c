package appstate_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/torneo-cremesi/sheet-api/internal/entities"
	"github.com/torneo-cremesi/sheet-api/internal/repositories/appstate"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	mini  *miniredis.Miniredis
	repo  appstate.Repository
	state entities.CharacterState
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	mini, err := miniredis.Run()
	s.Require().NoError(err)
	s.mini = mini

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	repo, err := appstate.NewRedis(&appstate.Config{Client: client})
	s.Require().NoError(err)
	s.repo = repo

	s.state = entities.CharacterState{
		"razza":  "halfling",
		"classe": "guerriero",
		"taglia": "Piccola",
		"tratti": []string{"coraggioso"},
	}
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.mini.Close()
}

func (s *RedisRepositoryTestSuite) TestLoadEmptyStore() {
	output, err := s.repo.Load(s.ctx, &appstate.LoadInput{})
	s.Require().NoError(err)
	s.Require().NotNil(output.State)
	s.Empty(output.State)
}

func (s *RedisRepositoryTestSuite) TestSaveAndLoadRoundTrip() {
	saved, err := s.repo.Save(s.ctx, &appstate.SaveInput{State: s.state})
	s.Require().NoError(err)
	s.True(saved.Written)

	loaded, err := s.repo.Load(s.ctx, &appstate.LoadInput{})
	s.Require().NoError(err)
	s.Equal("halfling", loaded.State.String("razza"))
	s.Equal("Piccola", loaded.State.String("taglia"))
	s.Equal([]string{"coraggioso"}, loaded.State.List("tratti"))
}

func (s *RedisRepositoryTestSuite) TestSaveSkipsIdenticalPayload() {
	first, err := s.repo.Save(s.ctx, &appstate.SaveInput{State: s.state})
	s.Require().NoError(err)
	s.True(first.Written)

	second, err := s.repo.Save(s.ctx, &appstate.SaveInput{State: s.state.Clone()})
	s.Require().NoError(err)
	s.False(second.Written)

	s.state["livello"] = "5"
	third, err := s.repo.Save(s.ctx, &appstate.SaveInput{State: s.state})
	s.Require().NoError(err)
	s.True(third.Written)
}

func (s *RedisRepositoryTestSuite) TestLoadCorruptPayloadStartsFresh() {
	s.Require().NoError(s.mini.Set("sheet:app:v2", "{not json"))

	output, err := s.repo.Load(s.ctx, &appstate.LoadInput{})
	s.Require().NoError(err)
	s.Require().NotNil(output.State)
	s.Empty(output.State)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, &appstate.SaveInput{State: s.state})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, &appstate.DeleteInput{})
	s.Require().NoError(err)

	output, err := s.repo.Load(s.ctx, &appstate.LoadInput{})
	s.Require().NoError(err)
	s.Empty(output.State)
}

func (s *RedisRepositoryTestSuite) TestSaveNilStateFails() {
	_, err := s.repo.Save(s.ctx, &appstate.SaveInput{})
	s.Require().Error(err)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
