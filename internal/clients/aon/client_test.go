package aon_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/torneo-cremesi/sheet-api/internal/clients/aon"
	"github.com/torneo-cremesi/sheet-api/internal/errors"
)

type ClientTestSuite struct {
	suite.Suite
	ctx     context.Context
	stubDir string
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.stubDir = s.T().TempDir()

	s.writeStub("aon-races.stub.json", `{
		"entries": [
			{"id": "umano", "name": "Umano", "size": "Media"},
			{"id": "halfling", "name": "Halfling", "size": "Piccola"}
		]
	}`)
	s.writeStub("aon-classes.stub.json", `{
		"entries": [
			{"id": "guerriero", "name": "Guerriero"},
			{"id": "mago", "name": "Mago"}
		]
	}`)
	s.writeStub("aon-archetypes.stub.json", `{
		"entries": [
			{"id": "campione", "name": "Campione del Torneo", "classes": ["guerriero"]}
		]
	}`)
	s.writeStub("aon-traits.stub.json", `{
		"traits": [{"id": "coraggioso", "name": "Coraggioso"}],
		"drawbacks": [{"id": "timido", "name": "Timido"}]
	}`)
}

func (s *ClientTestSuite) writeStub(name, body string) {
	err := os.WriteFile(filepath.Join(s.stubDir, name), []byte(body), 0o644)
	s.Require().NoError(err)
}

func (s *ClientTestSuite) newClient(endpoints aon.Endpoints) aon.Client {
	client, err := aon.New(&aon.Config{
		Endpoints: endpoints,
		StubDir:   s.stubDir,
	})
	s.Require().NoError(err)
	return client
}

func (s *ClientTestSuite) TestGetRacesFromRemote() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "elfo", "name": "Elfo", "size": "Media"}]`))
	}))
	defer server.Close()

	client := s.newClient(aon.Endpoints{Races: server.URL})

	races, err := client.GetRaces(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(races, 1)
	s.Equal("elfo", races[0].ID)
	s.Equal("Media", races[0].Size)
}

func (s *ClientTestSuite) TestGetRacesFallsBackToStub() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := s.newClient(aon.Endpoints{Races: server.URL})

	races, err := client.GetRaces(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(races, 2)
	s.Equal("umano", races[0].ID)
	s.Equal("halfling", races[1].ID)
}

func (s *ClientTestSuite) TestGetRacesFallsBackOnMalformedBody() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	client := s.newClient(aon.Endpoints{Races: server.URL})

	races, err := client.GetRaces(s.ctx)
	s.Require().NoError(err)
	s.Len(races, 2)
}

func (s *ClientTestSuite) TestEmptyEndpointLoadsStubDirectly() {
	client := s.newClient(aon.Endpoints{})

	classes, err := client.GetClasses(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(classes, 2)
	s.Equal("guerriero", classes[0].ID)

	// The archetype index stub is cross-referenced against class IDs.
	s.Require().Len(classes[0].Archetypes, 1)
	s.Equal("campione", classes[0].Archetypes[0].ID)
	s.Empty(classes[1].Archetypes)
}

func (s *ClientTestSuite) TestMissingStubIsUnavailable() {
	client := s.newClient(aon.Endpoints{})
	s.Require().NoError(os.Remove(filepath.Join(s.stubDir, "aon-traits.stub.json")))

	_, err := client.GetTraitsAndDrawbacks(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *ClientTestSuite) TestGetTraitsAndDrawbacks() {
	client := s.newClient(aon.Endpoints{})

	bundle, err := client.GetTraitsAndDrawbacks(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(bundle)
	s.Require().Len(bundle.Traits, 1)
	s.Require().Len(bundle.Drawbacks, 1)
	s.Equal("coraggioso", bundle.Traits[0].ID)
	s.Equal("timido", bundle.Drawbacks[0].ID)
}

func (s *ClientTestSuite) TestConcurrentCallersShareOneFetch() {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		// Hold the response long enough for every caller to pile up on the
		// in-flight fetch.
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`[{"id": "elfo", "name": "Elfo"}]`))
	}))
	defer server.Close()

	client := s.newClient(aon.Endpoints{Races: server.URL})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			races, err := client.GetRaces(s.ctx)
			s.NoError(err)
			s.Len(races, 1)
		}()
	}
	wg.Wait()

	s.Equal(int32(1), hits.Load())

	// A later call hits the session cache, not the server.
	_, err := client.GetRaces(s.ctx)
	s.Require().NoError(err)
	s.Equal(int32(1), hits.Load())
}

func (s *ClientTestSuite) TestValidateRequiresStubDir() {
	_, err := aon.New(&aon.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
