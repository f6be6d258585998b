package di

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssargent/bitspect/pkg/api"
)

type stubFactory struct{}

func (stubFactory) CreateServerStarter() api.ServerStarter { return stubStarter{} }

type stubStarter struct{}

func (stubStarter) StartServer(context.Context, api.ServerConfig, *slog.Logger) error { return nil }

func TestContainer(t *testing.T) {
	c := NewContainer()
	assert.IsType(t, &api.DefaultServerFactory{}, c.GetServerFactory())

	c.SetServerFactory(stubFactory{})
	assert.IsType(t, stubFactory{}, c.GetServerFactory())
}
