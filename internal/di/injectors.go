//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"smsgate/internal"
	"smsgate/internal/controllers"
	"smsgate/internal/poller"
	"smsgate/internal/poller/interfaces"
	"smsgate/internal/providers"
	"smsgate/internal/structures"
	"smsgate/internal/transport"
)

// InitApp wires the daemon: scheduler, HTTP surface, metrics.
func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		poller.NewZstdCompressor,
		poller.NewStateStore,
		poller.NewArchiveStore,
		poller.NewCompactor,
		poller.NewCycle,
		poller.NewScheduler,
		transport.NewClient,
		controllers.NewStatusController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

// InitCycle wires a one-shot poll cycle for the check command.
func InitCycle(cfg *structures.CliFlags) (*poller.Cycle, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		poller.NewStateStore,
		poller.NewArchiveStore,
		poller.NewCycle,
		transport.NewClient,
	)

	return nil, nil
}

// InitStateStore wires the bare state store for the status and reset commands.
func InitStateStore(cfg *structures.CliFlags) (*poller.StateStore, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,

		poller.NewStateStore,
	)

	return nil, nil
}

// InitTransport wires the bare device client for the list command.
func InitTransport(cfg *structures.CliFlags) (interfaces.TransportInterface, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,

		transport.NewClient,
	)

	return nil, nil
}
