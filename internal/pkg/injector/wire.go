//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/lk2023060901/portfolio-chat/internal/chat/biz"
	"github.com/lk2023060901/portfolio-chat/internal/chat/service"
	"github.com/lk2023060901/portfolio-chat/internal/conf"
	"github.com/lk2023060901/portfolio-chat/internal/pkg/logger"
	"github.com/lk2023060901/portfolio-chat/internal/resume"
	"github.com/lk2023060901/portfolio-chat/internal/server"
)

// ProviderSet is the Wire provider set for all dependencies
var ProviderSet = wire.NewSet(
	// Data layer
	dataProviderSet,

	// Upstream and resume
	chatDependencySet,

	// Use cases
	useCaseProviderSet,

	// HTTP services
	httpServiceProviderSet,

	// Servers
	serverProviderSet,
)

var dataProviderSet = wire.NewSet(
	provideData,
)

var chatDependencySet = wire.NewSet(
	provideCompletionProvider,
	provideResumeExtractor,
	wire.Bind(new(biz.ResumeExtractor), new(*resume.Extractor)),
)

var useCaseProviderSet = wire.NewSet(
	provideChatUseCase,
)

var httpServiceProviderSet = wire.NewSet(
	service.NewChatService,
)

var serverProviderSet = wire.NewSet(
	provideLimiter,
	server.NewHTTPServer,
)

// InitializeApp initializes the application with Wire
func InitializeApp(config *conf.Config, log *logger.Logger) (*App, func(), error) {
	wire.Build(ProviderSet, newApp)
	return nil, nil, nil
}
