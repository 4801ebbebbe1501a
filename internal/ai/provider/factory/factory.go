package factory

import (
	"fmt"

	"github.com/lk2023060901/portfolio-chat/internal/ai/provider/goopenai"
	"github.com/lk2023060901/portfolio-chat/internal/ai/provider/openai"
	"github.com/lk2023060901/portfolio-chat/internal/ai/provider/types"
	"github.com/lk2023060901/portfolio-chat/internal/conf"
)

// FromConf converts the upstream config section into a provider config
func FromConf(c conf.UpstreamConfig) *types.Config {
	headers := make(map[string]string, len(c.Headers))
	for key, value := range c.Headers {
		headers[key] = value
	}
	return &types.Config{
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
		Headers: headers,
	}
}

// New builds the provider selected by the upstream driver
func New(c conf.UpstreamConfig) (types.Provider, error) {
	config := FromConf(c)

	switch c.Driver {
	case conf.DriverHTTP, "":
		return openai.New(config)
	case conf.DriverSDK:
		return goopenai.New(config)
	default:
		return nil, fmt.Errorf("unsupported upstream driver: %s", c.Driver)
	}
}
