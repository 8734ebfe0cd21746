package cryptoprov

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xcsr", "cryptoprov")

// DefaultManufacturer is the provider used when no configuration is specified
const DefaultManufacturer = "inmem"

// ProviderLoader is interface for loading provider by manufacturer
type ProviderLoader func(cfg TokenConfig) (Provider, error)

var (
	lockLoaders sync.RWMutex
	loaders     = make(map[string]ProviderLoader)
)

// Register provider loader by manufacturer
func Register(manufacturer string, loader ProviderLoader) error {
	lockLoaders.Lock()
	defer lockLoaders.Unlock()

	if _, ok := loaders[manufacturer]; ok {
		return errors.Errorf("already registered: %s", manufacturer)
	}

	loaders[manufacturer] = loader

	return nil
}

// Registered returns sorted list of registered providers
func Registered() []string {
	lockLoaders.RLock()
	defer lockLoaders.RUnlock()

	list := []string{}
	for m := range loaders {
		list = append(list, m)
	}
	sort.Strings(list)
	return list
}

// LoadProvider loads a provider from the token configuration file.
// If configLocation is empty, the DefaultManufacturer provider is loaded.
func LoadProvider(configLocation string) (Provider, error) {
	var tc TokenConfig
	if configLocation == "" {
		tc = &tokenConfig{Man: DefaultManufacturer}
	} else {
		var err error
		tc, err = LoadTokenConfig(configLocation)
		if err != nil {
			return nil, err
		}
	}

	return NewProvider(tc)
}

// NewProvider returns a provider for the token configuration
func NewProvider(tc TokenConfig) (Provider, error) {
	manufacturer := tc.Manufacturer()

	lockLoaders.RLock()
	loader, ok := loaders[manufacturer]
	lockLoaders.RUnlock()
	if !ok {
		return nil, errors.Errorf("provider not registered: %s", manufacturer)
	}

	prov, err := loader(tc)
	if err != nil {
		return nil, errors.WithMessagef(err, "load provider: %s", manufacturer)
	}

	logger.KV(xlog.DEBUG, "manufacturer", prov.Manufacturer(), "model", prov.Model())
	return prov, nil
}
