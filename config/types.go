package config

// ServerConfig contains the HTTP server configuration.
type ServerConfig struct {
	Port           int      `yaml:"port" validate:"gt=0"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// UpstreamConfig configures the transport used to invoke provider functions.
type UpstreamConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// RegionConfig is one bounding box of a partitioned provider. Order in the
// regions list is significant: the first matching box wins.
type RegionConfig struct {
	Name   string  `yaml:"name" validate:"required"`
	Suffix string  `yaml:"suffix" validate:"required"`
	MinLat float64 `yaml:"minLat"`
	MinLon float64 `yaml:"minLon"`
	MaxLat float64 `yaml:"maxLat"`
	MaxLon float64 `yaml:"maxLon"`
}

// ProviderConfig binds a provider name to the base name of the upstream
// function serving it. Providers with a regions list are partitioned; the
// selected region's suffix is appended to the target.
type ProviderConfig struct {
	Name    string         `yaml:"name" validate:"required"`
	Target  string         `yaml:"target" validate:"required"`
	Regions []RegionConfig `yaml:"regions"`
}

// RoutingConfig is the provider table plus the default provider used when a
// request does not name one.
type RoutingConfig struct {
	DefaultProvider string           `yaml:"defaultProvider" validate:"required"`
	Providers       []ProviderConfig `yaml:"providers" validate:"required,dive"`
}

// CacheConfig controls the normalized plan response cache.
type CacheConfig struct {
	Size       int `yaml:"size" validate:"gte=0"`
	TTLSeconds int `yaml:"ttlSeconds" validate:"gte=0"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Routing  RoutingConfig  `yaml:"routing"`
	Cache    CacheConfig    `yaml:"cache"`
}

// Provider returns the provider entry with the given name.
func (c AppConfig) Provider(name string) (ProviderConfig, bool) {
	for _, p := range c.Routing.Providers {
		if p.Name == name {
			return p, true
		}
	}
	return ProviderConfig{}, false
}
