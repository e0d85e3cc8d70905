package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadAppConfig loads and validates the application configuration. The first
// readable path wins; with no paths given, config.yml next to the binary is
// tried, and the built-in defaults are returned if no file exists.
func LoadAppConfig(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{"config.yml", "./config/config.yml"}
	}
	var data []byte
	var err error
	found := false
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			found = true
			break
		}
	}
	if !found {
		return Default(), nil
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Upstream); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Routing); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Upstream.TimeoutMS == 0 {
		cfg.Upstream.TimeoutMS = 10000
	}
	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = 256
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 30
	}
	if cfg.Routing.DefaultProvider == "" {
		cfg.Routing.DefaultProvider = "digitransit"
	}
}

// Default returns the built-in configuration: the full provider table with
// the TripGo Finland partition, a 10 second upstream timeout, and port 8080.
func Default() AppConfig {
	cfg := AppConfig{
		Routing: RoutingConfig{
			DefaultProvider: "digitransit",
			Providers: []ProviderConfig{
				{Name: "digitransit", Target: "routing-digitransit"},
				{Name: "hsl", Target: "routing-hsl"},
				{Name: "matka", Target: "routing-matka"},
				{
					Name:   "tripgo",
					Target: "routing-tripgo",
					Regions: []RegionConfig{
						{Name: "south", Suffix: "southfinland", MinLat: 59.7, MinLon: 19.0, MaxLat: 62.0, MaxLon: 32.0},
						{Name: "middle", Suffix: "middlefinland", MinLat: 62.0, MinLon: 19.0, MaxLat: 64.6, MaxLon: 32.0},
						{Name: "north", Suffix: "northfinland", MinLat: 64.6, MinLon: 19.0, MaxLat: 70.5, MaxLon: 32.0},
					},
				},
				{Name: "here", Target: "routing-here"},
			},
		},
	}
	applyDefaults(&cfg)
	return cfg
}
