package internal

import "go.uber.org/zap"

// NewLogger builds a named zap logger. Development environments get the
// console encoder, everything else the production JSON encoder.
func NewLogger(env, name string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
