package config

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ayanami-desu/blockmode/common"
)

// Creator returns a config struct filled with defaults.
type Creator func() interface{}

type configKey string

var creators = make(map[string]Creator)

// RegisterConfigCreator registers a config struct under name. Every registered
// struct is decoded from the same document, so each picks the fields it tags.
func RegisterConfigCreator(name string, creator Creator) {
	log.Debug("registering config creator ", name)
	creators[name] = creator
}

func parseJSON(data []byte) (map[string]interface{}, error) {
	result := make(map[string]interface{})
	for name, creator := range creators {
		cfg := creator()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, common.NewError("failed to parse json config for " + name).Base(err)
		}
		result[name] = cfg
	}
	return result, nil
}

func parseYAML(data []byte) (map[string]interface{}, error) {
	result := make(map[string]interface{})
	for name, creator := range creators {
		cfg := creator()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, common.NewError("failed to parse yaml config for " + name).Base(err)
		}
		result[name] = cfg
	}
	return result, nil
}

func WithJSONConfig(ctx context.Context, data []byte) (context.Context, error) {
	configs, err := parseJSON(data)
	if err != nil {
		return ctx, err
	}
	for name, cfg := range configs {
		ctx = WithConfig(ctx, name, cfg)
	}
	return ctx, nil
}

func WithYAMLConfig(ctx context.Context, data []byte) (context.Context, error) {
	configs, err := parseYAML(data)
	if err != nil {
		return ctx, err
	}
	for name, cfg := range configs {
		ctx = WithConfig(ctx, name, cfg)
	}
	return ctx, nil
}

func WithConfig(ctx context.Context, name string, cfg interface{}) context.Context {
	return context.WithValue(ctx, configKey(name), cfg)
}

// FromContext returns the config registered under name, or nil.
func FromContext(ctx context.Context, name string) interface{} {
	return ctx.Value(configKey(name))
}
