package config

import (
	// Go Internal Packages
	"strings"

	// Local Packages
	errors "tx-injector/errors"

	// External Packages
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// EnvPrefix marks environment variables that override the config file.
// TXGEN_KAFKA__TOPIC=foo overrides kafka.topic.
const EnvPrefix = "TXGEN_"

// Variant carries what differs between the two producer binaries.
type Variant struct {
	Name        string
	Format      string
	ClientID    string
	Topic       string
	ConfigFiles []string
}

var (
	ProtobufVariant = Variant{
		Name:        "transaction-producer",
		Format:      FormatProtobuf,
		ClientID:    "transaction-producer",
		Topic:       "Transactions",
		ConfigFiles: []string{"application.yml"},
	}
	JSONVariant = Variant{
		Name:        "transaction-json-producer",
		Format:      FormatJSON,
		ClientID:    "transaction-json-producer",
		Topic:       "TransactionsJSON",
		ConfigFiles: []string{"application-json.yml", "application.yml"},
	}
)

func (v Variant) defaults() map[string]interface{} {
	return map[string]interface{}{
		"application":     v.Name,
		"format":          v.Format,
		"kafka.client_id": v.ClientID,
		"kafka.topic":     v.Topic,
	}
}

// Load merges the default config, the variant defaults, the first readable file out of
// paths and the environment, in that order. It fails when no file in paths can be read.
func Load(v Variant, paths []string) (*koanf.Koanf, Config, error) {
	var conf Config
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(DefaultConfig), yaml.Parser()); err != nil {
		return nil, conf, errors.E(errors.Config, "cannot parse default config", err)
	}
	if err := k.Load(confmap.Provider(v.defaults(), "."), nil); err != nil {
		return nil, conf, errors.E(errors.Config, "cannot apply variant defaults", err)
	}

	var lastErr error
	loaded := false
	for _, path := range paths {
		if lastErr = k.Load(file.Provider(path), yaml.Parser()); lastErr == nil {
			loaded = true
			break
		}
	}
	if !loaded {
		if lastErr == nil {
			lastErr = errors.EmptyParamErr("config")
		}
		return nil, conf, errors.ConfigFileErr(paths, lastErr)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, conf, errors.E(errors.Config, "cannot read environment overrides", err)
	}

	if err = k.Unmarshal("", &conf); err != nil {
		return nil, conf, errors.E(errors.Config, "cannot unmarshal config", err)
	}
	if err = conf.Validate(); err != nil {
		return nil, conf, errors.ValidationFailedErr(err)
	}
	return k, conf, nil
}
