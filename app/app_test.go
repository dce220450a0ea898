package app

import (
	// Go Internal Packages
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	// Local Packages
	config "tx-injector/config"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loadTestConfig(t *testing.T, v config.Variant, body string) config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	_, conf, err := config.Load(v, []string{path})
	require.NoError(t, err)
	return conf
}

func TestConfigPaths(t *testing.T) {
	paths, err := ConfigPaths(config.JSONVariant, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"application-json.yml", "application.yml"}, paths)

	paths, err = ConfigPaths(config.ProtobufVariant, []string{"-c", "/etc/injector.yml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/etc/injector.yml"}, paths)

	_, err = ConfigPaths(config.ProtobufVariant, []string{"--bogus"})
	assert.Error(t, err)
}

func TestRunFailsWithoutConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yml")
	assert.Equal(t, 1, Run(config.ProtobufVariant, []string{"--config", missing}))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", "transaction-producer")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	_, err = NewLogger("chatty", "transaction-producer")
	assert.Error(t, err)
}

func TestMappings(t *testing.T) {
	conf := loadTestConfig(t, config.ProtobufVariant, "producer:\n  send_interval_seconds: 2\n  send_count: 7\n")

	ic := injectorConfig(conf)
	assert.Equal(t, "Transactions", ic.Topic)
	assert.Equal(t, 2*time.Second, ic.Interval)
	assert.Equal(t, int64(7), ic.SendCount)
	assert.Equal(t, 10*time.Second, ic.ShutdownGrace)

	pc := producerConfig(conf)
	assert.Equal(t, []string{"localhost:9092"}, pc.Brokers)
	assert.Equal(t, "transaction-producer", pc.ClientID)
	assert.Equal(t, "snappy", pc.Compression)
	assert.Equal(t, 10*time.Millisecond, pc.Linger)
	assert.Equal(t, 30*time.Second, pc.RequestTimeout)

	gc := generatorOptions(conf)
	assert.True(t, gc.RandomEnabled)
	assert.Equal(t, "CMD-", gc.OrderIDPrefix)
}

func TestNewProducerFromConfig(t *testing.T) {
	cases := []struct {
		name    string
		variant config.Variant
		body    string
	}{
		{"protobuf defaults", config.ProtobufVariant, ""},
		{"json defaults", config.JSONVariant, ""},
		{"protobuf without idempotence", config.ProtobufVariant, "producer:\n  enable_idempotence: false\n"},
		{"json without idempotence", config.JSONVariant, "producer:\n  enable_idempotence: false\n  acks: \"1\"\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			conf := loadTestConfig(t, c.variant, "kafka:\n  brokers:\n    - \"127.0.0.1:1\"\n"+c.body)

			p, err := newProducer(conf, nil, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, c.variant.ClientID, p.Config.ClientID)

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			assert.NoError(t, p.Close(ctx))
		})
	}
}

func TestNewSerializer(t *testing.T) {
	jsonConf := loadTestConfig(t, config.JSONVariant, "")
	s, err := newSerializer(jsonConf, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, s.Format())

	pbConf := loadTestConfig(t, config.ProtobufVariant, "")
	s, err = newSerializer(pbConf, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, config.FormatProtobuf, s.Format())
}

func TestNewJournalDisabled(t *testing.T) {
	conf := loadTestConfig(t, config.ProtobufVariant, "")
	j, err := newJournal(context.Background(), conf, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, j)
}
