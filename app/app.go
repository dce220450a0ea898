package app

import (
	// Go Internal Packages
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Local Packages
	config "tx-injector/config"
	metrics "tx-injector/metrics"
	generator "tx-injector/services/generator"
	injector "tx-injector/services/injector"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Version is set at build time with -ldflags "-X tx-injector/app.Version=...".
var Version = "dev"

// ConfigPaths parses args and returns the config files to try, in order. Without a
// --config flag the variant's well-known file names are used.
func ConfigPaths(v config.Variant, args []string) ([]string, error) {
	cli := kingpin.New(v.Name, "Publishes synthetic transactions to Kafka.")
	cli.Version(Version)
	configPathMsg := "Path to the application config file"
	configPath := cli.Flag("config", configPathMsg).Short('c').String()

	if _, err := cli.Parse(args); err != nil {
		return nil, err
	}
	if *configPath != "" {
		return []string{*configPath}, nil
	}
	return v.ConfigFiles, nil
}

// Run loads the configuration, starts the injector and blocks until a termination signal
// arrives or the send count limit stops it. It returns the process exit code.
func Run(v config.Variant, args []string) int {
	paths, err := ConfigPaths(v, args)
	if err != nil {
		log.Printf("Error parsing flags: %v", err)
		return 1
	}

	k, appKonf, err := config.Load(v, paths)
	if err != nil {
		log.Printf("Error loading config: %v", err)
		return 1
	}
	if !appKonf.IsProdMode {
		k.Print()
	}

	logger, err := NewLogger(appKonf.Logger.Level, appKonf.Application)
	if err != nil {
		log.Printf("Error building logger: %v", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, appKonf, logger); err != nil {
		logger.Error("unexpected startup error", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, appKonf config.Config, logger *zap.Logger) error {
	var kafkaMetrics *kprom.Metrics
	opts := []injector.Opt{}

	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stopServing := context.WithCancel(gctx)
	defer stopServing()

	if appKonf.Metrics.Enabled {
		m := metrics.New(appKonf.Metrics.Namespace, appKonf.Application)
		kafkaMetrics = m.Kafka
		opts = append(opts, injector.WithRecorder(m))
		g.Go(func() error {
			return m.Serve(serveCtx, appKonf.Metrics.Addr, logger)
		})
	}

	j, err := newJournal(ctx, appKonf, logger.Named("journal"))
	if err != nil {
		return err
	}
	if j != nil {
		opts = append(opts, injector.WithJournal(j))
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := j.Close(closeCtx); err != nil {
				logger.Warn("cannot close delivery journal", zap.Error(err))
			}
		}()
	}

	ser, err := newSerializer(appKonf, logger.Named("serializer"))
	if err != nil {
		return err
	}
	producer, err := newProducer(appKonf, kafkaMetrics, logger)
	if err != nil {
		return err
	}
	gen := generator.NewTxGenerator(generatorOptions(appKonf))

	inj, err := injector.New(injectorConfig(appKonf), gen, ser, producer, logger.Named("injector"), opts...)
	if err != nil {
		_ = producer.Close(ctx)
		return err
	}

	logger.Info("transaction producer initialized",
		zap.String("topic", appKonf.Kafka.Topic),
		zap.String("format", ser.Format()),
		zap.Int("send_interval_seconds", appKonf.Producer.SendIntervalSeconds),
		zap.Int64("send_count", appKonf.Producer.SendCount),
		zap.Bool("random_data", appKonf.Data.RandomEnabled),
	)
	if err = inj.Start(); err != nil {
		return err
	}

	select {
	case <-gctx.Done():
		logger.Info("shutdown signal received")
	case <-inj.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*appKonf.Producer.ShutdownGrace()+time.Second)
	defer cancel()
	if err := inj.Stop(stopCtx); err != nil {
		logger.Warn("injector stop was interrupted", zap.Error(err))
	}
	<-inj.Done()

	stopServing()
	return g.Wait()
}
