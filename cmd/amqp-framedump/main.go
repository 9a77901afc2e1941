// Command amqp-framedump replays a recorded AMQP 0-9-1 frame stream through
// the command assembler and prints one line per assembled command.
//
// Input is either a raw wire stream (as captured from a socket, without the
// protocol header) or a CBOR capture file written by -record.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/maxpert/amqp-go-client/capture"
	"github.com/maxpert/amqp-go-client/channel"
	"github.com/maxpert/amqp-go-client/command"
	"github.com/maxpert/amqp-go-client/config"
	"github.com/maxpert/amqp-go-client/logging"
	"github.com/maxpert/amqp-go-client/metrics"
	"github.com/maxpert/amqp-go-client/protocol"
)

type options struct {
	configFile  string
	input       string
	capture     string
	record      string
	metricsAddr string
	logLevel    string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("amqp-framedump", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&opts.input, "input", "-", "Raw AMQP frame stream to replay, - for stdin")
	fs.StringVar(&opts.capture, "capture", "", "CBOR capture file to replay instead of -input")
	fs.StringVar(&opts.record, "record", "", "Write every frame read to this capture file")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while replaying")
	fs.StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "amqp-framedump: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Address = opts.metricsAddr
	}
	if opts.record != "" {
		cfg.Channel.CapturePath = opts.record
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, _, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	src, closeSrc, err := openSource(opts, stdin, cfg.Channel.FrameMax)
	if err != nil {
		return err
	}
	defer closeSrc()

	var recording *capture.File
	if cfg.Channel.CapturePath != "" {
		recording, err = capture.Create(cfg.Channel.CapturePath)
		if err != nil {
			return err
		}
		src = capture.NewRecorder(src, recording.Writer)
	}

	chOpts := []channel.Option{
		channel.WithLogger(logger),
		channel.WithFrameMax(cfg.Channel.FrameMax),
		channel.WithDeliveryTracking(cfg.Channel.TrackDeliveries),
	}

	var srv *metrics.Server
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		chOpts = append(chOpts, channel.WithMetrics(metrics.NewCollector(cfg.Metrics.Namespace, reg)))
		srv = metrics.NewServer(cfg.Metrics.Address, reg)
	}

	commands := 0
	mux := channel.NewMux(io.Discard, func(cmd *command.Command) error {
		commands++
		fmt.Fprintln(stdout, describe(cmd))
		return nil
	}, chOpts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if srv != nil {
			defer stopServer(srv, logger)
		}
		return mux.Run(gctx, src)
	})
	if srv != nil {
		g.Go(srv.Start)
		logger.Info("Metrics server listening", zap.String("addr", srv.Addr()))
	}

	runErr := g.Wait()
	if recording != nil {
		if err := recording.Close(); err != nil && runErr == nil {
			runErr = err
		}
		logger.Info("Capture written",
			zap.String("path", recording.Path()),
			zap.Int("frames", recording.Count()))
	}

	logger.Info("Replay finished",
		zap.Int("commands", commands),
		zap.Int("channels", mux.Channels()))

	if errors.Is(runErr, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return runErr
}

func openSource(opts *options, stdin io.Reader, frameMax uint32) (protocol.FrameReader, func(), error) {
	if opts.capture != "" {
		f, err := os.Open(opts.capture)
		if err != nil {
			return nil, nil, fmt.Errorf("opening capture: %w", err)
		}
		return capture.NewReader(f), func() { f.Close() }, nil
	}

	if opts.input == "" || opts.input == "-" {
		return protocol.NewReader(stdin, frameMax), func() {}, nil
	}
	f, err := os.Open(opts.input)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return protocol.NewReader(f, frameMax), func() { f.Close() }, nil
}

func stopServer(srv *metrics.Server, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Warn("Failed to stop metrics server", zap.Error(err))
	}
}

func describe(cmd *command.Command) string {
	line := fmt.Sprintf("channel=%d method=%s", cmd.Channel, cmd.Method.Name())

	switch m := cmd.Method.(type) {
	case *protocol.BasicDeliverMethod:
		line += fmt.Sprintf(" consumer=%q tag=%d exchange=%q routing_key=%q",
			m.ConsumerTag, m.DeliveryTag, m.Exchange, m.RoutingKey)
	case *protocol.BasicGetOKMethod:
		line += fmt.Sprintf(" tag=%d exchange=%q routing_key=%q remaining=%d",
			m.DeliveryTag, m.Exchange, m.RoutingKey, m.MessageCount)
	case *protocol.BasicReturnMethod:
		line += fmt.Sprintf(" reply=%d %q exchange=%q routing_key=%q",
			m.ReplyCode, m.ReplyText, m.Exchange, m.RoutingKey)
	case *protocol.ChannelCloseMethod:
		line += fmt.Sprintf(" reply=%d %q cause=%s",
			m.ReplyCode, m.ReplyText, protocol.MethodName(protocol.MethodKey(m.CauseClassID, m.CauseMethodID)))
	}

	if cmd.Header != nil {
		line += fmt.Sprintf(" body=%d", len(cmd.Body))
	}
	return line
}
