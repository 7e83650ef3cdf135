package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/tcassar-diss/sockfilter/capture"
	"github.com/tcassar-diss/sockfilter/config"
	"github.com/tcassar-diss/sockfilter/filter"
)

func main() {
	l, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to get zap production logger: %v", err)
	}

	logger := l.Sugar()
	defer l.Sync()

	app := &cli.App{
		Name:  "sockfilter",
		Usage: "attach classic BPF packet filters to sockets",
		Commands: []*cli.Command{
			watchCommand(logger),
			lockCommand(logger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatalw("sockfilter failed", "err", err)
	}
}

func watchCommand(logger *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "listen on a UDP address, attach a filter, and log traffic that passes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Usage:    "path to a TOML filter definition",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "listen",
				Value: "127.0.0.1:9000",
				Usage: "UDP address to listen on",
			},
			&cli.BoolFlag{
				Name:  "lock",
				Usage: "lock the filter after attaching; it cannot be replaced until the socket closes",
			},
		},
		Action: func(cCtx *cli.Context) error {
			return watch(cCtx, logger)
		},
	}
}

func watch(cCtx *cli.Context, logger *zap.SugaredLogger) error {
	cfg, err := config.Load(cCtx.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load filter config: %w", err)
	}

	prog, err := cfg.Program()
	if err != nil {
		return fmt.Errorf("failed to build filter program: %w", err)
	}

	conn, err := net.ListenPacket("udp", cCtx.String("listen"))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	defer conn.Close()

	c, err := capture.New(logger, conn, prog)
	if err != nil {
		return fmt.Errorf("failed to start capture: %w", err)
	}

	if cCtx.Bool("lock") {
		if err := c.Lock(); err != nil {
			return fmt.Errorf("failed to lock filter: %w", err)
		}

		logger.Infow("filter locked", "addr", conn.LocalAddr().String())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Infow("capture running",
		"addr", conn.LocalAddr().String(),
		"program", cfg.Kind,
		"instructions", prog.Len(),
	)

	if err := c.Run(ctx); err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	stats := c.Stats()
	logger.Infow("capture finished", "packets", stats.Packets, "bytes", stats.Bytes)

	return nil
}

func lockCommand(logger *zap.SugaredLogger) *cli.Command {
	return &cli.Command{
		Name:  "lock",
		Usage: "lock a fresh socket's filter state and show that attach then fails",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Value: "127.0.0.1:9000",
				Usage: "UDP address to listen on",
			},
		},
		Action: func(cCtx *cli.Context) error {
			conn, err := net.ListenPacket("udp", cCtx.String("listen"))
			if err != nil {
				return fmt.Errorf("failed to listen: %w", err)
			}
			defer conn.Close()

			sc, ok := conn.(syscall.Conn)
			if !ok {
				return capture.ErrNoRawConn
			}

			if err := filter.LockConn(sc); err != nil {
				return fmt.Errorf("failed to lock filter: %w", err)
			}

			logger.Infow("filter state locked", "addr", conn.LocalAddr().String())

			if err := filter.AttachConn(sc, filter.DropAll()); err != nil {
				logger.Infow("attach after lock rejected, as expected", "err", err)
			} else {
				logger.Warnw("attach after lock succeeded; platform has no filter locking")
			}

			return nil
		},
	}
}
