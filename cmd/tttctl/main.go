package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-device/internal/client"
	"github.com/rocketscienceinc/tictactoe-device/internal/entity"
	"github.com/rocketscienceinc/tictactoe-device/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-device/internal/transport/redis"
)

func main() {
	addr := flag.String("addr", "localhost:7070", "address of the stream server")
	watch := flag.Bool("watch", false, "print game events from redis instead of playing")
	redisAddr := flag.String("redis", "localhost:6379", "redis address used with -watch")
	channel := flag.String("channel", redis.DefaultChannel, "redis channel used with -watch")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var err error
	if *watch {
		err = runWatch(*redisAddr, *channel)
	} else {
		err = runGame(*addr)
	}

	if err != nil {
		logger.Error("tttctl failed", "error", err)
		os.Exit(1)
	}
}

func runGame(addr string) error {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	console := newConsole(bufio.NewScanner(os.Stdin), os.Stdout)

	return console.play(client.New(conn))
}

func runWatch(addr, channel string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	redisStorage, err := storage.NewRedisStorage(ctx, addr)
	if err != nil {
		return err
	}
	defer redisStorage.Close()

	events, err := redis.NewPublisher(redisStorage.Connection, channel).Subscribe(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Watching %s on %s\n", channel, addr)

	for event := range events {
		fmt.Println(formatEvent(event))
	}

	return nil
}

func formatEvent(event entity.Event) string {
	line := fmt.Sprintf("%s %-16s %-18s %s", event.At.Format(time.TimeOnly), event.Command, event.Outcome, event.Board)
	if event.Winner != "" {
		line += " winner=" + event.Winner
	}

	return line
}
