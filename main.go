// Йоу, чат! Це FlowyScrolls - майнкрафт сервер із магічними сувоями!
// Це ліцензія AGPL - означає що наш код має бути відкритим, і всі модифікації теж.

// Пакет main - звідси сервер стартує і сюди ж повертається при Ctrl+C
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"go.uber.org/zap"

	"FlowyScrolls/game"
	"github.com/Tnze/go-mc/chat"
	"github.com/Tnze/go-mc/server"
)

// isDebug - флаг який можна включити при запуску через -debug
var isDebug = flag.Bool("debug", false, "Enable debug log output")

func main() {
	flag.Parse()

	// В дебаг режимі логи детальніші, але повільніші
	var logger *zap.Logger
	if *isDebug {
		logger = unwrap(zap.NewDevelopment())
	} else {
		logger = unwrap(zap.NewProduction())
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	logger.Info("Server start")
	printBuildInfo(logger)
	defer logger.Info("Server exit")

	config, err := game.LoadConfig("config.toml")
	if err != nil {
		logger.Error("Read config fail", zap.Error(err))
		return
	}

	playerList := server.NewPlayerList(config.MaxPlayers)
	serverInfo := server.NewPingInfo(
		"FlowyScrolls "+server.ProtocolName,
		server.ProtocolVersion,
		chat.Text(config.MessageOfTheDay),
		nil,
	)

	g, err := game.NewGame(logger, config, playerList, serverInfo)
	if err != nil {
		logger.Error("Init game fail", zap.Error(err))
		return
	}

	s := server.Server{
		Logger: zap.NewStdLog(logger),
		ListPingHandler: struct {
			*server.PlayerList
			*server.PingInfo
		}{playerList, serverInfo},
		LoginHandler: &server.MojangLoginHandler{
			OnlineMode:           config.OnlineMode,
			EnforceSecureProfile: config.EnforceSecureProfile,
			// Пакети більші за поріг стискаються
			Threshold:    config.NetworkCompressionThreshold,
			LoginChecker: playerList,
		},
		GamePlay: g,
	}

	// Ctrl+C або SIGTERM: зупиняємо сувої і зберігаємо світ перед виходом
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Start listening", zap.String("address", config.ListenAddress))
	listenErr := make(chan error, 1)
	go func() { listenErr <- s.Listen(config.ListenAddress) }()

	select {
	case err := <-listenErr:
		logger.Error("Server listening error", zap.Error(err))
	case <-ctx.Done():
		logger.Info("Shutting down")
	}
	g.Close()
}

// printBuildInfo виводить інформацію про збірку
func printBuildInfo(logger *zap.Logger) {
	binaryInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	settings := make(map[string]string)
	for _, v := range binaryInfo.Settings {
		settings[v.Key] = v.Value
	}
	logger.Debug("Build info", zap.Any("settings", settings))
}

// unwrap - якщо є помилка, відразу панікуємо
func unwrap[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
