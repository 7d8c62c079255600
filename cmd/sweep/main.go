package main

import (
	"context"
	"flag"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	log = logrus.New()

	difficulty string
	seed       uint64
	logPath    string
)

func init() {
	flag.StringVar(&difficulty, "difficulty", "beginner", "beginner, intermediate, expert or ROWS:COLS:MINES")
	flag.StringVar(&difficulty, "d", "beginner", "difficulty (shorthand)")
	flag.Uint64Var(&seed, "seed", 0, "random seed, 0 picks one")
	flag.StringVar(&logPath, "log", "", "also write logs to this rotating file")
}

func setupLogging() {
	logLevel := logrus.WarnLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if logPath == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
	})
	if err != nil {
		log.Fatal("unable to open log file: ", err)
	}
	log.SetLevel(logrus.DebugLevel)
	log.AddHook(hook)
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()
	setupLogging()

	d, err := mines.ParseDifficulty(difficulty)
	if err != nil {
		log.Fatalf("unable to parse difficulty %q: %s", difficulty, err)
	}
	if seed == 0 {
		seed = new(maphash.Hash).Sum64()
	}
	log.WithField("seed", seed).Debug("starting up")

	engine := mines.NewEngine(rand.New(rand.NewPCG(seed, seed)))
	session, err := engine.NewSession(d)
	if err != nil {
		log.Fatal("unable to start a game: ", err)
	}

	c := &client{
		log:     log,
		engine:  engine,
		out:     os.Stdout,
		session: session,
	}
	if err := c.run(mainCtx, os.Stdin, time.Second); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
