package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/td0m/workday/internal/config"
	"github.com/td0m/workday/pkg/dailylog"
	"github.com/td0m/workday/pkg/logger"
	"github.com/td0m/workday/pkg/persist"
)

var dataDir = flag.String("dir", "", "data directory (default ~/.workday)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*dataDir)
	check(err)
	check(os.MkdirAll(cfg.DataDir, 0o755))

	log, err := logger.New(cfg.LogFile(), cfg.LogLevel)
	if err != nil {
		log = logger.Nop()
	}
	defer log.Sync()

	store, err := persist.InJSON(cfg.TasksFile())
	check(err)

	days, err := dailylog.Open(cfg.DailyLogsFile())
	check(err)
	defer days.Close()

	env := &env{
		cfg:   cfg,
		log:   log,
		store: store,
		days:  days,
		now:   time.Now(),
	}

	args := flag.Args()
	cmd := "tui"
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "add":
		err = env.add(args)
	case "list":
		err = env.list(args)
	case "done":
		err = env.done(args)
	case "start":
		err = env.start(args)
	case "stop":
		err = env.stop(args)
	case "reopen":
		err = env.reopen(args)
	case "rm":
		err = env.remove(args)
	case "history":
		err = env.history(args)
	case "plan":
		err = env.plan(args)
	case "archive":
		err = env.archive(args)
	case "tui":
		err = env.tui()
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}
	if err != nil {
		log.Error("command failed", zap.String("command", cmd), zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
