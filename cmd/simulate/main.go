package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"genesis_reels/internal/config"
	"genesis_reels/internal/config/env"
	"genesis_reels/internal/logger"
	"genesis_reels/internal/simulation"

	jsoniter "github.com/json-iterator/go"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

var (
	flagConf    string
	flagSpins   int
	flagSeed    uint
	flagWorkers int
	flagBet     int64
	flagNoFree  bool
)

func init() {
	flag.StringVar(&flagConf, "conf", "", "game config path, eg: -conf config.yaml")
	flag.IntVar(&flagSpins, "spins", 100000, "number of base spins")
	flag.UintVar(&flagSeed, "seed", 1, "root seed of the run")
	flag.IntVar(&flagWorkers, "workers", 0, "worker count, 0 - SIM_WORKERS or GOMAXPROCS")
	flag.Int64Var(&flagBet, "bet", 0, "bet in credits, 0 - bet_unit from config")
	flag.BoolVar(&flagNoFree, "no-free", false, "skip free spins sessions")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = config.Load(".env")

	logCfg, err := env.NewLogConfig()
	if err != nil {
		return err
	}
	log := logger.Must(logCfg)
	defer func() { _ = log.Sync() }()

	path := flagConf
	if path == "" {
		path = env.CascadeConfigPath()
	}
	cascadeCfg, err := env.NewCascadeConfigFromYAML(path)
	if err != nil {
		return err
	}
	simCfg, err := env.NewSimulationConfig()
	if err != nil {
		return err
	}

	workers := flagWorkers
	if workers <= 0 {
		workers = simCfg.Workers()
	}
	bet := flagBet
	if bet <= 0 {
		bet = cascadeCfg.BetUnit().IntPart()
	}
	if flagSeed > uint(^uint32(0)) {
		return fmt.Errorf("seed %d does not fit in 32 bits", flagSeed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("simulation started",
		zap.String("config", path),
		zap.Int("spins", flagSpins),
		zap.Uint("seed", flagSeed),
		zap.Int("workers", workers),
	)
	rep, err := simulation.Run(ctx, cascadeCfg.Game(), simulation.Options{
		Spins:         flagSpins,
		Seed:          uint32(flagSeed),
		Workers:       workers,
		Bet:           bet,
		PlayFreeSpins: !flagNoFree,
		StepLimit:     cascadeCfg.SessionStepLimit(),
	}, log)
	if err != nil {
		return err
	}

	out, err := jsoniter.MarshalIndent(struct {
		simulation.Report
		RTP     float64 `json:"rtp"`
		HitRate float64 `json:"hitRate"`
	}{rep, rep.RTP(), rep.HitRate()}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
