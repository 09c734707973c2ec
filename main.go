package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	cache "oep4-squirrel/cache/oep4"
	"oep4-squirrel/config"
	"oep4-squirrel/db"
	"oep4-squirrel/explorer"
	"oep4-squirrel/models"
	"oep4-squirrel/pkg/mysql"
	"oep4-squirrel/pkg/sqlite"
	"oep4-squirrel/rpc"
	"oep4-squirrel/tasks"
	"oep4-squirrel/tasks/oep4"
	"oep4-squirrel/util/log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

var pprofEnabled bool
var pprofPort int

var address string
var network string
var contracts string
var interval time.Duration

func init() {
	flag.BoolVar(&pprofEnabled, "pprof", false, "enable pprof")
	flag.IntVar(&pprofPort, "p", 6060, "pprof port number")

	flag.StringVar(&address, "address", "", "wallet address to track")
	flag.StringVar(&network, "net", string(models.MainNet), "network, MAIN_NET or TEST_NET")
	flag.StringVar(&contracts, "add", "", "comma separated OEP4 contract hashes to track at start")
	flag.DurationVar(&interval, "interval", time.Minute, "refresh interval")
}

func main() {
	flag.Parse()
	config.Load(true)
	log.Init(config.DebugMode())
	log.SetPrefix(config.GetLabel())

	if pprofEnabled {
		enablePProf()
	}

	net := models.Network(strings.ToUpper(network))
	if !net.Valid() {
		log.Fatalf("Unknown network %s", network)
	}

	if len(address) == 0 {
		log.Fatal("Wallet address must be set")
	}

	if interval <= 0 {
		log.Fatal("Refresh interval must be greater than 0")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := openDB()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	store, err := db.NewStore(ctx, conn)
	if err != nil {
		log.Fatal(err)
	}

	registry := cache.NewRegistry(ctx, store)
	ledger := oep4.NewLedger(
		registry,
		rpc.NewClient(config.GetNodes(), config.GetTimeout()),
		explorer.NewClient(config.GetExplorers(), config.GetTimeout()),
		oep4.Options{
			PageSize:      config.GetPageSize(),
			Aliases:       config.GetAliases(),
			NotifyTimeout: config.GetTimeout(),
		},
	)
	defer ledger.Close()

	if len(contracts) > 0 {
		tasks.AddTokens(ctx, ledger, net, address, strings.Split(contracts, ","))
	}

	tasks.Run(ctx, ledger, net, address, interval)
}

func openDB() (*sql.DB, error) {
	switch config.GetStorageDriver() {
	case "mysql":
		return mysql.Open(config.GetDbConnStr())
	default:
		return sqlite.Open(config.GetStoragePath())
	}
}

func enablePProf() {
	if pprofPort < 1 || pprofPort > 65535 {
		panic("Incorrect pprof port")
	}

	go func() {
		url := fmt.Sprintf("localhost:%d", pprofPort)
		log.Debug(http.ListenAndServe(url, nil))
	}()
}
