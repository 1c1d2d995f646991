package main

import (
	"log"
	"os"

	"github.com/pulseportal/pulse/core"
	"github.com/pulseportal/pulse/storage/database"
	pgdb "github.com/pulseportal/pulse/storage/database/pg"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	if !conf.Database.IsConfigured() {
		logger.Fatal("no database configured; the admin CLI requires one")
	}

	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()

	cli := commandLine{
		db:      db,
		usrRepo: pgdb.NewUserRepository(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
