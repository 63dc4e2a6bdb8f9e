// Package main applies the option store schema.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cory-johannsen/underbrush/internal/config"
	"github.com/cory-johannsen/underbrush/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/underbrush.yaml", "path to configuration file")
	dir := flag.String("migrations", "migrations", "directory holding the migration files")
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	flag.Parse()

	v := config.Defaults()
	v.SetConfigFile(*configPath)
	if err := v.MergeInConfig(); err != nil {
		log.Fatalf("reading config: %v", err)
	}

	var dbCfg config.DatabaseConfig
	if err := v.Sub("database").Unmarshal(&dbCfg); err != nil {
		log.Fatalf("parsing database config: %v", err)
	}

	var down bool
	n := *steps
	switch *direction {
	case "up":
	case "down":
		down, n = true, -n
	default:
		log.Fatalf("invalid direction %q: must be 'up' or 'down'", *direction)
	}

	res, err := postgres.Migrate(dbCfg.DSN(), *dir, n, down)
	if err != nil {
		log.Fatal(err)
	}

	elapsed := time.Since(start)
	if res.NoChange {
		fmt.Fprintf(os.Stdout, "no changes (version=%d dirty=%v) [%s]\n", res.Version, res.Dirty, elapsed)
	} else {
		fmt.Fprintf(os.Stdout, "migrated %s to version=%d dirty=%v [%s]\n", *direction, res.Version, res.Dirty, elapsed)
	}
}
