// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"lumen/internal/config"
	"lumen/internal/database"
	"lumen/internal/middleware"
	"lumen/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "Number of member accounts to create")
	posts := flag.Int("posts", 3, "Posts per user")
	clean := flag.Bool("clean", false, "Empty all tables before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	preset := flag.String("preset", "", "Path to a YAML preset file (overrides the other flags)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.InitMiddleware(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		Users:        *users,
		PostsPerUser: *posts,
		Clean:        *clean,
		RandSeed:     *randSeed,
	}
	if *preset != "" {
		opts, err = seed.LoadPreset(*preset)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
		log.Printf("Applying preset %s", *preset)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
