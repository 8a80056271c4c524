// Command seed fills the database with demo users and tweets.
package main

import (
	"flag"
	"log"

	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/seed"
)

func main() {
	users := flag.Int("users", seed.DefaultProfile.Users, "Number of users to create")
	tweets := flag.Int("tweets", seed.DefaultProfile.Tweets, "Number of tweets to create")
	clean := flag.Bool("clean", seed.DefaultProfile.Clean, "Clean database before seeding")
	profilePath := flag.String("profile", "", "YAML seed profile (overrides other flags)")
	flag.Parse()

	profile := seed.Profile{Users: *users, Tweets: *tweets, Clean: *clean}
	if *profilePath != "" {
		var err error
		profile, err = seed.LoadProfile(*profilePath)
		if err != nil {
			log.Fatalf("Failed to load seed profile: %v", err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	seeder, err := seed.NewSeeder(db)
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	seeded, err := seeder.Run(profile)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users and %d tweets (every account's password is %q)",
		len(seeded), profile.Tweets, seed.DemoPassword)
}
