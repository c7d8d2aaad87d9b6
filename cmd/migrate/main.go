package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	// Get command
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [up|drop|seed|status]")
		os.Exit(1)
	}

	command := os.Args[1]

	// Connect to database
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	case "status":
		if err := showStatus(ctx, conn); err != nil {
			log.Fatalf("Failed to read status: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [up|drop|seed|status]")
		os.Exit(1)
	}
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		// Profile rows are only ever inserted by the provisioning transaction;
		// the primary key carries the duplicate-signup conflict (23505).
		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id VARCHAR(255) PRIMARY KEY,
			email VARCHAR(255) NOT NULL DEFAULT '',
			display_name VARCHAR(255) NOT NULL,
			photo_url TEXT NOT NULL DEFAULT '',
			is_pro_user BOOLEAN NOT NULL DEFAULT false,
			onboarding_complete BOOLEAN NOT NULL DEFAULT false,
			is_anonymous BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS leaderboard_entries (
			user_id VARCHAR(255) PRIMARY KEY REFERENCES user_profiles(user_id) ON DELETE CASCADE,
			display_name VARCHAR(255) NOT NULL,
			photo_url TEXT NOT NULL DEFAULT '',
			total_points BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Followed teams/leagues as jsonb maps keyed by team/league id
		`CREATE TABLE IF NOT EXISTS favorites (
			user_id VARCHAR(255) PRIMARY KEY REFERENCES user_profiles(user_id) ON DELETE CASCADE,
			teams JSONB NOT NULL DEFAULT '{}'::jsonb,
			leagues JSONB NOT NULL DEFAULT '{}'::jsonb,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_leaderboard_entries_ranking ON leaderboard_entries(total_points DESC, created_at ASC)`,
		`CREATE INDEX IF NOT EXISTS idx_user_profiles_email ON user_profiles(email)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", firstLine(query))
	}

	return nil
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS favorites CASCADE`,
		`DROP TABLE IF EXISTS leaderboard_entries CASCADE`,
		`DROP TABLE IF EXISTS user_profiles CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	// Demo accounts, shaped exactly like provisioning would write them
	profiles := `
		INSERT INTO user_profiles (user_id, email, display_name, photo_url, onboarding_complete) VALUES
		('demo-user-1', 'demo1@example.com', 'Fan demo-', '', true),
		('demo-user-2', 'demo2@example.com', 'แฟนบอล demo-', '', true),
		('demo-user-3', 'demo3@example.com', 'Torcedor demo-', '', false)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			updated_at = NOW()
	`
	if _, err := conn.Exec(ctx, profiles); err != nil {
		return fmt.Errorf("failed to seed profiles: %w", err)
	}
	fmt.Println("  Seeded 3 profiles")

	entries := `
		INSERT INTO leaderboard_entries (user_id, display_name, photo_url, total_points) VALUES
		('demo-user-1', 'Fan demo-', '', 120),
		('demo-user-2', 'แฟนบอล demo-', '', 310),
		('demo-user-3', 'Torcedor demo-', '', 45)
		ON CONFLICT (user_id) DO UPDATE SET
			total_points = EXCLUDED.total_points,
			updated_at = NOW()
	`
	if _, err := conn.Exec(ctx, entries); err != nil {
		return fmt.Errorf("failed to seed leaderboard entries: %w", err)
	}
	fmt.Println("  Seeded 3 leaderboard entries")

	favorites := `
		INSERT INTO favorites (user_id, teams, leagues) VALUES
		('demo-user-1', '{"team-arsenal": true}'::jsonb, '{"league-epl": true}'::jsonb),
		('demo-user-2', '{"team-buriram": true, "team-port": true}'::jsonb, '{"league-thai1": true}'::jsonb),
		('demo-user-3', '{}'::jsonb, '{}'::jsonb)
		ON CONFLICT (user_id) DO UPDATE SET
			teams = EXCLUDED.teams,
			leagues = EXCLUDED.leagues,
			updated_at = NOW()
	`
	if _, err := conn.Exec(ctx, favorites); err != nil {
		return fmt.Errorf("failed to seed favorites: %w", err)
	}
	fmt.Println("  Seeded 3 favorites records")

	return nil
}

func showStatus(ctx context.Context, conn *pgx.Conn) error {
	tables := []string{"user_profiles", "leaderboard_entries", "favorites"}

	for _, table := range tables {
		var exists bool
		err := conn.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)
		`, table).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}

		if !exists {
			fmt.Printf("  %s: missing\n", table)
			continue
		}

		var count int64
		if err := conn.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		fmt.Printf("  %s: %d rows\n", table, count)
	}

	return nil
}

func firstLine(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
