package database

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Migration is one versioned schema step, with SQL for both directions.
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
}

func (m *Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}

//go:embed migrations/*.sql
var migrationFS embed.FS

var migrations = mustLoadMigrations()

// mustLoadMigrations pairs every NNNNNN_name.up.sql in the embedded
// directory with its .down.sql twin. The scripts are embedded at build
// time, so a malformed pair is a programmer error and panics on startup.
func mustLoadMigrations() []Migration {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		panic(fmt.Sprintf("read embedded migrations: %v", err))
	}

	var out []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		base := strings.TrimSuffix(name, ".up.sql")
		versionRaw, migName, ok := strings.Cut(base, "_")
		if !ok {
			panic(fmt.Sprintf("migration %q does not follow NNNNNN_name.up.sql", name))
		}
		version, err := strconv.Atoi(versionRaw)
		if err != nil {
			panic(fmt.Sprintf("migration %q has a non-numeric version", name))
		}
		up, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			panic(fmt.Sprintf("read migration %q: %v", name, err))
		}
		down, err := migrationFS.ReadFile("migrations/" + base + ".down.sql")
		if err != nil {
			panic(fmt.Sprintf("migration %q is missing its down script: %v", name, err))
		}
		out = append(out, Migration{
			Version:    version,
			Name:       migName,
			UpScript:   string(up),
			DownScript: string(down),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

// GetMigrations returns the embedded migrations in version order.
func GetMigrations() []Migration {
	return migrations
}
