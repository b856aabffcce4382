// Package persistence provides SQLite-based storage for run results and
// for loader-supplied SME populations.
package persistence

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mahfuzr/smesim/internal/agent"
	"github.com/mahfuzr/smesim/internal/sim"
)

// DB wraps a SQLite connection for simulation storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		scenarios TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		run_id TEXT NOT NULL,
		scenario TEXT NOT NULL,
		year INTEGER NOT NULL,
		total_smes INTEGER NOT NULL,
		active_smes INTEGER NOT NULL,
		infrastructure_index REAL NOT NULL,
		competition_level REAL NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, scenario, year)
	);

	CREATE TABLE IF NOT EXISTS smes (
		run_id TEXT NOT NULL,
		scenario TEXT NOT NULL,
		year INTEGER NOT NULL,
		sme_id INTEGER NOT NULL,
		sector TEXT NOT NULL,
		location TEXT NOT NULL,
		owner_gender TEXT NOT NULL,
		is_youth_led INTEGER NOT NULL,
		size_category TEXT NOT NULL,
		formality TEXT NOT NULL,
		age INTEGER NOT NULL,
		revenue REAL NOT NULL,
		employment INTEGER NOT NULL,
		assets REAL NOT NULL,
		status TEXT NOT NULL,
		creditworthiness REAL NOT NULL,
		skill_level REAL NOT NULL,
		digital_literacy REAL NOT NULL,
		resource_efficiency REAL NOT NULL,
		resilience_score REAL NOT NULL,
		inclusion_score REAL NOT NULL,
		debt REAL NOT NULL,
		compliance_cost REAL NOT NULL,
		has_adopted_tech INTEGER NOT NULL,
		is_innovator INTEGER NOT NULL,
		is_exporter INTEGER NOT NULL,
		uses_ecommerce INTEGER NOT NULL,
		productivity REAL NOT NULL,
		PRIMARY KEY (run_id, scenario, year, sme_id)
	);

	CREATE TABLE IF NOT EXISTS sme_input (
		id INTEGER PRIMARY KEY,
		sector TEXT NOT NULL,
		location TEXT NOT NULL,
		owner_gender TEXT NOT NULL,
		is_youth_led INTEGER NOT NULL,
		size_category TEXT NOT NULL,
		formality TEXT NOT NULL,
		age INTEGER NOT NULL,
		revenue REAL NOT NULL,
		employment INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_scenario ON snapshots(run_id, scenario);
	CREATE INDEX IF NOT EXISTS idx_smes_year ON smes(run_id, scenario, year);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveResults writes a full batch of scenario results under one run ID.
func (db *DB) SaveResults(runID string, results sim.Results) error {
	scenarios := make([]string, 0, len(results))
	for name := range results {
		scenarios = append(scenarios, name)
	}
	sort.Strings(scenarios)

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (id, created_at, scenarios) VALUES (?, ?, ?)",
		runID, time.Now().UTC().Format(time.RFC3339), strings.Join(scenarios, ","),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	snapStmt, err := tx.Preparex(`INSERT INTO snapshots
		(run_id, scenario, year, total_smes, active_smes,
		 infrastructure_index, competition_level, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer snapStmt.Close()

	smeStmt, err := tx.Preparex(`INSERT INTO smes
		(run_id, scenario, year, sme_id, sector, location, owner_gender,
		 is_youth_led, size_category, formality, age, revenue, employment,
		 assets, status, creditworthiness, skill_level, digital_literacy,
		 resource_efficiency, resilience_score, inclusion_score, debt,
		 compliance_cost, has_adopted_tech, is_innovator, is_exporter,
		 uses_ecommerce, productivity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer smeStmt.Close()

	for _, scenario := range scenarios {
		years := make([]int, 0, len(results[scenario]))
		for y := range results[scenario] {
			years = append(years, y)
		}
		sort.Ints(years)

		for _, year := range years {
			snap := results[scenario][year]
			_, err := snapStmt.Exec(
				runID, scenario, snap.Year, snap.TotalSMEs, snap.ActiveSMEs,
				snap.Environment.InfrastructureIndex, snap.Environment.CompetitionLevel,
				snap.Err,
			)
			if err != nil {
				return fmt.Errorf("insert snapshot %s/%d: %w", scenario, year, err)
			}
			if snap.Population == nil {
				continue
			}
			for i := range snap.Population.SMEs {
				s := &snap.Population.SMEs[i]
				_, err := smeStmt.Exec(
					runID, scenario, snap.Year, s.ID, s.Sector, s.Location,
					s.OwnerGender, boolInt(s.IsYouthLed), s.SizeCategory,
					s.Formality, s.Age, s.Revenue, s.Employment, s.Assets,
					s.Status.String(), s.Creditworthiness, s.SkillLevel,
					s.DigitalLiteracy, s.ResourceEfficiency, s.ResilienceScore,
					s.InclusionScore, s.Debt, s.ComplianceCost,
					boolInt(s.HasAdoptedTech), boolInt(s.IsInnovator),
					boolInt(s.IsExporter), boolInt(s.UsesEcommerce),
					s.Productivity,
				)
				if err != nil {
					return fmt.Errorf("insert sme %s/%d/%d: %w", scenario, year, s.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("results saved", "run_id", runID, "scenarios", len(scenarios))
	return nil
}

// SaveInputPopulation writes SMEs into the input table for later loading.
func (db *DB) SaveInputPopulation(smes []agent.SME) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sme_input"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO sme_input
		(id, sector, location, owner_gender, is_youth_led, size_category,
		 formality, age, revenue, employment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range smes {
		s := &smes[i]
		_, err := stmt.Exec(
			s.ID, s.Sector, s.Location, s.OwnerGender, boolInt(s.IsYouthLed),
			s.SizeCategory, s.Formality, s.Age, s.Revenue, s.Employment,
		)
		if err != nil {
			return fmt.Errorf("insert input sme %d: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

type inputRow struct {
	ID           int     `db:"id"`
	Sector       string  `db:"sector"`
	Location     string  `db:"location"`
	OwnerGender  string  `db:"owner_gender"`
	IsYouthLed   int     `db:"is_youth_led"`
	SizeCategory string  `db:"size_category"`
	Formality    string  `db:"formality"`
	Age          int     `db:"age"`
	Revenue      float64 `db:"revenue"`
	Employment   int     `db:"employment"`
}

// LoadPopulation reads the input table into a population carrying only the
// core schema. No optional columns are marked: stages that need them fill
// their defaults on first touch and skip that year's dynamics.
func (db *DB) LoadPopulation() (*agent.Population, error) {
	var rows []inputRow
	err := db.conn.Select(&rows, "SELECT * FROM sme_input ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("select input population: %w", err)
	}

	smes := make([]agent.SME, 0, len(rows))
	for _, r := range rows {
		smes = append(smes, agent.SME{
			ID:           r.ID,
			Sector:       r.Sector,
			Location:     r.Location,
			OwnerGender:  r.OwnerGender,
			IsYouthLed:   r.IsYouthLed != 0,
			SizeCategory: r.SizeCategory,
			Formality:    r.Formality,
			Age:          r.Age,
			Revenue:      r.Revenue,
			Employment:   r.Employment,
			Status:       agent.StatusActive,
		})
	}

	slog.Info("population loaded", "count", len(smes))
	return agent.NewPopulation(smes, nil), nil
}

// Run is one persisted batch.
type Run struct {
	ID        string `db:"id"`
	CreatedAt string `db:"created_at"`
	Scenarios string `db:"scenarios"`
}

// RecentRuns returns the most recent N runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT id, created_at, scenarios FROM runs ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	return runs, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
