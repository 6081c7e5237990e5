// Package vectors persists golden test vectors for the Hamming and Golay
// codecs in a SQLite database, so a hardware implementation (or a future
// refactor of this one) can be regression-tested against a recorded corpus
// of (input, encoded, corrupted, decoded, flags) tuples.
//
// Wiring follows the teacher's database package closely: the same pure-Go
// SQLite driver, the same PRAGMA tuning for a single-writer workload, and
// the same GORM logger injection pattern, now serving a GoldenVector model
// instead of a DMR user cache.
package vectors

import (
	"database/sql"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Kind identifies which codec a golden vector belongs to.
type Kind string

const (
	KindHamming Kind = "hamming"
	KindGolay   Kind = "golay"
)

// GoldenVector is one recorded encode/corrupt/decode trial.
type GoldenVector struct {
	ID uint `gorm:"primarykey" json:"id"`

	Kind   Kind   `gorm:"index;size:16" json:"kind"`
	Params string `gorm:"size:64" json:"params"` // e.g. "K=11" or "Golay24128"

	InputHex     string `gorm:"size:256" json:"input_hex"`
	EncodedHex   string `gorm:"size:256" json:"encoded_hex"`
	CorruptedHex string `gorm:"size:256" json:"corrupted_hex"`
	DecodedHex   string `gorm:"size:256" json:"decoded_hex"`
	FlipPositions string `gorm:"size:256" json:"flip_positions"`

	Corrected bool `json:"corrected"` // SEC or TEC
	Detected  bool `json:"detected"`  // DED or QED
	Match     bool `json:"match"`     // decoded == original input

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (GoldenVector) TableName() string { return "golden_vectors" }

// Config holds vector-store configuration.
type Config struct {
	Path string // path to the SQLite database file
}

// Store wraps the GORM database instance holding golden vectors.
type Store struct {
	db *gorm.DB
}

// Open creates (or reopens) a golden-vector store at config.Path, applying
// the same SQLite PRAGMA tuning the teacher's database package uses for a
// single-process, single-writer workload.
func Open(config Config, out *log.Logger) (*Store, error) {
	var gormLog logger.Interface
	if out != nil {
		gormLog = logger.New(
			out,
			logger.Config{
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		)
	} else {
		gormLog = logger.Default.LogMode(logger.Silent)
	}

	dialector := sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        config.Path,
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := configureSQLite(sqlDB); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&GoldenVector{}); err != nil {
		return nil, err
	}

	if out != nil {
		out.Printf("golden vector store initialized: %s", config.Path)
	}

	return &Store{db: db}, nil
}

func configureSQLite(sqlDB *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA cache_size=10000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=memory",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

// Save inserts a new golden vector.
func (s *Store) Save(v *GoldenVector) error {
	return s.db.Create(v).Error
}

// SaveBatch inserts many golden vectors in one transaction.
func (s *Store) SaveBatch(vs []GoldenVector) error {
	if len(vs) == 0 {
		return nil
	}
	return s.db.CreateInBatches(vs, 200).Error
}

// All returns every stored vector of the given kind, oldest first.
func (s *Store) All(kind Kind) ([]GoldenVector, error) {
	var out []GoldenVector
	err := s.db.Where("kind = ?", kind).Order("id asc").Find(&out).Error
	return out, err
}

// Count returns the number of stored vectors of the given kind.
func (s *Store) Count(kind Kind) (int64, error) {
	var n int64
	err := s.db.Model(&GoldenVector{}).Where("kind = ?", kind).Count(&n).Error
	return n, err
}

// Health checks whether the underlying connection is alive.
func (s *Store) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Stats returns connection-pool statistics.
func (s *Store) Stats() (sql.DBStats, error) {
	sqlDB, err := s.db.DB()
	if err != nil {
		return sql.DBStats{}, err
	}
	return sqlDB.Stats(), nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
