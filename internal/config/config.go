// Package config holds the small set of CLI-invocation-scoped knobs the
// fecgolay demo binary needs. Unlike the teacher's INI-file config (a
// long-running gateway's persistent settings), this project has nothing
// that needs to survive between invocations, so defaults live in a plain
// struct whose values serve as the flag defaults rather than in a parsed
// config file.
package config

// Config holds the runtime knobs for cmd/fecgolay.
type Config struct {
	// HammingK is the number of data bits for the Hamming codec demo.
	HammingK int

	// VectorDBPath is the SQLite file backing the golden-vector store.
	VectorDBPath string

	// Seed is a PRNG seed setting. cmd/fecgolay does not read it: the
	// selftest and vectors export subcommands take their seed from their
	// own -seed flag, which defaults to 1.
	Seed int64
}

// Default returns the baseline configuration, mirroring the teacher's
// NewConfig convention of setting reasonable defaults before flags override
// them.
func Default() Config {
	return Config{
		HammingK:     11,
		VectorDBPath: "data/golden_vectors.db",
		Seed:         0,
	}
}
