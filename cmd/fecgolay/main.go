// Command fecgolay is a one-shot CLI wrapping the Hamming and Golay FEC
// codecs: encode/decode a single word from the command line, run a
// built-in self-test across both codecs, or export/import golden vectors
// to a SQLite-backed regression corpus.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"

	"github.com/dbehnke/fecgolay/internal/bits"
	"github.com/dbehnke/fecgolay/internal/codec"
	"github.com/dbehnke/fecgolay/internal/config"
	"github.com/dbehnke/fecgolay/internal/obs"
	"github.com/dbehnke/fecgolay/internal/vectors"
)

const VERSION = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger := obs.New(os.Stdout, "[fecgolay]")

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:], logger)
	case "decode":
		err = runDecode(os.Args[2:], logger)
	case "selftest":
		err = runSelftest(os.Args[2:], logger)
	case "vectors":
		err = runVectors(os.Args[2:], logger)
	case "-version", "--version", "version":
		fmt.Printf("fecgolay v%s\n", VERSION)
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Fatalf("%v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fecgolay <encode|decode|selftest|vectors> [flags]")
}

func runEncode(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	codecName := fs.String("codec", "hamming", "codec to use: hamming or golay")
	k := fs.Int("k", config.Default().HammingK, "data bits (hamming only)")
	data := fs.Uint64("data", 0, "data word, as a decimal or 0x-prefixed integer")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch *codecName {
	case "hamming":
		c, err := codec.NewHammingCodec(*k)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		d := bits.PackWidth(*data, c.K())
		encoded, err := c.Encode(d)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		logger.Printf("hamming K=%d P=%d N=%d", c.K(), c.P(), c.N())
		fmt.Printf("0x%x\n", bits.Unpack(encoded))
		return nil

	case "golay":
		g := codec.NewGolayCodec()
		d := bits.PackWidth(*data, g.MessageLen())
		encoded, err := g.Encode(d)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		fmt.Printf("0x%x\n", bits.Unpack(encoded))
		return nil

	default:
		return fmt.Errorf("encode: unknown codec %q", *codecName)
	}
}

func runDecode(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	codecName := fs.String("codec", "hamming", "codec to use: hamming or golay")
	k := fs.Int("k", config.Default().HammingK, "data bits (hamming only)")
	frameStr := fs.String("frame", "", "encoded frame, as a decimal or 0x-prefixed integer")
	if err := fs.Parse(args); err != nil {
		return err
	}

	frame, err := strconv.ParseUint(*frameStr, 0, 64)
	if err != nil {
		return fmt.Errorf("decode: invalid --frame %q: %w", *frameStr, err)
	}

	switch *codecName {
	case "hamming":
		c, err := codec.NewHammingCodec(*k)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		block := bits.PackWidth(frame, c.N())
		data, flags, err := c.Decode(block)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Printf("data=0x%x corrected=%v detected=%v\n", bits.Unpack(data), flags.Corrected, flags.Detected)
		return nil

	case "golay":
		g := codec.NewGolayCodec()
		block := bits.PackWidth(frame, g.BlockLen())
		data, flags, err := g.Decode(block)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		fmt.Printf("data=0x%x corrected=%v detected=%v\n", bits.Unpack(data), flags.Corrected, flags.Detected)
		return nil

	default:
		logger.Printf("unknown codec %q", *codecName)
		return fmt.Errorf("decode: unknown codec %q", *codecName)
	}
}

// runSelftest exercises both codecs against randomly generated data and
// reports a pass/fail summary, the same spot-check a gateway binary would
// run once at startup before trusting its wire codecs.
func runSelftest(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("selftest", flag.ExitOnError)
	seed := fs.Int64("seed", 1, "PRNG seed for reproducible noise injection")
	trials := fs.Int("trials", 200, "number of trials per codec")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))
	failures := 0

	for _, k := range []int{4, 11, 26, 57} {
		c, err := codec.NewHammingCodec(k)
		if err != nil {
			return err
		}
		for i := 0; i < *trials; i++ {
			d := randomBits(rng, k)
			encoded, err := c.Encode(d)
			if err != nil {
				return err
			}
			pos := rng.Intn(c.N())
			if _, err := bits.Transmit(encoded, 0, []int{pos}, nil); err != nil {
				return err
			}
			decoded, flags, err := c.Decode(encoded)
			if err != nil {
				return err
			}
			if !equalBits(d, decoded) || !flags.Corrected || flags.Detected {
				failures++
				logger.Printf("FAIL hamming K=%d trial=%d pos=%d", k, i, pos)
			}
		}
	}

	g := codec.NewGolayCodec()
	for i := 0; i < *trials; i++ {
		d := bits.PackWidth(uint64(rng.Intn(1<<12)), g.MessageLen())
		encoded, err := g.Encode(d)
		if err != nil {
			return err
		}
		positions := distinctPositions(rng, g.BlockLen(), 3)
		if _, err := bits.Transmit(encoded, 0, positions, nil); err != nil {
			return err
		}
		decoded, flags, err := g.Decode(encoded)
		if err != nil {
			return err
		}
		if !equalBits(d, decoded) || !flags.Corrected || flags.Detected {
			failures++
			logger.Printf("FAIL golay trial=%d positions=%v", i, positions)
		}
	}

	if failures > 0 {
		return fmt.Errorf("selftest: %d failures", failures)
	}
	logger.Printf("selftest OK (%d hamming configs x %d trials, %d golay trials)", 4, *trials, *trials)
	return nil
}

func runVectors(args []string, logger *log.Logger) error {
	if len(args) < 1 {
		return fmt.Errorf("vectors: expected export or import subcommand")
	}

	switch args[0] {
	case "export":
		return runVectorsExport(args[1:], logger)
	case "import":
		return runVectorsImport(args[1:], logger)
	default:
		return fmt.Errorf("vectors: unknown subcommand %q", args[0])
	}
}

func runVectorsExport(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("vectors export", flag.ExitOnError)
	dbPath := fs.String("db", config.Default().VectorDBPath, "golden vector database path")
	seed := fs.Int64("seed", 1, "PRNG seed")
	count := fs.Int("count", 100, "vectors to generate per codec")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := vectors.Open(vectors.Config{Path: *dbPath}, logger)
	if err != nil {
		return fmt.Errorf("vectors export: %w", err)
	}
	defer store.Close()

	rng := rand.New(rand.NewSource(*seed))
	hammingCodec, err := codec.NewHammingCodec(config.Default().HammingK)
	if err != nil {
		return err
	}
	golayCodec := codec.NewGolayCodec()

	var batch []vectors.GoldenVector
	for i := 0; i < *count; i++ {
		d := randomBits(rng, hammingCodec.K())
		encoded, err := hammingCodec.Encode(d)
		if err != nil {
			return err
		}
		corrupted := append([]bits.Bit(nil), encoded...)
		pos := rng.Intn(hammingCodec.N())
		if _, err := bits.Transmit(corrupted, 0, []int{pos}, nil); err != nil {
			return err
		}
		decoded, flags, err := hammingCodec.Decode(corrupted)
		if err != nil {
			return err
		}
		batch = append(batch, vectors.GoldenVector{
			Kind:         vectors.KindHamming,
			Params:       fmt.Sprintf("K=%d", hammingCodec.K()),
			InputHex:     fmt.Sprintf("%x", bits.Unpack(d)),
			EncodedHex:   fmt.Sprintf("%x", bits.Unpack(encoded)),
			CorruptedHex: fmt.Sprintf("%x", bits.Unpack(corrupted)),
			DecodedHex:   fmt.Sprintf("%x", bits.Unpack(decoded)),
			FlipPositions: fmt.Sprintf("%d", pos),
			Corrected:    flags.Corrected,
			Detected:     flags.Detected,
			Match:        equalBits(d, decoded),
		})
	}

	for i := 0; i < *count; i++ {
		d := bits.PackWidth(uint64(rng.Intn(1<<12)), golayCodec.MessageLen())
		encoded, err := golayCodec.Encode(d)
		if err != nil {
			return err
		}
		corrupted := append([]bits.Bit(nil), encoded...)
		positions := distinctPositions(rng, golayCodec.BlockLen(), rng.Intn(5))
		if _, err := bits.Transmit(corrupted, 0, positions, nil); err != nil {
			return err
		}
		decoded, flags, err := golayCodec.Decode(corrupted)
		if err != nil {
			return err
		}
		batch = append(batch, vectors.GoldenVector{
			Kind:         vectors.KindGolay,
			Params:       "Golay24128",
			InputHex:     fmt.Sprintf("%x", bits.Unpack(d)),
			EncodedHex:   fmt.Sprintf("%x", bits.Unpack(encoded)),
			CorruptedHex: fmt.Sprintf("%x", bits.Unpack(corrupted)),
			DecodedHex:   fmt.Sprintf("%x", bits.Unpack(decoded)),
			FlipPositions: fmt.Sprintf("%v", positions),
			Corrected:    flags.Corrected,
			Detected:     flags.Detected,
			Match:        equalBits(d, decoded),
		})
	}

	if err := store.SaveBatch(batch); err != nil {
		return fmt.Errorf("vectors export: %w", err)
	}
	logger.Printf("exported %d golden vectors to %s", len(batch), *dbPath)
	return nil
}

// runVectorsImport replays every stored golden vector through a fresh codec
// instance and reports any divergence from the recorded decode outcome —
// the regression check a hardware verification harness would run after a
// codec change.
func runVectorsImport(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("vectors import", flag.ExitOnError)
	dbPath := fs.String("db", config.Default().VectorDBPath, "golden vector database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := vectors.Open(vectors.Config{Path: *dbPath}, logger)
	if err != nil {
		return fmt.Errorf("vectors import: %w", err)
	}
	defer store.Close()

	hammingCodec, err := codec.NewHammingCodec(config.Default().HammingK)
	if err != nil {
		return err
	}
	golayCodec := codec.NewGolayCodec()

	mismatches := 0
	for _, kind := range []vectors.Kind{vectors.KindHamming, vectors.KindGolay} {
		stored, err := store.All(kind)
		if err != nil {
			return fmt.Errorf("vectors import: %w", err)
		}

		for _, v := range stored {
			corrupted, err := strconv.ParseUint(v.CorruptedHex, 16, 64)
			if err != nil {
				return fmt.Errorf("vectors import: vector %d: %w", v.ID, err)
			}

			var decoded []bits.Bit
			var flags codec.Flags
			switch kind {
			case vectors.KindHamming:
				decoded, flags, err = hammingCodec.Decode(bits.PackWidth(corrupted, hammingCodec.N()))
			case vectors.KindGolay:
				decoded, flags, err = golayCodec.Decode(bits.PackWidth(corrupted, golayCodec.BlockLen()))
			}
			if err != nil {
				return fmt.Errorf("vectors import: vector %d: %w", v.ID, err)
			}

			decodedHex := fmt.Sprintf("%x", bits.Unpack(decoded))
			if decodedHex != v.DecodedHex || flags.Corrected != v.Corrected || flags.Detected != v.Detected {
				mismatches++
				logger.Printf("MISMATCH vector %d (%s): recorded decoded=%s corrected=%v detected=%v, replay decoded=%s corrected=%v detected=%v",
					v.ID, v.Kind, v.DecodedHex, v.Corrected, v.Detected, decodedHex, flags.Corrected, flags.Detected)
			}
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("vectors import: %d mismatches against current codec behavior", mismatches)
	}
	logger.Printf("vectors import: all stored vectors replay cleanly")
	return nil
}

func randomBits(rng *rand.Rand, n int) []bits.Bit {
	out := make([]bits.Bit, n)
	for i := range out {
		out[i] = bits.Bit(rng.Intn(2))
	}
	return out
}

func equalBits(a, b []bits.Bit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// distinctPositions draws n distinct positions from [0, width).
func distinctPositions(rng *rand.Rand, width, n int) []int {
	if n <= 0 {
		return nil
	}
	seen := make(map[int]bool, n)
	out := make([]int, 0, n)
	for len(out) < n {
		pos := rng.Intn(width)
		if seen[pos] {
			continue
		}
		seen[pos] = true
		out = append(out, pos)
	}
	return out
}
