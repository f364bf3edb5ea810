// Command generate-golden writes the arithmetic golden file used by the
// bignum tests. Expected values come from the reference oracle (math/big, or
// GMP when built with -tags gmp), never from modcalc itself.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/agbru/modcalc/internal/reference"
)

// GoldenCase represents a single test case in the golden file.
type GoldenCase struct {
	Op        string `json:"op"`
	A         string `json:"a"`
	B         string `json:"b"`
	Result    string `json:"result"`
	Remainder string `json:"remainder,omitempty"`
}

func main() {
	outputDir := flag.String("out", "internal/bignum/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	oracle := reference.Default()
	fmt.Printf("Generating golden data with the %s oracle...\n", oracle.Name())

	data, err := generate(oracle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating golden data: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "arith_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated %d cases at %s\n", len(data), filename)
}

// operands returns the deterministic operand set: cell-boundary values and,
// for each exponent e, 3^e + 1, 7^e and 10^e - 1.
func operands() []string {
	ops := []string{
		"0", "1", "999999999", "1000000000",
		"999999999999999999", "1000000000000000000",
	}
	for _, e := range []int64{17, 40, 100, 333, 700} {
		p3 := new(big.Int).Exp(big.NewInt(3), big.NewInt(e), nil)
		p7 := new(big.Int).Exp(big.NewInt(7), big.NewInt(e), nil)
		ops = append(ops,
			p3.Add(p3, big.NewInt(1)).String(),
			p7.String(),
			strings.Repeat("9", int(e)),
		)
	}
	return ops
}

// generate pairs every operand with itself and with the operand seven
// places further along (cyclically), emitting add, sub, mul and divmod
// cases where they are defined.
func generate(oracle reference.Oracle) ([]GoldenCase, error) {
	ops := operands()
	var data []GoldenCase
	for i := range ops {
		for _, j := range []int{i, (i*7 + 3) % len(ops)} {
			a, b := ops[i], ops[j]

			sum, err := oracle.Add(a, b)
			if err != nil {
				return nil, err
			}
			data = append(data, GoldenCase{Op: "add", A: a, B: b, Result: sum})

			if diff, err := oracle.Sub(a, b); err == nil {
				data = append(data, GoldenCase{Op: "sub", A: a, B: b, Result: diff})
			}

			prod, err := oracle.Mul(a, b)
			if err != nil {
				return nil, err
			}
			data = append(data, GoldenCase{Op: "mul", A: a, B: b, Result: prod})

			if b != "0" {
				q, r, err := oracle.DivMod(a, b)
				if err != nil {
					return nil, err
				}
				data = append(data, GoldenCase{Op: "divmod", A: a, B: b, Result: q, Remainder: r})
			}
		}
	}
	return data, nil
}
