package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// record matches the payload shape served at /data/names.json.
type record struct {
	UID      string `json:"uid"`
	FullName string `json:"full_name"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] no .env loaded, using system environment: %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		inPath  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "namegen [full name...]",
		Short: "Generate a names payload with fresh uids",
		Long: "Reads full names from arguments or from --in (one per line, '-' for stdin)\n" +
			"and writes a JSON array of {uid, full_name} records.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fullNames := append([]string(nil), args...)
			if inPath != "" {
				fromFile, err := readNames(cmd.InOrStdin(), inPath)
				if err != nil {
					return err
				}
				fullNames = append(fullNames, fromFile...)
			}
			if len(fullNames) == 0 {
				return fmt.Errorf("no names given: pass them as arguments or via --in")
			}

			out := cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}

			if err := writeRecords(out, generate(fullNames)); err != nil {
				return err
			}
			if outPath != "" && outPath != "-" {
				log.Printf("wrote %d names to %s", len(fullNames), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "file with one full name per line ('-' for stdin)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func readNames(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	return out, nil
}

func generate(fullNames []string) []record {
	out := make([]record, 0, len(fullNames))
	for _, fullName := range fullNames {
		out = append(out, record{UID: uuid.NewString(), FullName: fullName})
	}
	return out
}

func writeRecords(w io.Writer, records []record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode names: %w", err)
	}
	return nil
}
