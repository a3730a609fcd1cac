package qdimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/skolemize/literal"
)

// Parse reads a QDIMACS specification from r and returns an immutable
// Spec, or ErrSpecParse wrapping the offending line. Multiple "e" lines
// concatenate in file order; all "a" lines populate Universals as an
// unordered set.
func Parse(r io.Reader) (*Spec, error) {
	s := &Spec{
		Universals:     make(map[literal.Variable]bool),
		existentialSet: make(map[literal.Variable]bool),
	}
	var sawHeader bool
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}

		fields := strings.Fields(line)
		switch {
		case strings.HasPrefix(line, "p cnf"):
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: malformed header %q", ErrSpecParse, line)
			}
			numVars, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("%w: bad num_vars in header %q: %v", ErrSpecParse, line, err)
			}
			if numVars < 0 {
				return nil, fmt.Errorf("%w: negative num_vars in header %q", ErrSpecParse, line)
			}
			s.NumVars = numVars
			sawHeader = true

		case fields[0] == "a" || fields[0] == "e":
			vars, err := parseQuantLine(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSpecParse, err)
			}
			if fields[0] == "a" {
				for _, v := range vars {
					s.Universals[v] = true
				}
			} else {
				for _, v := range vars {
					if !s.existentialSet[v] {
						s.existentialSet[v] = true
						s.Existentials = append(s.Existentials, v)
					}
				}
			}

		default:
			clause, err := parseClauseLine(fields)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSpecParse, err)
			}
			if len(clause) > 0 {
				s.Matrix = append(s.Matrix, clause)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpecParse, err)
	}
	if !sawHeader {
		return nil, fmt.Errorf("%w: missing \"p cnf\" header", ErrSpecParse)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// parseQuantLine parses the variable list of an "a"/"e" line, trimming
// the trailing "0" terminator.
func parseQuantLine(fields []string) ([]literal.Variable, error) {
	vars := make([]literal.Variable, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad variable token %q: %v", f, err)
		}
		if n == 0 {
			continue // terminator
		}
		if n < 0 {
			return nil, fmt.Errorf("quantifier variable %d must be positive", n)
		}
		vars = append(vars, n)
	}
	return vars, nil
}

// parseClauseLine parses a clause line's space-separated nonzero ints,
// trimming the trailing "0" terminator.
func parseClauseLine(fields []string) (literal.Clause, error) {
	clause := make(literal.Clause, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad literal token %q: %v", f, err)
		}
		if n == 0 {
			continue // terminator
		}
		clause = append(clause, n)
	}
	return clause, nil
}

// validate enforces the Spec invariants: universals and existentials
// are disjoint, and every literal references a variable in [1, NumVars].
func (s *Spec) validate() error {
	for v := range s.Universals {
		if s.existentialSet[v] {
			return fmt.Errorf("%w: variable %d declared both universal and existential", ErrSpecParse, v)
		}
	}
	for _, c := range s.Matrix {
		for _, l := range c {
			v := literal.Var(l)
			if v < 1 || v > s.NumVars {
				return fmt.Errorf("%w: literal %d references out-of-range variable (num_vars=%d)", ErrSpecParse, l, s.NumVars)
			}
		}
	}
	return nil
}
