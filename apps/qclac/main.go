//
// main.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/markkurossi/qcla/circuit"
	"github.com/markkurossi/qcla/synth"
)

var (
	verbose = false
	debug   = false
)

func main() {
	bits := flag.Int("bits", 8, "Operand width in qubits")
	base := flag.Int("base", 2, "Radix base of the carry tree")
	exponent := flag.Int("exponent", 0, "Radix exponent (output truncation)")
	adder := flag.Bool("adder", false, "Synthesize a ripple-carry adder")
	lower := flag.Bool("lower", false,
		"Lower composite gates into the elementary gate set")
	output := flag.String("o", "", "Circuit output file")
	format := flag.String("format", "qclc", "Circuit output format (qclc, qasm)")
	dot := flag.String("dot", "", "Gate dependency graph output file (dot)")
	evalA := flag.String("eval", "",
		"Evaluate the circuit with inputs `a,b`")
	dump := flag.Bool("dump", false, "Dump the synthesized gates")
	fVerbose := flag.Bool("v", false, "Verbose output")
	fDebug := flag.Bool("d", false, "Debug output")
	flag.Parse()

	verbose = *fVerbose
	debug = *fDebug

	params := synth.NewParams()
	params.Verbose = verbose
	params.Diagnostics = debug

	timing := circuit.NewTiming()

	s := synth.NewState(params)
	a := s.Input(*bits, "a")
	b := s.Input(*bits, "b")

	var err error
	if *adder {
		err = s.GidneyAdder(a, b)
		s.Output(b)
	} else {
		_, err = s.CalcCarry(a, b, *base, *exponent)
	}
	if err != nil {
		fmt.Printf("Synthesis failed: %s\n", err)
		os.Exit(1)
	}
	timing.Sample("Synth", []string{fmt.Sprintf("%d", s.NumGates())})

	circ := s.Compile()
	if *lower {
		circ = circ.Decompose()
		timing.Sample("Lower", []string{fmt.Sprintf("%d", len(circ.Gates))})
	}

	fmt.Printf("Circuit: %v\n", circ)
	if verbose {
		fmt.Printf("Inputs: %s\n", circ.Inputs)
		fmt.Printf("Outputs: %s\n", circ.Outputs)
		fmt.Printf("Pruned: %d gate emissions\n", s.Skipped())
		circ.StatsTable(os.Stdout)
	}
	if *dump {
		circ.Dump()
	}

	if len(*output) > 0 {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Printf("Failed to create output file '%s': %s\n", *output, err)
			os.Exit(1)
		}
		err = circ.MarshalFormat(f, *format)
		f.Close()
		if err != nil {
			fmt.Printf("Failed to marshal circuit: %s\n", err)
			os.Exit(1)
		}
		if verbose {
			fmt.Printf("Wrote %s (digest %x)\n", *output, circ.Digest())
		}
	}
	if len(*dot) > 0 {
		f, err := os.Create(*dot)
		if err != nil {
			fmt.Printf("Failed to create output file '%s': %s\n", *dot, err)
			os.Exit(1)
		}
		circ.Dot(f)
		f.Close()
	}

	if len(*evalA) > 0 {
		var av, bv uint64
		if _, err := fmt.Sscanf(*evalA, "%d,%d", &av, &bv); err != nil {
			fmt.Printf("Invalid -eval argument '%s': %s\n", *evalA, err)
			os.Exit(1)
		}
		result, err := circ.Compute([]uint64{av, bv})
		if err != nil {
			fmt.Printf("Evaluation failed: %s\n", err)
			os.Exit(1)
		}
		for idx, io := range circ.Outputs {
			fmt.Printf("Result %s: %d (0b%b)\n", io, result[idx],
				result[idx])
		}
		timing.Sample("Eval", nil)
	}

	if verbose {
		timing.Print(os.Stdout)
	}
}
