/*
Package turing simulates deterministic single-tape Turing machines.

A machine is a finite set of states, an input alphabet, a tape alphabet that
contains a distinguished blank, an initial state, a set of accepting states
and a partial transition function (state, symbol) -> (symbol, move, state).
The machine halts only when no rule applies; it accepts when it halts in an
accepting state. A step limit turns non-halting runs into a timed out result.

# Usage

Load a machine from a YAML/JSON file (or a Loam library directory), then run it
against a batch of inputs:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/turing"
	)

	func main() {
		m, err := turing.New("./examples/anbn.yaml")
		if err != nil {
			log.Fatal(err)
		}

		results, err := m.Run(context.Background(), m.Inputs())
		if err != nil {
			log.Fatal(err)
		}

		for _, res := range results {
			fmt.Println(res.Input, res.Outcome, res.FinalTape)
		}
	}

Each result carries the instantaneous description (ID) of every step, in the
form left[state]right, with the head on the first symbol of right.
*/
package turing
