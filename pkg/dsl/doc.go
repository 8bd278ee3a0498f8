/*
Package dsl provides a fluent builder for constructing machine definitions in Go.

It is an alternative to YAML or JSON files when a machine is generated
programmatically, embedded in a test or assembled from code. States and tape
symbols are collected from the rules, and the result is validated before it is
returned.

Example usage:

	def, err := dsl.New("anbn").
		Alphabet("a", "b").
		Accept("q4").
		Rule("q0", "a", "X", "R", "q1").
		Rule("q0", "Y", "Y", "R", "q3").
		// ...
		Rule("q3", "B", "B", "R", "q4").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	m, err := turing.NewFromDefinition(def)

The per-state form groups the rules leaving one state:

	b := dsl.New("swap").Alphabet("a", "b")
	b.State("q0").Initial().
		On("a", "b", "R", "q0").
		On("b", "a", "R", "q0").
		On("B", "B", "S", "qf")
	b.State("qf").Accepting()
*/
package dsl
