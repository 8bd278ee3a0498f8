/*
Package runner drives a machine over a batch of inputs.

The Runner owns everything around a single run: the step limit, how many
inputs are simulated at once, the RunID stamped on every result and the
optional archive of finished results. The core engine stays unaware of all
of it.

# Usage

	r := runner.New(
		runner.WithStepLimit(1000),
		runner.WithConcurrency(4),
		runner.WithStore(memory.NewStore()),
	)

	results, err := r.Run(ctx, machine, []string{"aabb", "aaabbbbb"})
	if err != nil {
		log.Fatal(err)
	}
*/
package runner
