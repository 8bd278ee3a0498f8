/*
Package domain contains the core domain models of the Turing machine simulator.

It defines the vocabulary shared by the engine, the loaders and the presentation
layers. This package is kept pure and free of I/O, persistence or logging.

# Key Entities

  - Symbol and State: comparable handles for tape characters and state labels.
  - Rule: one entry of the transition function, (state, read) -> (write, move, next).
  - Definition: a complete machine description plus the inputs to run it against.
  - RunResult: the summary of one simulation (outcome, final tape, ID trace).
*/
package domain
