/*
Package ports defines the driven ports (interfaces) of the simulator.

These interfaces decouple the engine from where machine definitions come from
and where finished run results are archived.

# Key Interfaces

  - DefinitionLoader: produces a machine Definition (file, Loam library, memory).
  - Library: a DefinitionLoader that holds several machines addressed by ID.
  - ResultStore: archives finished RunResults (memory, Redis).
*/
package ports
