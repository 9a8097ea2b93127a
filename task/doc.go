/*
Package task describes deterministic planning tasks in a STRIPS-like
representation derived from a multi-valued variable (SAS) encoding.

A task is a finite set of facts, a finite set of actions, an initial state
and a goal condition. Each fact belongs to exactly one variable group: the
possible values of a source variable are mutually exclusive facts, and a
well-formed state holds exactly one fact per group.

A Task can be built programmatically, or parsed from a SAS stream
(io.Reader) in the Fast Downward output format:

	pb, err := task.ParseSAS(f)

The task is immutable once built. States are values: applying an action
yields a fresh state and never mutates its parent, so states can be shared
freely between the search engine and the heuristics.
*/
package task
