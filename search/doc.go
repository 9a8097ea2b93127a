/*
Package search provides an optimal best-first (A*) search engine over the
implicit state graph of a planning task.

The engine is generic over the estimator guiding it:

	e := search.New(pb, heuristic.NewLMCut(pb))
	res := e.Solve()

As long as the estimator is admissible, the returned plan is optimal: its
cost equals the true minimum cost of reaching the goal. An unsolvable task
is a normal outcome, reported with the Unsolvable status, not an error.
*/
package search
