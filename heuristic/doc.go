/*
Package heuristic provides admissible goal-distance estimators for planning
tasks: hmax and LM-Cut, both based on the delete relaxation of the task
(delete effects are ignored, making the relaxed problem monotone).

Both estimators implement the Heuristic interface consumed by the search
engine:

	h := heuristic.NewLMCut(pb)
	v := h.Estimate(pb.Init)

An estimate is either a non-negative lower bound on the true cost to the
goal, or Infinity when the goal cannot be reached even under the
relaxation. Estimators never overestimate, which is what makes A* with
these heuristics return optimal plans.

Each call to Estimate works on private cost labels, so a single estimator
can be queried any number of times, once per expanded node typically,
without cross-call leakage.
*/
package heuristic
