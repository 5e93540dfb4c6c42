// Package assign implements the requirement-to-team-member allocation engine.
//
// A run reads a project's confirmed requirements and its roster, normalizes
// free text into canonical token sets, infers a coarse work category per
// requirement and greedily assigns every requirement to the best-scoring
// member. Scores combine token overlap, a category role bonus and a soft
// fairness penalty on already-assigned members. When no member shows any
// positive signal a shared round-robin cursor guarantees full coverage. The
// resulting batch commits in one transaction, either replacing prior
// auto-generated assignments or appending to them.
//
// The whole pass is single-threaded, deterministic for a given input
// ordering, and O(requirements x members).
package assign
