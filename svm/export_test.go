package svm

// Test-only handles on unexported helpers.

// SigmoidTrain_TestOnly fits Platt parameters to decision values.
func SigmoidTrain_TestOnly(dec, y []float64) (float64, float64) { return sigmoidTrain(dec, y) }

// SigmoidPredict_TestOnly evaluates the fitted sigmoid.
func SigmoidPredict_TestOnly(f, a, b float64) float64 { return sigmoidPredict(f, a, b) }

// Couple_TestOnly turns pairwise probabilities into class probabilities.
func Couple_TestOnly(k int, r [][]float64) []float64 { return multiclassProbability(k, r) }
