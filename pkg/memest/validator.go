package memest

// ValidationResult reports whether an estimate fits a budget, plus the
// headroom. A budget violation is not an error in this framework — the
// estimation just reports the range; enforcement is the caller's choice.
type ValidationResult struct {
	Accepted       bool
	Budget         int64
	Remaining      int64
	PercentageUsed float64
}

// Validate accepts tree iff its max usage is within budget bytes.
func Validate(tree *MemoryTree, budget int64) ValidationResult {
	usage := tree.MemoryUsage()
	remaining := budget - usage.Max
	var pct float64
	if budget > 0 {
		pct = float64(usage.Max) / float64(budget) * 100
	}
	return ValidationResult{
		Accepted:       usage.Max <= budget,
		Budget:         budget,
		Remaining:      remaining,
		PercentageUsed: pct,
	}
}
