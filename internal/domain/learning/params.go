package learning

// Params holds the constants of the study-priority score.
type Params struct {
	// Mastery classification
	LearntMinAttempts int

	// Exposure bonus: min(attempts*AttemptWeight, AttemptCap)
	AttemptWeight int
	AttemptCap    int

	// Correctness bonus: min(successes*SuccessWeight, SuccessCap)
	SuccessWeight int
	SuccessCap    int

	// Weak-card penalty applied when mastery is below WeakThreshold
	WeakThreshold int
	WeakPenalty   int
}

// ParamsConfig allows overriding individual defaults. Zero values keep the default.
type ParamsConfig struct {
	LearntMinAttempts int
	AttemptWeight     int
	AttemptCap        int
	SuccessWeight     int
	SuccessCap        int
	WeakThreshold     int
	WeakPenalty       int
}

// NewDefaultParams returns the parameters used by every released version of
// the study ordering. Changing them changes the order users see.
func NewDefaultParams() *Params {
	return &Params{
		LearntMinAttempts: 3,
		AttemptWeight:     10,
		AttemptCap:        100,
		SuccessWeight:     20,
		SuccessCap:        200,
		WeakThreshold:     50,
		WeakPenalty:       50,
	}
}

// NewParams creates Params from the defaults with any non-zero overrides applied.
func NewParams(cfg ParamsConfig) *Params {
	p := NewDefaultParams()
	override := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	override(&p.LearntMinAttempts, cfg.LearntMinAttempts)
	override(&p.AttemptWeight, cfg.AttemptWeight)
	override(&p.AttemptCap, cfg.AttemptCap)
	override(&p.SuccessWeight, cfg.SuccessWeight)
	override(&p.SuccessCap, cfg.SuccessCap)
	override(&p.WeakThreshold, cfg.WeakThreshold)
	override(&p.WeakPenalty, cfg.WeakPenalty)
	return p
}
