package domain

// Mode selects one of the fixed personality personas. It is supplied on every
// request and never persisted server-side. Unknown selector strings fall back
// to ModeDefault rather than failing the request.
type Mode int

const (
	ModeDefault Mode = iota
	ModeLogicBreaker
	ModeBrutalHonesty
	ModeDeepAnalyst
	ModeEgoSlayer
	ModeRapidFire
)

func ParseMode(s string) Mode {
	switch s {
	case "logic-breaker":
		return ModeLogicBreaker
	case "brutal-honesty":
		return ModeBrutalHonesty
	case "deep-analyst":
		return ModeDeepAnalyst
	case "ego-slayer":
		return ModeEgoSlayer
	case "rapid-fire":
		return ModeRapidFire
	default:
		return ModeDefault
	}
}

func (m Mode) String() string {
	switch m {
	case ModeLogicBreaker:
		return "logic-breaker"
	case ModeBrutalHonesty:
		return "brutal-honesty"
	case ModeDeepAnalyst:
		return "deep-analyst"
	case ModeEgoSlayer:
		return "ego-slayer"
	case ModeRapidFire:
		return "rapid-fire"
	default:
		return "default"
	}
}
