package webclient

import "fmt"

// InputWeightLabel describes the session-versus-history slider.
func InputWeightLabel(percent int) string {
	switch {
	case percent == 50:
		return "Balanced (50%)"
	case percent < 50:
		return fmt.Sprintf("History (%d%%)", 100-percent)
	default:
		return fmt.Sprintf("This Session (%d%%)", percent)
	}
}

// RevisitWeightLabel describes the new-versus-revisit slider.
func RevisitWeightLabel(percent int) string {
	switch percent {
	case 0:
		return "All New"
	case 100:
		return "Revisit Picks"
	default:
		return fmt.Sprintf("Mixed (%d%% revisit)", percent)
	}
}
