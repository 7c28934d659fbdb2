package recommend

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"campfire/internal/restaurants"
)

//go:embed prompts/rank.txt
var rankPromptText string

var rankPrompt = template.Must(template.New("rank").Parse(rankPromptText))

// RankInput is everything the ranking prompt mentions.
type RankInput struct {
	Profile       Profile
	Candidates    []Candidate
	LikedNames    []string
	DislikedNames []string
	Session       []restaurants.Restaurant
	History       []restaurants.Restaurant
	Neighborhood  string
	Types         []string
	Alpha         float64
	Count         int
}

type rankPromptData struct {
	Count               int
	PriceLevel          string
	MinRating           string
	CuisineTypes        string
	DineIn              string
	Reservable          string
	SessionSection      string
	HistorySection      string
	AlphaInstruction    string
	LikedNames          string
	DislikedNames       string
	NeighborhoodSection string
	TypeSection         string
	Candidates          string
}

// BuildRankPrompt renders the numbered-candidate ranking prompt. Candidate
// numbers are 1-based positions in in.Candidates.
func BuildRankPrompt(in RankInput) (string, error) {
	count := in.Count
	if count <= 0 {
		count = DefaultCount
	}
	data := rankPromptData{
		Count:         count,
		PriceLevel:    orDefault(in.Profile.PreferredPriceLevel, "any"),
		MinRating:     "any",
		CuisineTypes:  orDefault(strings.Join(in.Profile.TopCuisineTypes, ", "), "any"),
		DineIn:        boolText(in.Profile.PrefersDineIn),
		Reservable:    boolText(in.Profile.PrefersReservable),
		LikedNames:    orDefault(strings.Join(in.LikedNames, ", "), "none"),
		DislikedNames: orDefault(strings.Join(in.DislikedNames, ", "), "none"),
		Candidates:    candidateLines(in.Candidates),
	}
	if in.Profile.MinRating != nil {
		data.MinRating = strconv.FormatFloat(*in.Profile.MinRating, 'f', -1, 64)
	}
	if len(in.Session) > 0 {
		data.SessionSection = "**Current session (prioritize matching these):**\n" + profileLines(in.Session) + "\n\n"
	}
	if len(in.History) > 0 {
		data.HistorySection = "**Past preferences (use for broader taste context):**\n" + profileLines(in.History) + "\n\n"
	}
	switch {
	case in.Alpha >= 0.7:
		data.AlphaInstruction = "The user's current session inputs should heavily influence your selection.\n\n"
	case in.Alpha <= 0.3:
		data.AlphaInstruction = "Draw primarily from the user's historical taste profile.\n\n"
	}
	if n := strings.TrimSpace(in.Neighborhood); n != "" {
		data.NeighborhoodSection = "Neighborhood preference: " + n + "\n"
	}
	if len(in.Types) > 0 {
		data.TypeSection = "Restaurant type preference: " + strings.Join(in.Types, ", ") + "\n"
	}

	var buf bytes.Buffer
	if err := rankPrompt.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render rank prompt: %w", err)
	}
	return buf.String(), nil
}

func candidateLines(cands []Candidate) string {
	lines := make([]string, 0, len(cands))
	for i, c := range cands {
		var meta []string
		if c.PrimaryType != "" {
			meta = append(meta, c.PrimaryType)
		}
		if c.PriceLevel != "" {
			meta = append(meta, c.PriceLevel)
		}
		if c.Rating != nil {
			meta = append(meta, "rating: "+strconv.FormatFloat(*c.Rating, 'f', -1, 64))
		}
		if c.EditorialSummary != "" {
			meta = append(meta, c.EditorialSummary)
		}
		line := fmt.Sprintf("%d. %s", i+1, c.Name)
		if len(meta) > 0 {
			line += " — " + strings.Join(meta, ", ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func profileLines(rs []restaurants.Restaurant) string {
	lines := make([]string, 0, len(rs))
	for _, r := range rs {
		var meta []string
		if r.PrimaryType != "" {
			meta = append(meta, r.PrimaryType)
		}
		if r.PriceLevel != "" {
			meta = append(meta, r.PriceLevel)
		}
		if r.Rating != nil {
			meta = append(meta, "rating: "+strconv.FormatFloat(*r.Rating, 'f', -1, 64))
		}
		if r.ServesDineIn != nil && *r.ServesDineIn {
			meta = append(meta, "dine-in")
		}
		if r.Reservable != nil && *r.Reservable {
			meta = append(meta, "reservable")
		}
		if r.EditorialSummary != "" {
			meta = append(meta, r.EditorialSummary)
		}
		line := "- " + r.Name
		if len(meta) > 0 {
			line += ": " + strings.Join(meta, ", ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func boolText(b *bool) string {
	if b == nil {
		return "unknown"
	}
	return strconv.FormatBool(*b)
}
