package usecase

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// themes push each generation towards a different image.
var themes = []string{
	"Use a metaphor about the moon (चाँद).",
	"Use stars and the night sky to symbolize destiny or distance (सितारे).",
	"Use rain as a symbol of emotion, pain, or romance (बारिश).",
	"Use sunset to represent endings or unspoken goodbyes (ढलती शाम).",
	"Use imagery of the ocean to express depth of feelings (समंदर).",
	"Use a river as a symbol of life's journey (नदी).",
	"Refer to the wind or breeze as a messenger of memories (हवा).",
	"Focus on eyes or gaze that speak unspoken feelings (नज़र).",
	"Use tears as silent confessions of pain or love (आँसू).",
	"Use a mirror to show self-reflection or hidden truth (आईना).",
	"Use loneliness as a silent companion (तन्हाई).",
	"Use waiting as devotion or emotional pain (इंतज़ार).",
	"Use fleeting moments as fragile memories (लम्हे).",
	"Use a candle or flame to show burning love (शमा).",
	"Use broken glass as a metaphor for shattered trust (टूटे शीशे).",
	"Use echoes to represent unanswered love (गूंज).",
}

// fallbacks are served when live generation fails.
var fallbacks = []string{
	"कोशिश करने वालों की कभी हार नहीं होती,\nलहरों से डर कर नौका पार नहीं होती।",
	"हज़ारों ख़्वाहिशें ऐसी कि हर ख़्वाहिश पे दम निकले,\nबहुत निकले मिरे अरमान लेकिन फिर भी कम निकले।",
	"दिल ही तो है न संग-ओ-ख़िश्त दर्द से भर न आए क्यूँ,\nरोएँगे हम हज़ार बार कोई हमें सताए क्यूँ।",
	"पत्ता पत्ता बूटा बूटा हाल हमारा जाने है,\nजाने न जाने गुल ही न जाने बाग़ तो सारा जाने है।",
}

type GenerateInput struct {
	Mood        string `json:"mood"`
	Purpose     string `json:"purpose"`
	Personality string `json:"personality"`
	Depth       string `json:"depth"`
}

// BuildPrompt renders the generation prompt for in. The theme and seed make
// repeated requests with the same input produce different verses.
func BuildPrompt(in GenerateInput, theme string, seed time.Time) string {
	var b strings.Builder
	b.WriteString("You are an expert Hindi Shayari writer with a Pakistani poetic style.\n\n")
	fmt.Fprintf(&b, "Mood: %s\nPurpose: %s\nTone/Personality: %s\nEmotional Depth: %s\n\n", in.Mood, in.Purpose, in.Personality, in.Depth)
	fmt.Fprintf(&b, "Random Context to make it unique: %s\nSeed: %d (Ensure distinct output from previous requests)\n\n", theme, seed.UnixMilli())
	b.WriteString(`Task:
Write a short, original shayari (2-4 lines).

Style Guidelines:
- Pakistani Urdu Shayari influence
- Soft, elegant, soulful expression
- Urdu-touch words allowed (ishq, khamoshi, yaadein, wafaa, tanhaai, dard)
- Natural rhythm and depth like classical mushaira shayari

Rules:
- Hindi / Hinglish mix allowed
- No emojis
- Avoid cliches and copied verses
- End with an emotionally impactful line
- Do NOT repeat previously generated verses.
`)
	return b.String()
}

func randomTheme() string { return themes[rand.IntN(len(themes))] }

func randomFallback() string { return fallbacks[rand.IntN(len(fallbacks))] }
