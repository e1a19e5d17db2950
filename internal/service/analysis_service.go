package service

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Sentiment labels produced by AnalyzeSentiment.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// MessageAnalysis is the per-message signal bundle the chat pipeline keys off.
type MessageAnalysis struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
	IsGreeting bool    `json:"is_greeting"`
	IsFarewell bool    `json:"is_farewell"`
	IsQuestion bool    `json:"is_question"`
	IsFlirty   bool    `json:"is_flirty"`
	IsPersonal bool    `json:"is_personal"`
	WantsImage bool    `json:"wants_image"`
	IsNSFW     bool    `json:"is_nsfw"`
}

type AnalysisService interface {
	Analyze(text string) MessageAnalysis
	DetectLanguage(text string) string
}

type analysisService struct{}

func NewAnalysisService() AnalysisService {
	return &analysisService{}
}

var positiveWords = []string{
	"love", "like", "great", "good", "happy", "beautiful", "amazing",
	"wonderful", "sweet", "nice", "awesome", "perfect", "best", "fun",
}

var negativeWords = []string{
	"hate", "bad", "sad", "angry", "terrible", "awful", "horrible",
	"worst", "annoying", "boring", "stupid", "ugly",
}

var greetingWords = []string{"hi", "hello", "hey", "hola", "morning", "evening", "greetings"}

var farewellWords = []string{"bye", "goodbye", "goodnight", "later", "see you", "cya", "farewell"}

var imageRequestWords = []string{"photo", "picture", "pic", "image", "selfie", "show me"}

var flirtyWords = []string{"cute", "kiss", "date", "crush", "miss you", "gorgeous", "hot", "beautiful", "darling", "babe"}

var personalWords = []string{"your name", "how old", "where do you live", "what do you look like", "are you real", "do you love"}

var questionStarters = []string{"what", "who", "where", "when", "why", "how", "do ", "does ", "is ", "are ", "can ", "could ", "would "}

var nsfwWords = []string{"nude", "naked", "nsfw", "sexy", "lewd"}

func (s *analysisService) Analyze(text string) MessageAnalysis {
	lowered := strings.ToLower(text)
	words := strings.Fields(lowered)

	pos, neg := 0, 0
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:'\"")
		if containsWord(positiveWords, w) {
			pos++
		}
		if containsWord(negativeWords, w) {
			neg++
		}
	}

	analysis := MessageAnalysis{
		Sentiment:  SentimentNeutral,
		Confidence: 0.5,
		Language:   s.DetectLanguage(text),
		IsGreeting: containsAny(lowered, greetingWords),
		IsFarewell: containsAny(lowered, farewellWords),
		IsQuestion: isQuestion(lowered),
		IsFlirty:   containsAny(lowered, flirtyWords),
		IsPersonal: containsAny(lowered, personalWords),
		WantsImage: containsAny(lowered, imageRequestWords),
		IsNSFW:     containsAny(lowered, nsfwWords),
	}

	total := pos + neg
	if total > 0 {
		if pos > neg {
			analysis.Sentiment = SentimentPositive
			analysis.Confidence = float64(pos) / float64(total)
		} else if neg > pos {
			analysis.Sentiment = SentimentNegative
			analysis.Confidence = float64(neg) / float64(total)
		}
	}

	return analysis
}

// DetectLanguage returns the ISO 639-1 code of the message language, falling
// back to English when detection is unreliable.
func (s *analysisService) DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return "en"
	}

	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return "en"
	}

	code := info.Lang.Iso6391()
	if code == "" {
		return "en"
	}
	return code
}

func isQuestion(lowered string) bool {
	if strings.Contains(lowered, "?") {
		return true
	}
	for _, starter := range questionStarters {
		if strings.HasPrefix(lowered, starter) {
			return true
		}
	}
	return false
}

func containsWord(list []string, w string) bool {
	for _, item := range list {
		if item == w {
			return true
		}
	}
	return false
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
