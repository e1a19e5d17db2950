package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSentiment(t *testing.T) {
	s := NewAnalysisService()

	positive := s.Analyze("I love this, you are amazing and wonderful!")
	assert.Equal(t, SentimentPositive, positive.Sentiment)
	assert.Greater(t, positive.Confidence, 0.5)

	negative := s.Analyze("I hate this terrible, awful day")
	assert.Equal(t, SentimentNegative, negative.Sentiment)

	neutral := s.Analyze("the meeting is at three")
	assert.Equal(t, SentimentNeutral, neutral.Sentiment)
	assert.Equal(t, 0.5, neutral.Confidence)
}

func TestAnalyzeIntentFlags(t *testing.T) {
	s := NewAnalysisService()

	assert.True(t, s.Analyze("hey there!").IsGreeting)
	assert.True(t, s.Analyze("ok goodnight, talk tomorrow").IsFarewell)
	assert.True(t, s.Analyze("can you send me a selfie?").WantsImage)
	assert.False(t, s.Analyze("what did you do today?").WantsImage)
	assert.True(t, s.Analyze("what did you do today?").IsQuestion)
	assert.True(t, s.Analyze("you are so gorgeous").IsFlirty)
	assert.True(t, s.Analyze("tell me, are you real?").IsPersonal)
	assert.False(t, s.Analyze("nice weather lately.").IsQuestion)
}

func TestDetectLanguageFallsBackToEnglish(t *testing.T) {
	s := NewAnalysisService()
	assert.Equal(t, "en", s.DetectLanguage(""))
	assert.Equal(t, "en", s.DetectLanguage("ok"))
}

func TestDetectLanguageRecognizesSpanish(t *testing.T) {
	s := NewAnalysisService()
	code := s.DetectLanguage("Hola, ¿cómo estás? Espero que tengas un día maravilloso lleno de alegría")
	assert.Equal(t, "es", code)
}
