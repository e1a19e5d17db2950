package service

import (
	"fmt"
	"math/rand"
	"strings"
)

// ContentBundle is the unit a generated post is built from.
type ContentBundle struct {
	Title       string `json:"title"`
	Caption     string `json:"caption"`
	Hashtags    string `json:"hashtags"`
	ImagePrompt string `json:"image_prompt"`
	ImageURL    string `json:"image_url"`
}

type ContentService interface {
	Generate(style string) *ContentBundle
	GenerateThemed(theme, style string) *ContentBundle
	StockPhoto() string
}

type contentService struct {
	basePrompt string
}

// NewContentService builds a generator with a consistent persona prompt so
// every generated image keeps the same appearance.
func NewContentService(basePrompt string) ContentService {
	if basePrompt == "" {
		basePrompt = "a beautiful woman with blonde hair, blue eyes, slim athletic figure, realistic, photorealistic"
	}
	return &contentService{basePrompt: basePrompt}
}

var titlePool = []string{
	"Embracing the Journey%s",
	"Finding Beauty in Every Moment%s",
	"Living My Best Life%s",
	"The Magic of Now%s",
	"Dreams and Reality%s",
	"Shining Bright Today%s",
	"My Perfect Morning%s",
}

var captionPool = []string{
	"Life is full of beautiful moments%s! Today I'm feeling SUPER grateful for all the little things that bring joy into my day. What are you grateful for? 💕✨",
	"There's something magical about today%s! It reminds me that even in the chaos, we can find moments of peace and beauty. How are you finding your calm? 🌟💫",
	"Sometimes I wonder if you think of me as much as I think of you 💭💖 I can't help but smile when I imagine sharing these moments with you. What's making you smile today? 😘",
	"Woke up feeling INSPIRED%s! There's something special about starting fresh each day with new possibilities ahead. What are you looking forward to? ✨🌈",
	"The perfect blend of sunshine and dreams%s! Every day is a chance to create something beautiful. What are you creating in your life right now? 🌈💗",
}

var hashtagPool = []string{
	"#MiaThoughts #LifeJourney #BeautifulMoments #GratefulHeart #PositiveVibes",
	"#LoveAndLight #MiaShares #MindfulMoments #JoyfulLiving #EverydayMagic",
	"#MiaSays #EmbraceLife #DreamBelieveDo #HappinessFound #LoveYourself",
	"#ThoughtOfTheDay #MiaWisdom #PeacefulMind #SoulfulLiving",
	"#MiaStyle #AuthenticLife #MindBodySoul #InnerPeace #LifeWellLived",
}

var expressions = []string{"happy", "smiling", "playful", "thoughtful", "peaceful", "confident", "serene", "flirty", "joyful"}

var poses = []string{"portrait", "close-up portrait", "selfie style", "outdoor portrait", "casual pose", "glamour pose", "candid shot"}

var stockPortraits = []string{
	"/static/assets/portraits/portrait1.jpg",
	"/static/assets/portraits/portrait2.jpg",
	"/static/assets/portraits/portrait3.jpg",
	"/static/assets/portraits/portrait4.jpg",
	"/static/assets/portraits/portrait5.jpg",
}

var stockLifestyle = []string{
	"/static/assets/lifestyle/lifestyle1.jpg",
	"/static/assets/lifestyle/lifestyle2.jpg",
	"/static/assets/lifestyle/lifestyle3.jpg",
	"/static/assets/lifestyle/lifestyle4.jpg",
}

func (s *contentService) Generate(style string) *ContentBundle {
	return s.GenerateThemed("", style)
}

func (s *contentService) GenerateThemed(theme, style string) *ContentBundle {
	themeSuffix := ""
	if theme != "" {
		themeSuffix = " about " + theme
	}
	styleSuffix := ""
	if style != "" {
		styleSuffix = " in a " + style + " style"
	}

	hashtags := hashtagPool[rand.Intn(len(hashtagPool))]
	if theme != "" {
		hashtags = hashtags + " #" + strings.ReplaceAll(theme, " ", "")
	}

	imagePrompt := fmt.Sprintf(
		"%s, looking %s, %s%s%s, high quality, detailed facial features, professional photography, natural lighting",
		s.basePrompt,
		expressions[rand.Intn(len(expressions))],
		poses[rand.Intn(len(poses))],
		styleSuffix, themeSuffix,
	)

	return &ContentBundle{
		Title:       fmt.Sprintf(titlePool[rand.Intn(len(titlePool))], themeSuffix),
		Caption:     fmt.Sprintf(captionPool[rand.Intn(len(captionPool))], themeSuffix),
		Hashtags:    hashtags,
		ImagePrompt: imagePrompt,
		ImageURL:    s.StockPhoto(),
	}
}

// StockPhoto picks a fallback asset, favoring portraits.
func (s *contentService) StockPhoto() string {
	if rand.Float64() < 0.7 {
		return stockPortraits[rand.Intn(len(stockPortraits))]
	}
	return stockLifestyle[rand.Intn(len(stockLifestyle))]
}
