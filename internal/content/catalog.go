// Package content holds the static catalogs the assistant's pages browse:
// quick suggestions, the prevention hub, the welcome screen, languages and
// navigation. Everything is English only.
package content

import (
	"strings"
)

// Suggestion is a question the user can send with one tap.
type Suggestion struct {
	Text   string `json:"text"`
	Prompt string `json:"prompt"`
}

// SuggestionCategory groups suggestions under a heading.
type SuggestionCategory struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Icon        string       `json:"icon"`
	Accent      string       `json:"accent"`
	Suggestions []Suggestion `json:"suggestions"`
}

// SuggestionCatalog is the quick suggestions page.
type SuggestionCatalog struct {
	Title         string               `json:"title"`
	Subtitle      string               `json:"subtitle"`
	Categories    []SuggestionCategory `json:"categories"`
	PopularTopics []Suggestion         `json:"popular_topics"`
	Notice        Notice               `json:"notice"`
}

// PreventionCategory is one card on the prevention hub.
type PreventionCategory struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Icon   string   `json:"icon"`
	Accent string   `json:"accent"`
	Tips   []string `json:"tips"`
	Prompt string   `json:"prompt"`
}

// SeasonalTips lists prevention tips for one season.
type SeasonalTips struct {
	Season string   `json:"season"`
	Tips   []string `json:"tips"`
}

// PreventionHub is the prevention tips page.
type PreventionHub struct {
	Title      string               `json:"title"`
	Subtitle   string               `json:"subtitle"`
	Categories []PreventionCategory `json:"categories"`
	Seasonal   []SeasonalTips       `json:"seasonal"`
	Notice     Notice               `json:"notice"`
}

// Feature is a card on the welcome screen.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WelcomeScreen is the landing page content.
type WelcomeScreen struct {
	Greeting    string    `json:"greeting"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Features    []Feature `json:"features"`
	Examples    []string  `json:"examples"`
}

// Notice is a highlighted disclaimer.
type Notice struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Language is a selectable interface language.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

// NavItem is one sidebar section.
type NavItem struct {
	ID     string `json:"id"`
	Path   string `json:"path"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Accent string `json:"accent"`
}

// TopicPrompt is the chat prompt for a popular topic chip.
func TopicPrompt(topic string) string {
	return "Tell me about " + strings.ToLower(topic)
}

// CategoryPrompt is the chat prompt for a prevention category.
func CategoryPrompt(title string) string {
	return "Tell me more about " + strings.ToLower(title)
}

func suggestions(texts ...string) []Suggestion {
	out := make([]Suggestion, len(texts))
	for i, t := range texts {
		out[i] = Suggestion{Text: t, Prompt: t}
	}
	return out
}

func topics(names ...string) []Suggestion {
	out := make([]Suggestion, len(names))
	for i, n := range names {
		out[i] = Suggestion{Text: n, Prompt: TopicPrompt(n)}
	}
	return out
}

// Suggestions returns the quick suggestions catalog.
func Suggestions() SuggestionCatalog {
	return SuggestionCatalog{
		Title:    "Quick Suggestions",
		Subtitle: "Try asking about these common topics:",
		Categories: []SuggestionCategory{
			{
				ID: "symptoms", Title: "Symptoms & Diagnosis", Icon: "thermometer", Accent: "red",
				Suggestions: suggestions(
					"What are the symptoms of malaria?",
					"How to identify dengue fever symptoms?",
					"Signs of diabetes I should watch for",
					"Common cold vs flu symptoms",
				),
			},
			{
				ID: "vaccination", Title: "Vaccination", Icon: "shield", Accent: "blue",
				Suggestions: suggestions(
					"When is my next polio vaccination due?",
					"COVID-19 vaccination schedule",
					"Child vaccination calendar",
					"Flu shot timing and effectiveness",
				),
			},
			{
				ID: "prevention", Title: "Prevention", Icon: "heart", Accent: "green",
				Suggestions: suggestions(
					"Preventive measures for seasonal flu",
					"How to prevent malaria transmission?",
					"Hygiene practices for disease prevention",
					"Diet tips for diabetes prevention",
				),
			},
			{
				ID: "alerts", Title: "Health Alerts", Icon: "alert-triangle", Accent: "orange",
				Suggestions: suggestions(
					"Outbreak alerts near me",
					"Current health advisories",
					"Seasonal disease warnings",
					"Emergency health notifications",
				),
			},
		},
		PopularTopics: topics(
			"Fever Treatment",
			"Baby Care",
			"Medicine Dosage",
			"Health Checkup",
			"Emergency Care",
			"Family Health",
		),
		Notice: Notice{
			Title: "Emergency Notice",
			Body: "For immediate medical emergencies, please call your local emergency services. " +
				"This AI assistant provides general health information and should not replace professional medical advice.",
		},
	}
}

// Prevention returns the prevention hub catalog.
func Prevention() PreventionHub {
	categories := []PreventionCategory{
		{
			ID: "hygiene", Title: "Personal Hygiene", Icon: "droplets", Accent: "blue",
			Tips: []string{
				"Wash hands frequently with soap for 20+ seconds",
				"Use alcohol-based hand sanitizer when soap unavailable",
				"Cover mouth and nose when coughing or sneezing",
				"Avoid touching face with unwashed hands",
				"Keep fingernails short and clean",
			},
		},
		{
			ID: "nutrition", Title: "Nutrition & Diet", Icon: "utensils", Accent: "green",
			Tips: []string{
				"Eat a balanced diet rich in fruits and vegetables",
				"Drink at least 8 glasses of clean water daily",
				"Limit processed foods and excessive sugar",
				"Include protein sources in every meal",
				"Maintain regular meal timings",
			},
		},
		{
			ID: "activity", Title: "Physical Activity", Icon: "activity", Accent: "orange",
			Tips: []string{
				"Exercise for at least 30 minutes daily",
				"Take regular walks and use stairs",
				"Practice yoga or stretching exercises",
				"Maintain good posture while working",
				"Limit sedentary screen time",
			},
		},
		{
			ID: "environment", Title: "Environmental Health", Icon: "wind", Accent: "purple",
			Tips: []string{
				"Ensure proper ventilation in living spaces",
				"Keep surroundings clean and dry",
				"Dispose of garbage properly",
				"Eliminate standing water to prevent mosquito breeding",
				"Use air purifiers in polluted areas",
			},
		},
	}
	for i := range categories {
		categories[i].Prompt = CategoryPrompt(categories[i].Title)
	}

	return PreventionHub{
		Title:      "Prevention Hub",
		Subtitle:   "Your comprehensive guide to preventive healthcare",
		Categories: categories,
		Seasonal: []SeasonalTips{
			{Season: "Monsoon", Tips: []string{"Boil drinking water", "Avoid street food", "Use mosquito nets"}},
			{Season: "Winter", Tips: []string{"Get flu vaccination", "Keep warm", "Eat vitamin C rich foods"}},
			{Season: "Summer", Tips: []string{"Stay hydrated", "Avoid peak sun hours", "Use sunscreen"}},
		},
		Notice: Notice{
			Title: "Important Reminder",
			Body: "Prevention is the best medicine. These tips complement but don't replace professional medical advice. " +
				"Consult healthcare providers for personalized guidance and regular check-ups.",
		},
	}
}

// Welcome returns the welcome screen content.
func Welcome() WelcomeScreen {
	return WelcomeScreen{
		Greeting:    "Welcome to Health AI 🤖",
		Subtitle:    "Your AI assistant for preventive care, disease awareness, and vaccination updates",
		Description: "Empowering rural and semi-urban communities with accessible healthcare information in your local language.",
		Features: []Feature{
			{Title: "AI-Powered Assistance", Description: "Get instant answers about symptoms, treatments, and preventive measures", Icon: "bot"},
			{Title: "Vaccination Tracking", Description: "Stay updated with vaccination schedules and government health programs", Icon: "shield"},
			{Title: "Real-time Alerts", Description: "Receive timely notifications about disease outbreaks and health advisories", Icon: "alert-triangle"},
			{Title: "Multilingual Support", Description: "Available in Hindi, Bengali, Tamil, Telugu, and English", Icon: "globe"},
		},
		Examples: []string{
			"What are the symptoms of malaria?",
			"When is my next polio vaccination due?",
			"Give me preventive measures for seasonal flu",
			"Show outbreak alerts near me",
		},
	}
}

var languages = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "hi", Name: "Hindi", NativeName: "हिंदी"},
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা"},
	{Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
	{Code: "te", Name: "Telugu", NativeName: "తెలుగు"},
}

// Languages returns the selectable languages.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// IsSupportedLanguage reports whether code is a selectable language.
func IsSupportedLanguage(code string) bool {
	for _, l := range languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Navigation returns the sidebar sections.
func Navigation() []NavItem {
	return []NavItem{
		{ID: "home", Path: "/", Label: "Home", Icon: "home", Accent: "slate"},
		{ID: "chat", Path: "/chat", Label: "Health Assistant", Icon: "bot", Accent: "emerald"},
		{ID: "prevention", Path: "/prevention", Label: "Prevention Hub", Icon: "shield", Accent: "blue"},
		{ID: "symptoms", Path: "/symptoms", Label: "Symptom Checker", Icon: "activity", Accent: "amber"},
		{ID: "vaccination", Path: "/vaccination", Label: "Vaccination Center", Icon: "heart", Accent: "rose"},
	}
}
