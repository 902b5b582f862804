package i18n

import (
	"maps"

	"golang.org/x/text/language"

	"elenco/internal/models"
)

type Key string

const (
	AppName      Key = "appName"
	Subtitle     Key = "subtitle"
	MyPosts      Key = "myPosts"
	CreatePost   Key = "createPost"
	NoPosts      Key = "noPosts"
	FirstPost    Key = "firstPost"
	NoMedia      Key = "noMedia"
	NoMyPosts    Key = "noMyPosts"
	MissingKey   Key = "missingKey"
	Settings     Key = "settings"
	ShareApp     Key = "shareApp"
	LinkCopied   Key = "linkCopied"
	CoverUpdated Key = "coverUpdated"
	BlobWarning  Key = "blobWarning"
	ShareWarning Key = "shareWarning"
	PostFallback Key = "postFallback"
	TooLarge     Key = "tooLarge"
)

var messages = map[models.Language]map[Key]string{
	models.LanguageEN: {
		AppName:      "Blog Elenco",
		Subtitle:     "We are light in Jesus",
		MyPosts:      "My Posts",
		CreatePost:   "Create Post",
		NoPosts:      "Welcome! No posts yet.",
		FirstPost:    "Start by sharing the first photo or video of the cast!",
		NoMedia:      "No media posts to display.",
		NoMyPosts:    "You haven't posted anything yet.",
		MissingKey:   "Gemini API key not found. AI features (Auto-caption, Polish Text) will not work.",
		Settings:     "Settings",
		ShareApp:     "Share",
		LinkCopied:   "Link copied to clipboard!",
		CoverUpdated: "Cover photo updated successfully!",
		BlobWarning:  "Private preview link. Set a public link in Settings for others to see.",
		ShareWarning: "WARNING: You are using a temporary preview link. Set a \"Public Link\" in Settings so others can see it.",
		PostFallback: "A cast post",
		TooLarge:     "Image too large. Try one under 3MB.",
	},
	models.LanguageES: {
		AppName:      "Blog Elenco",
		Subtitle:     "Somos luz en Jesús",
		MyPosts:      "Mis Publicaciones",
		CreatePost:   "Crear Publicación",
		NoPosts:      "¡Bienvenido! Aún no hay publicaciones.",
		FirstPost:    "¡Comienza compartiendo la primera foto o video del elenco!",
		NoMedia:      "No hay videos ni fotos para mostrar.",
		NoMyPosts:    "No has publicado nada aún.",
		MissingKey:   "No se encontró la clave API de Gemini. Las funciones de IA no funcionarán.",
		Settings:     "Ajustes",
		ShareApp:     "Compartir",
		LinkCopied:   "¡Enlace copiado!",
		CoverUpdated: "¡Foto de portada actualizada con éxito!",
		BlobWarning:  "Enlace de prueba privado. Configura un \"Enlace Público\" en Ajustes para que otros lo vean.",
		ShareWarning: "AVISO: Estás usando un enlace temporal de prueba. Para que otros lo vean, configura un \"Enlace Público\" en Ajustes.",
		PostFallback: "Una publicación del elenco",
		TooLarge:     "La imagen es demasiado grande. Intenta con una menor a 3MB.",
	},
}

// T returns the message in lang, falling back to the default language.
func T(lang models.Language, key Key) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return messages[models.DefaultLanguage][key]
}

// Messages returns a copy of the whole table for lang.
func Messages(lang models.Language) map[Key]string {
	m, ok := messages[lang]
	if !ok {
		m = messages[models.DefaultLanguage]
	}
	return maps.Clone(m)
}

var (
	supported = []models.Language{models.LanguageES, models.LanguageEN}
	matcher   = language.NewMatcher([]language.Tag{language.Spanish, language.English})
)

// Negotiate picks the best supported language for an Accept-Language header.
func Negotiate(acceptLanguage string, fallback models.Language) models.Language {
	if acceptLanguage == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supported[index]
}
