package share

import (
	"fmt"
	"net/url"
	"strings"

	"elenco/internal/i18n"
	"elenco/internal/models"
)

const AppName = "Somos Luz en Jesús"

type Method string

const (
	MethodNative    Method = "native"
	MethodClipboard Method = "clipboard"
)

// Plan tells the client how to share and with what.
type Plan struct {
	Method        Method `json:"method"`
	Title         string `json:"title"`
	Text          string `json:"text"`
	URL           string `json:"url"`
	ClipboardText string `json:"clipboardText"`
	Warning       string `json:"warning,omitempty"`
}

// ResolveURL prefers the configured public link over the address the client
// is currently on.
func ResolveURL(publicURL, currentURL string) string {
	if p := strings.TrimSpace(publicURL); p != "" {
		return p
	}
	return currentURL
}

// IsShareable reports whether others can open the link: an absolute http(s)
// URL that does not point at this machine.
func IsShareable(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return false
	}
	return !strings.HasSuffix(host, ".localhost")
}

// ForPost builds the plan for sharing one post.
func ForPost(post models.Post, settings models.AppSettings, currentURL string, lang models.Language, nativeAvailable bool) Plan {
	title := strings.TrimSpace(post.Title)
	if title == "" {
		title = i18n.T(lang, i18n.PostFallback)
	}

	var text string
	if lang == models.LanguageEN {
		text = fmt.Sprintf("✨ Check out: \"%s\"\n\n\"%s\"\n\nSee our post here:", AppName, title)
	} else {
		text = fmt.Sprintf("✨ Te invito a ver: \"%s\"\n\n\"%s\"\n\nMira nuestra publicación aquí:", AppName, title)
	}

	return plan(title, text, ResolveURL(settings.PublicURL, currentURL), lang, nativeAvailable)
}

// ForApp builds the plan for sharing the blog itself.
func ForApp(settings models.AppSettings, currentURL string, lang models.Language, nativeAvailable bool) Plan {
	text := "✨ Te invito a visitar: \"Somos Luz en Jesús\""
	if lang == models.LanguageEN {
		text = "✨ Check out: \"We are Light in Jesus\""
	}

	return plan(AppName, text, ResolveURL(settings.PublicURL, currentURL), lang, nativeAvailable)
}

func plan(title, text, link string, lang models.Language, nativeAvailable bool) Plan {
	p := Plan{
		Method:        MethodClipboard,
		Title:         title,
		Text:          text,
		URL:           link,
		ClipboardText: text + " " + link,
	}

	shareable := IsShareable(link)
	if nativeAvailable && shareable {
		p.Method = MethodNative
	}
	if !shareable {
		p.Warning = i18n.T(lang, i18n.ShareWarning)
	}
	return p
}
