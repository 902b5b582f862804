package assist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elenco/internal/config"
)

func TestGemini_JoinsTextParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[
			{"text":"¡Hoy es "},{"text":"el estreno!"}]}}]}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	gen, err := NewGemini(ctx, config.Assist{APIKey: "test-key", Model: "gemini-2.5-flash", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	out, err := gen.GenerateText(ctx, "mejora esto")
	require.NoError(t, err)
	assert.Equal(t, "¡Hoy es el estreno!", out)

	out, err = gen.GenerateFromImage(ctx, []byte{1, 2}, "image/png", "describe")
	require.NoError(t, err)
	assert.Equal(t, "¡Hoy es el estreno!", out)
}
