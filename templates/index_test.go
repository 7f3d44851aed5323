package templates

import (
	"context"
	"strings"
	"testing"

	"file-chat/models"

	"github.com/stretchr/testify/require"
)

func render(t *testing.T, username, errorCode string) string {
	t.Helper()
	var buf strings.Builder
	require.NoError(t, Index(username, errorCode).Render(context.Background(), &buf))
	return buf.String()
}

func Test_Index_Not_Joined(t *testing.T) {
	req := require.New(t)
	html := render(t, "", "")

	req.Contains(html, `action="/join"`)
	req.NotContains(html, `id="send-form"`)
	req.NotContains(html, `class="flash`)
}

func Test_Index_Joined_Escapes_Username(t *testing.T) {
	req := require.New(t)
	html := render(t, "<b>eve</b>", "")

	req.Contains(html, "&lt;b&gt;eve&lt;/b&gt;")
	req.NotContains(html, "<b>eve</b>")
	req.Contains(html, `id="send-form"`)
	req.Contains(html, `action="/leave"`)
}

func Test_Index_Error_Banner(t *testing.T) {
	req := require.New(t)

	req.Contains(render(t, "", models.ErrorInvalidUsername), "Please enter a valid username.")
	req.Contains(render(t, "bob", models.ErrorLeaveFailed), "Could not leave the chat")
	req.NotContains(render(t, "", "<script>"), `class="flash`)
}
