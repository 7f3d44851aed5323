package templates

import (
	"context"
	"io"

	"file-chat/models"

	"github.com/a-h/templ"
)

var errorMessages = map[string]string{
	models.ErrorInvalidUsername: "Please enter a valid username.",
	models.ErrorJoinFailed:      "Could not join the chat, please try again.",
	models.ErrorLeaveFailed:     "Could not leave the chat, please try again.",
}

// ErrorMessage maps an ?error= code to the banner text. Unknown codes give "".
func ErrorMessage(code string) string {
	return errorMessages[code]
}

// Index renders the chat page for username ("" when not joined).
func Index(username, errorCode string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if msg := ErrorMessage(errorCode); msg != "" {
			if _, err := io.WriteString(w, `<div class="flash danger">`+templ.EscapeString(msg)+`</div>`); err != nil {
				return err
			}
		}

		var body string
		if username == "" {
			body = joinForm
		} else {
			body = `<p class="who">Chatting as <strong id="username">` + templ.EscapeString(username) + `</strong></p>` + chatPanel
		}
		if _, err := io.WriteString(w, body); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageTail)
		return err
	})
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Chat</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; }
#messages { border: 1px solid #ccc; height: 360px; overflow-y: auto; padding: 8px; white-space: pre-wrap; background: #fafafa; }
.flash.danger { background: #f8d7da; color: #721c24; padding: 6px; margin-bottom: 1em; }
form { margin: 8px 0; }
</style>
</head>
<body>
<h1>Chat</h1>
`

const joinForm = `<form method="post" action="/join">
<input name="username" placeholder="Pick a display name" autocomplete="off" required>
<button type="submit">Join</button>
</form>
`

const chatPanel = `
<div id="messages"></div>
<form id="send-form">
<input id="message-input" name="message" placeholder="Type your message..." autocomplete="off">
<button type="submit">Send</button>
</form>
<form method="post" action="/leave"><button type="submit">Leave</button></form>
<script>
const box = document.getElementById('messages');
async function refresh() {
  const resp = await fetch('/messages');
  if (!resp.ok) return;
  const data = await resp.json();
  box.textContent = data.messages.join('');
  box.scrollTop = box.scrollHeight;
}
document.getElementById('send-form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const input = document.getElementById('message-input');
  const resp = await fetch('/send', { method: 'POST', body: new URLSearchParams({ message: input.value }) });
  if (resp.ok) input.value = '';
  refresh();
});
const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
const ws = new WebSocket(proto + location.host + '/ws');
ws.onmessage = () => refresh();
setInterval(refresh, 3000);
refresh();
</script>
`

const pageTail = `</body>
</html>
`
