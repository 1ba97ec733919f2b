package server

import (
	"html/template"
	"net/http"

	"github.com/tallyhq/tally/internal/models"
)

// authPageData holds the template data for the post-sign-in popup page.
type authPageData struct {
	Success bool
	Name    string
	Email   string
	Message string
}

var authPageTemplate = template.Must(template.New("auth").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Success}}Signed in{{else}}Sign-in failed{{end}} — Tally</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,sans-serif;background:#0f1117;color:#e1e4e8;min-height:100vh;display:flex;align-items:center;justify-content:center}
.card{background:#161b22;border:1px solid #30363d;border-radius:12px;padding:2rem;width:100%;max-width:360px;text-align:center}
h1{font-size:1.2rem;margin-bottom:.5rem;color:#f0f6fc}
p{color:#8b949e;font-size:.9rem}
.ok{color:#2ea043}
.err{color:#f85149}
</style>
</head>
<body>
<div class="card">
{{if .Success}}
<h1 class="ok">Signed in</h1>
<p>Welcome{{if .Name}}, {{.Name}}{{end}}. You can close this window.</p>
{{else}}
<h1 class="err">Sign-in failed</h1>
<p>{{.Message}}</p>
{{end}}
</div>
<script>
if (window.opener) {
{{if .Success}}
window.opener.postMessage({type:"TALLY_AUTH_SUCCESS",email:{{.Email}}}, window.location.origin);
{{else}}
window.opener.postMessage({type:"TALLY_AUTH_FAILURE"}, window.location.origin);
{{end}}
setTimeout(function(){window.close()}, 1500);
}
</script>
</body>
</html>`))

// renderAuthSuccess writes the popup page shown after a completed sign-in.
func renderAuthSuccess(w http.ResponseWriter, user *models.User) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	authPageTemplate.Execute(w, authPageData{
		Success: true,
		Name:    user.Name,
		Email:   user.Email,
	})
}

// renderAuthFailure writes the popup page shown when sign-in fails.
func renderAuthFailure(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	authPageTemplate.Execute(w, authPageData{
		Success: false,
		Message: message,
	})
}
