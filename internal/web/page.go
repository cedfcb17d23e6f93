package web

import (
	"html/template"
	"net/http"

	"focusboard/internal/core/model"
	"focusboard/internal/mirror"

	"go.uber.org/zap"
)

type modeStyle struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type pageData struct {
	View  mirror.View
	Color string
	Modes map[model.Mode]modeStyle
}

var pageTemplate = template.Must(template.New("timer-popup").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Focus Timer</title>
<style>
html, body { margin: 0; height: 100%; font-family: sans-serif; }
body { display: flex; flex-direction: column; align-items: center; justify-content: center; }
#label { font-size: 14px; color: #666; margin-bottom: 8px; }
#clock { font-size: 56px; font-weight: bold; font-variant-numeric: tabular-nums; margin-bottom: 12px; }
#status { font-size: 12px; font-weight: 500; }
#footer { position: absolute; bottom: 8px; width: 100%; text-align: center; font-size: 10px; color: #999; }
</style>
</head>
<body style="background: {{.Color}}22">
<div id="label">{{.View.Label}}</div>
<div id="clock" style="color: {{.Color}}">{{.View.Clock}}</div>
<div id="status">{{.View.Status}}</div>
<div id="footer">{{.View.Footer}}</div>
<script>
const modes = {{.Modes}};
function pad(n) { return String(n).padStart(2, "0"); }
function render(state) {
  const mode = modes[state.mode] || modes.focus;
  const left = Math.max(0, state.timeLeft);
  document.body.style.background = mode.color + "22";
  document.getElementById("label").textContent = mode.label;
  const clock = document.getElementById("clock");
  clock.textContent = pad(Math.floor(left / 60)) + ":" + pad(left % 60);
  clock.style.color = mode.color;
  const status = document.getElementById("status");
  status.textContent = state.isRunning ? "⏱️ Running" : "⏸️ Paused";
  status.style.color = state.isRunning ? "#10b981" : "#999999";
}
const events = new EventSource("/timer-popup/events");
events.onmessage = (event) => {
  const message = JSON.parse(event.data);
  if (message.type === "TIMER_UPDATE") render(message.state);
};
</script>
</body>
</html>
`))

func (server *Server) servePage(w http.ResponseWriter, r *http.Request) {
	view := mirror.Present(server.snapshot())
	modes := make(map[model.Mode]modeStyle, len(model.Modes))
	for _, mode := range model.Modes {
		modes[mode] = modeStyle{Label: mode.Label(), Color: mirror.Hex(mirror.ModeColor(mode))}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{View: view, Color: mirror.Hex(view.Color), Modes: modes}
	if err := pageTemplate.Execute(w, data); err != nil {
		server.logger.Warn("render timer page failed", zap.Error(err))
	}
}
