package http

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/hvmartinez/coordsim/internal/pkg/config"
)

// SimulatorHandler serves the interactive simulator page: two radius
// sliders, live classification metrics, the threshold reference table, a
// banded ratio scale, and the r/R-vs-R chart. Slider ranges come from the
// simulator config; evaluation goes over the WebSocket channel with a REST
// fallback. The page is rendered once at startup since the config is static.
func SimulatorHandler(sim config.SimulatorConfig) fiber.Handler {
	var buf bytes.Buffer
	if err := simulatorTmpl.Execute(&buf, sim); err != nil {
		panic("simulator page render: " + err.Error())
	}
	page := buf.Bytes()

	return func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/html; charset=utf-8")
		return c.Send(page)
	}
}

var simulatorTmpl = template.Must(template.New("simulator").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Radius-Ratio Coordination Simulator</title>
<style>
  body{font-family:system-ui,sans-serif;margin:0;background:#fafafa;color:#222}
  header{background:#1d3557;color:#fff;padding:1rem 2rem}
  header h1{margin:0;font-size:1.3rem}
  header p{margin:.3rem 0 0;font-size:.85rem;opacity:.85}
  main{display:grid;grid-template-columns:280px 1fr;gap:1.5rem;padding:1.5rem 2rem;max-width:1200px;margin:0 auto}
  .panel{background:#fff;border:1px solid #ddd;border-radius:6px;padding:1rem}
  .panel h2{margin:0 0 .8rem;font-size:1rem}
  label{display:block;font-size:.85rem;margin-top:.8rem}
  input[type=range]{width:100%}
  .metrics{display:flex;gap:1rem;margin-bottom:1rem}
  .metric{flex:1;text-align:center;background:#fff;border:1px solid #ddd;border-radius:6px;padding:.8rem}
  .metric .value{font-size:1.6rem;font-weight:700}
  .metric .label{font-size:.75rem;color:#666}
  table{width:100%;border-collapse:collapse;font-size:.85rem}
  th,td{border:1px solid #e0e0e0;padding:.35rem .5rem;text-align:left}
  tr.active{background:#ffe9a8}
  #scale{position:relative;height:34px;border:1px solid #ccc;border-radius:4px;overflow:hidden;margin:.6rem 0}
  #scale .band{position:absolute;top:0;bottom:0}
  #scale .marker{position:absolute;top:0;bottom:0;width:2px;background:#d62828}
  #error{color:#b00020;font-size:.85rem;min-height:1.2em}
  canvas{width:100%;border:1px solid #e0e0e0;border-radius:4px;background:#fff}
  footer{text-align:center;font-size:.75rem;color:#888;padding:1rem}
</style>
</head>
<body>
<header>
  <h1>Radius-Ratio Coordination Simulator</h1>
  <p>How the cation/anion radius ratio r/R selects the stable coordination number, on the hard-sphere model.</p>
</header>
<main>
  <div class="panel">
    <h2>Ionic radii (Å)</h2>
    <label>Cation radius r: <span id="rv">{{.CationDefault}}</span>
      <input type="range" id="r" min="{{.CationMin}}" max="{{.CationMax}}" step="{{.Step}}" value="{{.CationDefault}}">
    </label>
    <label>Anion radius R: <span id="Rv">{{.AnionDefault}}</span>
      <input type="range" id="R" min="{{.AnionMin}}" max="{{.AnionMax}}" step="{{.Step}}" value="{{.AnionDefault}}">
    </label>
    <div id="error"></div>
    <h2>Stability thresholds</h2>
    <table id="thresholds">
      <thead><tr><th>r/R</th><th>NC</th><th>Geometry</th></tr></thead>
      <tbody></tbody>
    </table>
  </div>
  <div>
    <div class="metrics">
      <div class="metric"><div class="value" id="ratio">–</div><div class="label">ratio r/R</div></div>
      <div class="metric"><div class="value" id="nc">–</div><div class="label">coordination number</div></div>
      <div class="metric"><div class="value" id="geom">–</div><div class="label">geometry</div></div>
    </div>
    <div class="panel">
      <h2>Current r/R on the stability scale</h2>
      <div id="scale"></div>
      <h2>r/R against anion radius R (fixed r)</h2>
      <canvas id="chart" width="820" height="360"></canvas>
    </div>
  </div>
</main>
<footer>Based on Pauling's radius-ratio rules for ionic solids. Educational use.</footer>
<script>
"use strict";
const bandColors = ["#fde2e2","#e2f0e2","#e2e2f8","#f6eee2","#f8e2f0","#e2f4f6"];
const scaleMax = 1.1; // ratios above scaleMax render pinned at the right edge
let intervals = [];
let lastResult = null;
let sweep = [];
let ws = null;

const el = id => document.getElementById(id);

function fmt(x){ return Number(x).toFixed(3); }

function intervalLabel(iv){
  return iv.unbounded ? "[" + fmt(iv.lower) + ", ∞)" : "[" + fmt(iv.lower) + ", " + fmt(iv.upper) + ")";
}

function renderTable(){
  const body = el("thresholds").querySelector("tbody");
  body.innerHTML = "";
  intervals.forEach((iv,i) => {
    const tr = document.createElement("tr");
    if (lastResult && lastResult.interval.lower === iv.lower) tr.className = "active";
    tr.innerHTML = "<td>" + intervalLabel(iv) + "</td><td>" + iv.coordination_number + "</td><td>" + iv.geometry + "</td>";
    body.appendChild(tr);
  });
}

function renderScale(){
  const scale = el("scale");
  scale.innerHTML = "";
  intervals.forEach((iv,i) => {
    const lo = Math.min(iv.lower, scaleMax)/scaleMax;
    const hi = Math.min(iv.unbounded ? scaleMax : iv.upper, scaleMax)/scaleMax;
    const b = document.createElement("div");
    b.className = "band";
    b.style.left = (lo*100) + "%";
    b.style.width = ((hi-lo)*100) + "%";
    b.style.background = bandColors[i % bandColors.length];
    b.title = "NC " + iv.coordination_number + " " + intervalLabel(iv);
    scale.appendChild(b);
  });
  if (lastResult){
    const m = document.createElement("div");
    m.className = "marker";
    m.style.left = (Math.min(lastResult.ratio, scaleMax)/scaleMax*100) + "%";
    scale.appendChild(m);
  }
}

function renderChart(){
  const canvas = el("chart"), ctx = canvas.getContext("2d");
  const W = canvas.width, H = canvas.height, pad = 40;
  ctx.clearRect(0,0,W,H);
  if (!sweep.length) return;
  const xMin = sweep[0].anion_radius, xMax = sweep[sweep.length-1].anion_radius;
  const yMax = scaleMax;
  const X = x => pad + (x-xMin)/(xMax-xMin)*(W-2*pad);
  const Y = y => H-pad - Math.min(y,yMax)/yMax*(H-2*pad);
  // NC bands
  intervals.forEach((iv,i) => {
    const lo = Math.min(iv.lower, yMax), hi = Math.min(iv.unbounded ? yMax : iv.upper, yMax);
    ctx.fillStyle = bandColors[i % bandColors.length];
    ctx.fillRect(pad, Y(hi), W-2*pad, Y(lo)-Y(hi));
  });
  // axes
  ctx.strokeStyle = "#888"; ctx.beginPath();
  ctx.moveTo(pad,pad); ctx.lineTo(pad,H-pad); ctx.lineTo(W-pad,H-pad); ctx.stroke();
  ctx.fillStyle = "#444"; ctx.font = "11px sans-serif";
  ctx.fillText("R (Å)", W-pad+4, H-pad+4);
  ctx.fillText("r/R", pad-30, pad);
  // curve
  ctx.strokeStyle = "#1d3557"; ctx.lineWidth = 2; ctx.beginPath();
  sweep.forEach((p,i) => { i ? ctx.lineTo(X(p.anion_radius), Y(p.ratio)) : ctx.moveTo(X(p.anion_radius), Y(p.ratio)); });
  ctx.stroke();
  // current point
  if (lastResult){
    const R = parseFloat(el("R").value);
    ctx.strokeStyle = "#d62828"; ctx.lineWidth = 1; ctx.setLineDash([4,4]);
    ctx.beginPath(); ctx.moveTo(pad, Y(lastResult.ratio)); ctx.lineTo(W-pad, Y(lastResult.ratio)); ctx.stroke();
    ctx.beginPath(); ctx.moveTo(X(R), pad); ctx.lineTo(X(R), H-pad); ctx.stroke();
    ctx.setLineDash([]);
  }
}

function showResult(res){
  lastResult = res;
  el("error").textContent = "";
  el("ratio").textContent = fmt(res.ratio);
  el("nc").textContent = res.coordination_number;
  el("geom").textContent = res.geometry;
  renderTable(); renderScale(); renderChart();
}

function showError(msg){
  el("error").textContent = msg;
  el("ratio").textContent = "–"; el("nc").textContent = "–"; el("geom").textContent = "–";
}

function evaluate(){
  const r = parseFloat(el("r").value), R = parseFloat(el("R").value);
  el("rv").textContent = r.toFixed(2); el("Rv").textContent = R.toFixed(2);
  if (ws && ws.readyState === WebSocket.OPEN){
    ws.send(JSON.stringify({cation:r, anion:R}));
  } else {
    fetch("/v1/classify?cation=" + r + "&anion=" + R)
      .then(resp => resp.json().then(body => resp.ok ? showResult(body) : showError(body.message)))
      .catch(() => showError("server unreachable"));
  }
}

function refreshSweep(){
  const r = parseFloat(el("r").value);
  fetch("/v1/sweep?cation=" + r)
    .then(resp => resp.ok ? resp.json() : [])
    .then(points => { sweep = points; renderChart(); })
    .catch(() => {});
}

function connect(){
  ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = ev => {
    const msg = JSON.parse(ev.data);
    if (msg.type === "table"){ intervals = msg.intervals; renderTable(); renderScale(); renderChart(); }
    else if (msg.type === "result"){ showResult(msg.result); }
    else if (msg.type === "error"){ showError(msg.message); }
  };
  ws.onopen = evaluate;
  ws.onclose = () => { ws = null; setTimeout(connect, 2000); };
}

el("r").addEventListener("input", () => { evaluate(); refreshSweep(); });
el("R").addEventListener("input", evaluate);

fetch("/v1/table").then(resp => resp.json()).then(t => { intervals = t; renderTable(); renderScale(); });
refreshSweep();
connect();
</script>
</body>
</html>`))
