package controllers

import "html/template"

var indexPageTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="ru">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{.Title}}</title>
    <style>
      :root {
        --bg: #0a0a0a;
        --panel: rgba(139, 0, 0, 0.16);
        --primary: #dc2626;
        --muted: #a1a1aa;
        --border: rgba(220, 38, 38, 0.45);
      }
      * { box-sizing: border-box; }
      body {
        margin: 0;
        min-height: 100vh;
        background-color: var(--bg);
        background-image:
          linear-gradient(rgba(139, 0, 0, 0.1) 1px, transparent 1px),
          linear-gradient(90deg, rgba(139, 0, 0, 0.1) 1px, transparent 1px);
        background-size: 40px 40px;
        color: #f4f4f5;
        font-family: ui-sans-serif, system-ui, -apple-system, "Segoe UI", Roboto, sans-serif;
      }
      main { max-width: 960px; margin: 0 auto; padding: 48px 16px; text-align: center; }
      h1 {
        margin: 0;
        font-size: clamp(40px, 9vw, 96px);
        letter-spacing: 0.08em;
        color: var(--primary);
        text-shadow: 0 0 24px rgba(220, 38, 38, 0.6);
      }
      .tagline { color: var(--muted); font-style: italic; margin: 12px 0 36px; font-size: 20px; }
      button.fate {
        background: var(--primary);
        color: #fff;
        border: 0;
        border-radius: 8px;
        padding: 18px 36px;
        font-size: 20px;
        font-weight: 700;
        letter-spacing: 0.05em;
        cursor: pointer;
        box-shadow: 0 0 32px rgba(220, 38, 38, 0.4);
      }
      button.fate:disabled { opacity: 0.6; cursor: wait; }
      .card {
        margin: 36px auto 0;
        padding: 28px;
        border: 2px solid var(--border);
        border-radius: 12px;
        background: var(--panel);
      }
      .grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; }
      .cell { border: 1px solid var(--border); border-radius: 8px; padding: 18px 8px; }
      .value { font-size: clamp(28px, 6vw, 56px); font-weight: 800; color: var(--primary); }
      .label { color: var(--muted); font-size: 14px; letter-spacing: 0.1em; }
      .stamp { color: var(--muted); margin-top: 20px; }
      .countdown-title { color: var(--muted); margin: 24px 0 12px; letter-spacing: 0.1em; }
      .actions { margin-top: 20px; }
      .actions a { color: var(--primary); }
      .history { margin-top: 48px; text-align: left; }
      .history h2 { color: var(--primary); letter-spacing: 0.08em; }
      .history ul { list-style: none; padding: 0; margin: 0; }
      .history li {
        display: flex;
        justify-content: space-between;
        gap: 12px;
        padding: 12px 16px;
        border-bottom: 1px solid rgba(220, 38, 38, 0.2);
      }
      .history .when { color: var(--muted); }
      .empty { color: var(--muted); font-style: italic; text-align: center; }
      .empty .small { font-size: 14px; }
      .card-heading { color: var(--primary); font-size: 30px; margin: 0 0 8px; }
      .subline { color: var(--muted); font-style: italic; margin: 0 0 24px; }
      .epitaph { color: var(--primary); font-style: italic; font-size: 14px; }
      footer { margin-top: 56px; color: var(--muted); font-style: italic; }
      .hidden { display: none; }
      .shake { animation: shake 0.35s linear infinite; }
      .shake-hard { animation: shake 0.18s linear infinite; }
      @keyframes shake {
        0% { transform: translate(0, 0); }
        25% { transform: translate(-3px, 2px); }
        50% { transform: translate(3px, -2px); }
        75% { transform: translate(-2px, -3px); }
        100% { transform: translate(0, 0); }
      }
      @media (max-width: 640px) { .grid { grid-template-columns: repeat(2, 1fr); } }
    </style>
  </head>
  <body>
    <main id="root">
      <h1>{{.Title}}</h1>
      <p class="tagline">{{.Tagline}}</p>

      <h2 class="card-heading">{{.CardHeading}}</h2>
      <p class="subline">{{.CardSubline}}</p>
      <button id="fate" class="fate" type="button">{{.ButtonIdle}}</button>

      <section id="current" class="card hidden">
        <div class="grid" id="current-grid"></div>
        <div class="stamp" id="current-stamp"></div>
        <p class="epitaph">{{.Epitaph}}</p>
        <div id="countdown-box" class="hidden">
          <div class="countdown-title">ОСТАЛОСЬ</div>
          <div class="grid" id="countdown-grid"></div>
          <div class="stamp" id="countdown-human"></div>
        </div>
        <div class="actions"><a id="export" href="#" download>Скачать изображение</a></div>
      </section>

      <section class="history">
        <h2>{{.HistoryTitle}}</h2>
        <ul id="history"></ul>
        <div id="history-empty" class="empty">
          <p>{{index .EmptyHistory 0}}</p>
          <p class="small">{{index .EmptyHistory 1}}</p>
        </div>
      </section>

      <footer>{{.Footer}}</footer>
    </main>

    <script>
      (function () {
        const LABELS = {{.Labels}};
        const SHORT = ['л', 'м', 'д', 'ч', 'мин', 'сек'];
        const FIELDS = ['years', 'months', 'days', 'hours', 'minutes', 'seconds'];
        const IDLE = {{.ButtonIdle}};
        const BUSY = {{.ButtonBusy}};
        const STAMP = {{.Stamp}};
        const SOUND = {{.SoundEnabled}};
        const COUNTDOWN = {{.Countdown}};

        const root = document.getElementById('root');
        const button = document.getElementById('fate');
        const current = document.getElementById('current');
        const exportLink = document.getElementById('export');
        let currentId = '';

        function el(tag, cls, text) {
          const node = document.createElement(tag);
          if (cls) node.className = cls;
          if (text !== undefined) node.textContent = text;
          return node;
        }

        function fillGrid(id, b) {
          const grid = document.getElementById(id);
          grid.replaceChildren();
          FIELDS.forEach(function (f, i) {
            const cell = el('div', 'cell');
            cell.appendChild(el('div', 'value', String(b[f] || 0)));
            cell.appendChild(el('div', 'label', LABELS[i]));
            grid.appendChild(cell);
          });
        }

        function shortLine(b) {
          return FIELDS.map(function (f, i) { return (b[f] || 0) + SHORT[i]; }).join(' ');
        }

        function setBusy(busy) {
          button.disabled = busy;
          button.textContent = busy ? BUSY : IDLE;
        }

        function playCue(cue) {
          if (!SOUND || !cue) return;
          try {
            const audio = new Audio('/api/cues/' + encodeURIComponent(cue));
            audio.play().catch(function () {});
          } catch (_) {}
        }

        function showPrediction(p) {
          currentId = p.id;
          fillGrid('current-grid', p);
          document.getElementById('current-stamp').textContent = STAMP + p.date;
          exportLink.href = '/api/predictions/' + encodeURIComponent(p.id) + '/image';
          document.getElementById('countdown-box').classList.toggle('hidden', !(COUNTDOWN && p.targetTimestamp));
          current.classList.remove('hidden');
        }

        function showCountdown(c) {
          if (!c || c.id !== currentId) return;
          fillGrid('countdown-grid', c.countdown);
          document.getElementById('countdown-human').textContent = c.human;
        }

        function retire() {
          currentId = '';
          current.classList.add('hidden');
        }

        function renderHistory(items) {
          const list = document.getElementById('history');
          list.replaceChildren();
          document.getElementById('history-empty').classList.toggle('hidden', items.length > 0);
          items.forEach(function (p) {
            const li = el('li');
            li.appendChild(el('span', 'when', p.date));
            li.appendChild(el('span', '', shortLine(p)));
            list.appendChild(li);
          });
        }

        function refreshHistory() {
          fetch('/api/history?limit=50')
            .then(function (r) { return r.ok ? r.json() : []; })
            .then(renderHistory)
            .catch(function () {});
        }

        function onPhase(ev) {
          setBusy(ev.busy);
          root.classList.toggle('shake', ev.phase === 'disturbance1');
          root.classList.toggle('shake-hard', ev.phase === 'disturbance2');
          if (ev.phase === 'reveal' || ev.phase === 'done') {
            root.classList.remove('shake', 'shake-hard');
          }
          playCue(ev.cue);
        }

        button.addEventListener('click', function () {
          setBusy(true);
          fetch('/api/generate', { method: 'POST' })
            .then(function (r) { if (r.status !== 202 && r.status !== 409) setBusy(false); })
            .catch(function () { setBusy(false); });
        });

        const es = new EventSource('/api/events');
        es.onmessage = function (e) {
          let ev;
          try { ev = JSON.parse(e.data); } catch (_) { return; }
          switch (ev.type) {
            case 'phase': onPhase(ev.data); break;
            case 'prediction': showPrediction(ev.data); refreshHistory(); break;
            case 'countdown': showCountdown(ev.data); break;
            case 'retired': if (ev.data && ev.data.id === currentId) retire(); break;
          }
        };

        refreshHistory();
      })();
    </script>
  </body>
</html>
`))
