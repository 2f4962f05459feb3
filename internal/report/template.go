// internal/report/template.go
package report

import "html/template"

var reportTemplate = template.Must(template.New("validation-report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --accent: #3B82F6;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --success: #10B981;
      --warning: #F59E0B;
      --border: #E2E8F0;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      background-color: var(--light);
      color: var(--text);
    }
    header {
      background-color: var(--primary);
      color: #fff;
      padding: 2rem 1.5rem;
    }
    header h1 { margin: 0 0 0.25rem; font-size: 1.6rem; }
    header .meta { color: #CBD5E1; font-size: 0.85rem; }
    main { max-width: 1100px; margin: 0 auto; padding: 1.5rem; }
    section { margin-bottom: 2rem; }
    h2 {
      font-size: 1.15rem;
      border-bottom: 1px solid var(--border);
      padding-bottom: 0.4rem;
    }
    .cards { display: flex; flex-wrap: wrap; gap: 1rem; }
    .card {
      flex: 1 1 150px;
      background: var(--background);
      border: 1px solid var(--border);
      border-radius: 8px;
      padding: 1rem;
      text-align: center;
    }
    .stat-value { font-size: 1.6rem; font-weight: 600; color: var(--accent); }
    .stat-label { color: var(--secondary); font-size: 0.85rem; margin-top: 0.25rem; }
    table {
      width: 100%;
      border-collapse: collapse;
      background: var(--background);
      border: 1px solid var(--border);
      border-radius: 8px;
    }
    th, td { padding: 0.55rem 0.8rem; text-align: left; border-bottom: 1px solid var(--border); }
    th { background: var(--light); color: var(--secondary); font-size: 0.8rem; text-transform: uppercase; }
    tr:last-child td { border-bottom: none; }
    .bar-track {
      background: var(--light);
      border-radius: 4px;
      height: 10px;
      min-width: 140px;
      overflow: hidden;
    }
    .bar-fill { background: var(--accent); height: 100%; }
    .lead .bar-fill { background: var(--success); }
    .badge {
      display: inline-block;
      padding: 0.15rem 0.55rem;
      border-radius: 999px;
      font-size: 0.75rem;
      font-weight: 600;
    }
    .badge.yes { background: rgba(16, 185, 129, 0.15); color: var(--success); }
    .badge.no { background: rgba(245, 158, 11, 0.15); color: var(--warning); }
    .chart {
      display: flex;
      align-items: flex-end;
      gap: 1.5rem;
      background: var(--background);
      border: 1px solid var(--border);
      border-radius: 8px;
      padding: 1rem;
      height: 240px;
    }
    .chart .group { flex: 1; display: flex; flex-direction: column; align-items: center; height: 100%; }
    .chart .bars { display: flex; gap: 4px; align-items: flex-end; flex: 1; width: 100%; justify-content: center; }
    .chart .bar { width: 18px; border-radius: 3px 3px 0 0; }
    .chart .bar.llm { background: var(--secondary); }
    .chart .bar.rag { background: var(--warning); }
    .chart .bar.rce { background: var(--accent); }
    .chart .name { color: var(--secondary); font-size: 0.75rem; margin-top: 0.4rem; }
    .legend { color: var(--secondary); font-size: 0.8rem; margin-top: 0.5rem; }
    .legend span { margin-right: 1rem; }
    .dot { display: inline-block; width: 10px; height: 10px; border-radius: 2px; margin-right: 4px; }
    footer { color: var(--secondary); font-size: 0.8rem; text-align: center; padding: 1.5rem; }
  </style>
</head>
<body>
  <header>
    <h1>{{ .Title }}</h1>
    <div class="meta">Run {{ .RunID }} &middot; executed {{ .ExecutionDate }} &middot; analyzed {{ .AnalysisDate }}</div>
  </header>
  <main>
    <section>
      <h2>Overview</h2>
      <div class="cards">
        {{ range .Overview }}
        <div class="card">
          <div class="stat-value">{{ .Value }}</div>
          <div class="stat-label">{{ .Label }}</div>
        </div>
        {{ end }}
      </div>
    </section>

    <section>
      <h2>Hypothesis Validation</h2>
      <table>
        <thead><tr><th></th><th>Claim</th><th>Verdict</th><th>Detail</th></tr></thead>
        <tbody>
          {{ range .Hypotheses }}
          <tr>
            <td>{{ .ID }}</td>
            <td>{{ .Claim }}</td>
            <td>{{ if .Supported }}<span class="badge yes">supported</span>{{ else }}<span class="badge no">not supported</span>{{ end }}</td>
            <td>{{ .Detail }}</td>
          </tr>
          {{ end }}
        </tbody>
      </table>
    </section>

    <section>
      <h2>Overall Performance</h2>
      <table>
        <thead><tr><th>System</th><th>Correct</th><th>Total</th><th>Accuracy</th><th></th></tr></thead>
        <tbody>
          {{ range .Overall }}
          <tr{{ if .Lead }} class="lead"{{ end }}>
            <td>{{ .System }}</td>
            <td>{{ .Correct }}</td>
            <td>{{ .Total }}</td>
            <td>{{ .Accuracy }}</td>
            <td><div class="bar-track"><div class="bar-fill" style="width: {{ printf "%.1f" .Width }}%"></div></div></td>
          </tr>
          {{ end }}
        </tbody>
      </table>
    </section>

    <section>
      <h2>Task Family Performance</h2>
      <div class="chart" id="family-chart"></div>
      <div class="legend">
        <span><span class="dot" style="background: var(--secondary)"></span>LLM</span>
        <span><span class="dot" style="background: var(--warning)"></span>LLM+RAG</span>
        <span><span class="dot" style="background: var(--accent)"></span>RCE-LLM</span>
      </div>
      <table style="margin-top: 1rem">
        <thead><tr><th>Family</th><th>Queries</th><th>LLM</th><th>LLM+RAG</th><th>RCE-LLM</th><th>Improved</th></tr></thead>
        <tbody>
          {{ range .Families }}
          <tr>
            <td>{{ .Family }}</td>
            <td>{{ .Queries }}</td>
            <td>{{ .LLM }}</td>
            <td>{{ .RAG }}</td>
            <td>{{ .RCE }}</td>
            <td>{{ if .Improved }}<span class="badge yes">yes</span>{{ else }}<span class="badge no">no</span>{{ end }}</td>
          </tr>
          {{ end }}
        </tbody>
      </table>
    </section>

    <section>
      <h2>Effect Sizes (Cohen's h)</h2>
      <div class="cards">
        {{ range .EffectSizes }}
        <div class="card">
          <div class="stat-value">{{ .H }}</div>
          <div class="stat-label">{{ .Comparison }}<br>({{ .Interpretation }})</div>
        </div>
        {{ end }}
      </div>
    </section>
  </main>
  <footer>Generated by veritas &middot; {{ .TotalQueries }} queries across {{ .FamilyCount }} task families</footer>
  <script>
    const chart = {{ .ChartJSON }};
    const host = document.getElementById("family-chart");
    chart.families.forEach((name, i) => {
      const group = document.createElement("div");
      group.className = "group";
      const bars = document.createElement("div");
      bars.className = "bars";
      [["llm", chart.llm[i]], ["rag", chart.rag[i]], ["rce", chart.rce[i]]].forEach(([cls, value]) => {
        const bar = document.createElement("div");
        bar.className = "bar " + cls;
        bar.style.height = (value * 100) + "%";
        bar.title = name + ": " + (value * 100).toFixed(1) + "%";
        bars.appendChild(bar);
      });
      const label = document.createElement("div");
      label.className = "name";
      label.textContent = name;
      group.appendChild(bars);
      group.appendChild(label);
      host.appendChild(group);
    });
  </script>
</body>
</html>
`
