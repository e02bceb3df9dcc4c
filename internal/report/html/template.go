package html

// ReportTemplate renders the per-document overview of persisted results
const ReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>BESTEST Results - {{.GeneratedAt}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 40px 20px;
            margin-bottom: 30px;
            border-radius: 8px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }

        header h1 {
            font-size: 2.5em;
            margin-bottom: 10px;
        }

        .summary, .document {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .summary h2, .document h2 {
            color: #667eea;
            margin-bottom: 15px;
            font-size: 1.5em;
        }

        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 15px;
            margin-top: 15px;
        }

        .stat-card {
            background: #f8f9fa;
            padding: 15px;
            border-radius: 6px;
            border-left: 4px solid #667eea;
        }

        .stat-card .label {
            font-size: 0.9em;
            color: #6c757d;
            margin-bottom: 5px;
        }

        .stat-card .value {
            font-size: 1.8em;
            font-weight: bold;
        }

        .meta {
            color: #6c757d;
            margin-bottom: 15px;
        }

        table {
            width: 100%;
            border-collapse: collapse;
        }

        th, td {
            padding: 8px 12px;
            border-bottom: 1px solid #e9ecef;
            text-align: left;
            vertical-align: top;
        }

        th {
            background: #f8f9fa;
            font-weight: 600;
        }

        td.num {
            text-align: right;
            font-family: 'Courier New', monospace;
        }

        td.cases {
            font-size: 0.85em;
            color: #6c757d;
        }

        .row-empty td { color: #f93e3e; }
        .row-nulls td.num { color: #fca130; }

        footer {
            text-align: center;
            color: #6c757d;
            padding: 20px;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>BESTEST Extraction Results</h1>
            <p>Generated {{.GeneratedAt}}</p>
        </header>

        <div class="summary">
            <h2>Summary</h2>
            <div class="stats">
                <div class="stat-card"><div class="label">Result Documents</div><div class="value">{{len .Summary.Documents}}</div></div>
                <div class="stat-card"><div class="label">Tables</div><div class="value">{{.Summary.TotalTables}}</div></div>
                <div class="stat-card"><div class="label">Values</div><div class="value">{{.Summary.TotalValues}}</div></div>
                <div class="stat-card"><div class="label">Null Values</div><div class="value">{{.Summary.TotalNulls}}</div></div>
            </div>
        </div>

        {{range .Summary.Documents}}
        <div class="document">
            <h2>{{.Software}} {{.Version}}</h2>
            <p class="meta">{{.File}}{{if .ReleaseDate}} &middot; released {{.ReleaseDate}}{{end}} &middot; {{caseCount .}} case(s)</p>
            <table>
                <thead>
                    <tr>
                        <th>Table</th>
                        <th>Cases</th>
                        <th>Values</th>
                        <th>Nulls</th>
                        <th>Case IDs</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Tables}}
                    <tr class="{{tableRow .}}">
                        <td>{{.Name}}</td>
                        <td class="num">{{len .Cases}}</td>
                        <td class="num">{{.Values}}</td>
                        <td class="num">{{.Nulls}}</td>
                        <td class="cases">{{join .Cases ", "}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </div>
        {{else}}
        <div class="document">
            <h2>No result documents found</h2>
            <p>Run the extraction on an input directory first, then pass the results directory.</p>
        </div>
        {{end}}

        <footer>
            <p>Generated by <strong>bestest-extract</strong></p>
        </footer>
    </div>
</body>
</html>
`
