package handler

import (
	"github.com/gofiber/fiber/v2"

	"docregistry/internal/infrastructure/repository"
)

type LogHandler struct {
	logRepo repository.APILogRepository
}

func NewLogHandler(logRepo repository.APILogRepository) *LogHandler {
	return &LogHandler{logRepo: logRepo}
}

// LogViewer serves the HTML page for viewing script call logs
func (h *LogHandler) LogViewer(c *fiber.Ctx) error {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Script Call Log</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: #1a1a2e; color: #eee; padding: 20px; }
        h1 { color: #00d4ff; margin-bottom: 20px; }
        .search-box { margin-bottom: 20px; display: flex; gap: 10px; }
        input[type="text"] { padding: 12px 16px; font-size: 16px; border: 2px solid #00d4ff; border-radius: 8px; background: #16213e; color: #fff; width: 300px; }
        button { padding: 12px 24px; font-size: 16px; background: #00d4ff; color: #000; border: none; border-radius: 8px; cursor: pointer; font-weight: bold; }
        button:hover { background: #00ff88; }
        table { width: 100%; border-collapse: collapse; background: #16213e; border-radius: 8px; overflow: hidden; margin-top: 10px; }
        th, td { padding: 12px; text-align: left; border-bottom: 1px solid #0f3460; }
        th { background: #0f3460; color: #00d4ff; font-weight: 600; }
        tr:hover { background: #1f4068; }
        .status-success { color: #00ff88; font-weight: bold; }
        .status-error { color: #ff4757; font-weight: bold; }
        pre { background: #0f3460; padding: 15px; border-radius: 8px; overflow: auto; white-space: pre-wrap; word-wrap: break-word; font-size: 13px; display: none; }
    </style>
</head>
<body>
    <h1>Script Call Log</h1>
    <div class="search-box">
        <input type="text" id="action" placeholder="Filter by action (fetch, insert, uploadImage...)">
        <button onclick="search()">Search</button>
        <button onclick="loadAll()">All</button>
    </div>
    <div id="tableContainer"></div>
    <script>
        function render(logs) {
            var html = '<table><thead><tr><th>ID</th><th>Time</th><th>Method</th><th>Action</th><th>Status</th><th>Duration</th><th>Response</th></tr></thead><tbody>';
            logs.forEach(function(log, idx) {
                var cls = log.status_code >= 200 && log.status_code < 300 ? 'status-success' : 'status-error';
                html += '<tr onclick="toggle(' + idx + ')">' +
                    '<td>' + log.id + '</td>' +
                    '<td>' + new Date(log.created_at).toLocaleString() + '</td>' +
                    '<td><strong>' + log.method + '</strong></td>' +
                    '<td>' + (log.action || '-') + '</td>' +
                    '<td class="' + cls + '">' + log.status_code + '</td>' +
                    '<td>' + log.duration_ms + 'ms</td>' +
                    '<td>View</td></tr>' +
                    '<tr><td colspan="7"><pre id="body-' + idx + '">' + escapeHtml(log.response_body || '(empty)') + '</pre></td></tr>';
            });
            html += '</tbody></table>';
            document.getElementById('tableContainer').innerHTML = html;
        }

        function escapeHtml(str) {
            return str.replace(/&/g, '&amp;').replace(/</g, '&lt;').replace(/>/g, '&gt;');
        }

        function toggle(idx) {
            var el = document.getElementById('body-' + idx);
            el.style.display = el.style.display === 'block' ? 'none' : 'block';
        }

        function loadAll() {
            fetch('/api/v1/logs').then(function(r) { return r.json(); }).then(function(res) { render(res.data || []); });
        }

        function search() {
            var action = document.getElementById('action').value.trim();
            if (!action) { loadAll(); return; }
            fetch('/api/v1/logs/search?action=' + encodeURIComponent(action))
                .then(function(r) { return r.json(); }).then(function(res) { render(res.data || []); });
        }

        document.addEventListener('DOMContentLoaded', loadAll);
    </script>
</body>
</html>`
	c.Set("Content-Type", "text/html")
	return c.SendString(html)
}

// GetLogs returns all logs with limit
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit > 200 {
		limit = 200
	}

	logs, err := h.logRepo.FindAll(c.Context(), limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "data": logs})
}

// SearchLogs searches logs by script action
func (h *LogHandler) SearchLogs(c *fiber.Ctx) error {
	action := c.Query("action")
	if action == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "action parameter required"})
	}

	logs, err := h.logRepo.FindByAction(c.Context(), action)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "data": logs})
}
