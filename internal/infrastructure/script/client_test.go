package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))

	long := strings.Repeat("a", 600)
	out := truncateString(long, 500)
	assert.Contains(t, out, "... [truncated, total 600 chars]")
	assert.True(t, strings.HasPrefix(out, strings.Repeat("a", 500)))
}

func TestTruncateBase64(t *testing.T) {
	payload := strings.Repeat("QUJD", 100) // 400 chars of base64
	body := `{"fileName":"scan.jpg","base64Data":"` + payload + `"}`

	out := truncateBase64(body, 100)
	assert.Contains(t, out, "[base64 truncated, total 400 chars]")
	assert.Contains(t, out, "fileName")
	assert.Less(t, len(out), len(body))

	// Short runs are left alone
	plain := `{"action":"insert","rowData":"[\"a\",\"b\"]"}`
	assert.Equal(t, plain, truncateBase64(plain, 100))
}
