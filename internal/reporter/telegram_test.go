package reporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryMessage(t *testing.T) {
	msg := summaryMessage(1, "01) Materia: Física <II> | Departamento: Capital & Godoy Cruz")

	assert.True(t, strings.HasPrefix(msg, "✅ <b>1 coincidencia(s)</b>\n\n"))
	assert.Contains(t, msg, "Física &lt;II&gt;")
	assert.Contains(t, msg, "Capital &amp; Godoy Cruz")
}

func TestSummaryMessage_Truncates(t *testing.T) {
	msg := summaryMessage(500, strings.Repeat("x", telegramMaxRunes+100))

	assert.True(t, strings.HasSuffix(msg, "\n…"))
	assert.Less(t, len([]rune(msg)), 4096)
}
