package browser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/require"
)

func TestInsertScriptEscapesText(t *testing.T) {
	script := insertScript("Сәлем \"Aida\"\nhttps://kaspi.kz/?a=1&b=2")

	require.Contains(t, script, `"Сәлем \"Aida\"\nhttps://kaspi.kz/?a=1&b=2"`)
	require.Contains(t, script, strconv.Quote(composeMarker))
}

func TestMarkComposeScript(t *testing.T) {
	script := markComposeScript()

	for _, sel := range composeSelectors {
		require.Contains(t, script, strings.ReplaceAll(sel, `"`, `\"`))
	}
	require.Contains(t, script, strconv.Quote(fallbackCompose))
}

func TestInvalidScript(t *testing.T) {
	require.Equal(t,
		`!!document.body && document.body.innerText.includes("Phone number shared via url is invalid")`,
		invalidScript(),
	)
}

func TestAllocatorOptions(t *testing.T) {
	require.Len(t, allocatorOptions(true, "/tmp/wa"), len(chromedp.DefaultExecAllocatorOptions)+4)
}
