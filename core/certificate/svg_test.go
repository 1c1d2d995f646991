package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSVG(t *testing.T) {
	t.Run("embeds the fields", func(t *testing.T) {
		svg := RenderSVG("Jane Smith", "Technical Quiz Competition", "2024-01-30", "CERT-42")
		assert.Contains(t, svg, "Certificate of Participation")
		assert.Contains(t, svg, "PULSE Portal")
		assert.Contains(t, svg, "Jane Smith")
		assert.Contains(t, svg, "Technical Quiz Competition")
		assert.Contains(t, svg, "on January 30, 2024")
		assert.Contains(t, svg, "Certificate ID: CERT-42")
	})

	t.Run("escapes markup", func(t *testing.T) {
		svg := RenderSVG("R&D <Club>", "Demo", "2024-01-30", "ID")
		assert.Contains(t, svg, "R&amp;D &lt;Club&gt;")
		assert.NotContains(t, svg, "<Club>")
	})

	t.Run("unparseable date embedded as-is", func(t *testing.T) {
		svg := RenderSVG("A", "B", "Feb 15, 2024 10:00 AM", "ID")
		assert.Contains(t, svg, "on Feb 15, 2024 10:00 AM")
	})

	t.Run("deterministic", func(t *testing.T) {
		a := RenderSVG("A", "B", "2024-01-30", "ID")
		assert.Equal(t, a, RenderSVG("A", "B", "2024-01-30", "ID"))
	})
}
