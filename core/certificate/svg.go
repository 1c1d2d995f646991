package certificate

import (
	"fmt"
	"html"
	"time"
)

// RenderSVG produces the fixed-layout participation certificate as an SVG
// document embedding the four fields as literal text. It is pure: same
// inputs, same bytes.
func RenderSVG(studentName, eventName, eventDate, certificateID string) string {
	return fmt.Sprintf(svgTemplate,
		html.EscapeString(studentName),
		html.EscapeString(eventName),
		html.EscapeString(formatIssueDate(eventDate)),
		html.EscapeString(certificateID),
	)
}

// formatIssueDate renders the date like "January 2, 2006"; unparseable input
// is embedded as-is.
func formatIssueDate(date string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return date
}

const svgTemplate = `<svg width="800" height="600" xmlns="http://www.w3.org/2000/svg" style="font-family: sans-serif; background-color: #f0f4f8;">
  <rect width="100%%" height="100%%" fill="#f0f4f8"/>
  <rect x="10" y="10" width="780" height="580" fill="white" stroke="#003366" stroke-width="4"/>

  <g style="text-anchor: middle;">
    <text x="400" y="100" font-size="48" font-weight="bold" fill="#003366">
      Certificate of Participation
    </text>

    <text x="400" y="180" font-size="20" fill="#333">
      This is to certify that
    </text>

    <text x="400" y="250" font-size="36" font-weight="bold" fill="#0055a4">
      %s
    </text>

    <text x="400" y="320" font-size="20" fill="#333">
      has successfully participated in the event
    </text>

    <text x="400" y="380" font-size="28" font-weight="bold" fill="#0055a4">
      %s
    </text>

    <text x="400" y="430" font-size="18" fill="#333">
      on %s
    </text>

    <text x="400" y="520" font-size="16" font-weight="bold" fill="#003366">
      PULSE Portal
    </text>

    <text x="400" y="550" font-size="12" fill="#777">
      Certificate ID: %s
    </text>
  </g>
</svg>`
