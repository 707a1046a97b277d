package add

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-descriptor/internal/tui"
)

// RenderSuccess renders a summary after a successful flow run.
func RenderSuccess(result *Result) string {
	var b strings.Builder

	b.WriteString(tui.SuccessStyle.Render("✓ Dependency Added"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", result.Scope, tui.SelectedStyle.Render(result.Coordinate.String())))
	if result.Coordinate.IsPlatform() {
		b.WriteString(tui.SubtleStyle.Render("  platform, pins versions only"))
		b.WriteString("\n")
	}
	if result.Coordinate.ManagedBy != "" {
		b.WriteString(tui.SubtleStyle.Render(fmt.Sprintf("  version managed by %s", result.Coordinate.ManagedBy)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Updated %s (%d dependencies)\n", result.Path, result.Descriptor.Dependencies.Len()))

	return b.String()
}
