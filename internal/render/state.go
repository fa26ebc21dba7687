package render

// StateBadge maps the backend's workflow state vocabulary to a short
// user-facing marker. Unknown states are shown as-is.
func StateBadge(state string) string {
	switch state {
	case "EXTRACT":
		return "🔍 EXTRACT"
	case "VALIDATE":
		return "📋 VALIDATE"
	case "CONFIRM":
		return "✅ CONFIRM"
	case "NOTIFY":
		return "📨 NOTIFY"
	case "CANCELLED":
		return "🚫 CANCELLED"
	case "ERROR":
		return "❌ ERROR"
	default:
		return state
	}
}
