package advisor

import (
	"fmt"
	"strings"
)

// QuickInfo answers fixed reference topics (schemes, helplines) straight
// from the knowledge base, without touching the model or history.
func (e *Engine) QuickInfo(topic string) (string, bool) {
	t := strings.ToLower(topic)

	if strings.Contains(t, "योजना") || strings.Contains(t, "scheme") {
		if len(e.kb.Schemes) == 0 {
			return "", false
		}
		var b strings.Builder
		b.WriteString("📋 प्रमुख सरकारी योजनाएं:\n\n")
		for _, s := range e.kb.Schemes {
			fmt.Fprintf(&b, "🔹 %s\n   %s\n   आवेदन: %s\n\n", s.Name, s.Benefit, s.Apply)
		}
		return b.String(), true
	}

	for _, kw := range []string{"हेल्पलाइन", "helpline", "संपर्क"} {
		if strings.Contains(t, kw) {
			contacts := e.kb.EmergencyContacts
			if len(contacts) == 0 {
				return "", false
			}
			var b strings.Builder
			b.WriteString("📞 महत्वपूर्ण हेल्पलाइन:\n\n")
			fmt.Fprintf(&b, "🌾 किसान कॉल सेंटर: %s\n", orNA(contacts["kisan_call_center"]))
			fmt.Fprintf(&b, "🔬 KVK: %s\n", orNA(contacts["krishi_vigyan_kendra"]))
			fmt.Fprintf(&b, "📱 PM-KISAN: %s\n", orNA(contacts["pm_kisan_helpline"]))
			return b.String(), true
		}
	}

	return "", false
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
