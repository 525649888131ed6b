package server

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/krishigpt/server/internal/advisor/media"
	"github.com/krishigpt/server/internal/metrics"
	logx "github.com/krishigpt/server/pkg/logger"
	"github.com/labstack/echo/v4"
)

const (
	maxWhatsAppReply = 1500
	helplineFooter   = "\n\n---\n📞 किसान हेल्पलाइन: 1551"

	engineDownReply = "❌ सर्वर में तकनीकी समस्या है। कृपया 5 मिनट बाद प्रयास करें।\n\n📞 किसान हेल्पलाइन: 1551"
	emptyQueryReply = "🤔 कृपया अपना सवाल लिखें।\nउदाहरण: टमाटर में पत्ते पीले हो रहे हैं"
	clearedReply    = "✅ बातचीत का इतिहास साफ हो गया।\n\n🔄 अब नया सवाल पूछें!"

	helplineReply = "📞 महत्वपूर्ण हेल्पलाइन:\n\n" +
		"🌾 किसान कॉल सेंटर: 1551 (टोल फ्री)\n" +
		"📱 PM-KISAN हेल्पलाइन: 155261\n" +
		"🔬 नजदीकी KVK: kvk.icar.gov.in\n\n" +
		"किसी भी समस्या के लिए 1551 पर कॉल करें।"

	schemeReply = "📋 प्रमुख सरकारी योजनाएं:\n\n" +
		"1) PM-KISAN — ₹6,000/वर्ष\n" +
		"2) PMFBY — फसल बीमा\n" +
		"3) KCC — सस्ती ऋण सुविधा\n\n" +
		"किसी योजना का नाम लिखें विस्तृत जानकारी के लिए."
)

var (
	greetingWords = wordSet("hi", "hello", "start", "शुरू", "नमस्कार", "हेलो", "हाय", "menu", "help", "मदद")
	resetWords    = wordSet("clear", "reset", "नया", "नवीन", "रीसेट", "new")
	helplineWords = wordSet("helpline", "हेल्पलाइन", "फोन", "contact", "संपर्क")
	schemeWords   = wordSet("योजना", "scheme", "schemes", "योजनाएं", "yojana")
)

// twiml is the minimal Twilio messaging response document.
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

func (s *Server) whatsappStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "WhatsApp webhook is active",
		"service": "KrishiGPT",
	})
}

// whatsappWebhook handles inbound Twilio messages. Twilio retries on
// non-200 responses, so every outcome, including internal failure, is a
// 200 with a TwiML body.
func (s *Server) whatsappWebhook(c echo.Context) error {
	if s.sig != nil {
		form, err := c.FormParams()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest)
		}
		requestURL := c.Scheme() + "://" + c.Request().Host + c.Request().RequestURI
		if !s.sig.valid(requestURL, form, c.Request().Header.Get("X-Twilio-Signature")) {
			return echo.NewHTTPError(http.StatusForbidden)
		}
	}

	body := strings.TrimSpace(c.FormValue("Body"))
	sender := c.FormValue("From") // e.g. whatsapp:+919876543210
	senderName := c.FormValue("ProfileName")
	if senderName == "" {
		senderName = "किसान"
	}

	logx.Info().Str("from", shortSender(sender)).Str("body", head(body, 80)).Msg("whatsapp message received")

	if s.engine == nil {
		return s.reply(c, engineDownReply)
	}

	lower := strings.ToLower(body)
	switch {
	case greetingWords[lower]:
		return s.reply(c, welcomeMessage(senderName))
	case resetWords[lower]:
		s.engine.ClearHistory(c.Request().Context(), sender)
		return s.reply(c, clearedReply)
	case helplineWords[lower]:
		return s.reply(c, helplineReply)
	case schemeWords[lower]:
		return s.reply(c, schemeReply)
	}

	query := body
	if c.FormValue("NumMedia") != "" && c.FormValue("NumMedia") != "0" {
		answer, mediaQuery := s.handleMedia(c)
		if answer != "" {
			return s.reply(c, answer)
		}
		if mediaQuery != "" {
			query = mediaQuery
		}
	}

	if query == "" {
		return s.reply(c, emptyQueryReply)
	}

	metrics.RequestsTotal.WithLabelValues("whatsapp").Inc()
	answer := s.engine.Respond(c.Request().Context(), sender, query, nil)
	if len([]rune(answer)) > maxWhatsAppReply {
		answer = string([]rune(answer)[:maxWhatsAppReply-50]) + "\n\n... (अधिक जानकारी के लिए वेबसाइट देखें)"
	}
	return s.reply(c, answer+helplineFooter)
}

// handleMedia runs the voice or image pipeline for the first attachment.
// It returns either a finished answer (image diagnosis) or a transcribed
// query for the engine. Failures fall through to the text path.
func (s *Server) handleMedia(c echo.Context) (answer, query string) {
	if s.fetcher == nil || s.media == nil {
		return "", ""
	}

	ctx := c.Request().Context()
	mediaURL := c.FormValue("MediaUrl0")
	contentType := c.FormValue("MediaContentType0")

	data, fetchedType, err := s.fetcher.Download(ctx, mediaURL)
	if err != nil {
		logx.Error().Err(err).Msg("media download failed")
		return "", ""
	}
	if fetchedType != "" {
		contentType = fetchedType
	}

	switch {
	case strings.HasPrefix(contentType, "audio/"):
		text, err := s.media.Transcribe(ctx, data, contentType)
		if err != nil {
			logx.Error().Err(err).Msg("voice transcription failed")
			return "🎤 आवाज समझ नहीं आई। कृपया अपना सवाल लिखकर भेजें।", ""
		}
		logx.Info().Str("language", media.DetectLanguage(text)).Msg("voice note transcribed")
		return "", text
	case strings.HasPrefix(contentType, "image/"):
		diagnosis, err := s.media.Diagnose(ctx, data, contentType)
		if err != nil {
			logx.Error().Err(err).Msg("image diagnosis failed")
			return "📷 तस्वीर की जांच नहीं हो पाई। कृपया समस्या लिखकर बताएं।", ""
		}
		return diagnosis + helplineFooter, ""
	default:
		return "", ""
	}
}

func (s *Server) reply(c echo.Context, body string) error {
	return c.XML(http.StatusOK, twiml{Message: body})
}

func welcomeMessage(name string) string {
	return "🌾 KrishiGPT में आपका स्वागत है, " + name + "! 🙏\n\n" +
		"मैं आपका AI कृषि सलाहकार हूं। मुझसे पूछें:\n" +
		"• फसल की बीमारी और इलाज\n" +
		"• खाद-उर्वरक की जानकारी\n" +
		"• सरकारी योजनाएं\n" +
		"• कीट नियंत्रण\n\n" +
		"कैसे पूछें: बस अपना सवाल हिंदी या मराठी में लिखें।\n" +
		"उदाहरण: \"कपास में गुलाबी सुंडी का इलाज\" या \"टमाटर में पत्ते पीले हैं\"\n\n" +
		"🔄 रीसेट: \"नया\" लिखें\n" +
		"💬 अब अपना सवाल पूछें! 👇"
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

func shortSender(sender string) string {
	s := strings.TrimPrefix(sender, "whatsapp:")
	if len(s) > 10 {
		return s[len(s)-10:]
	}
	return s
}

func head(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
