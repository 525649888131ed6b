package server

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"net/url"
	"sort"
)

// twilioValidator checks the X-Twilio-Signature header: HMAC-SHA1 over
// the full request URL followed by the POST parameters sorted by name,
// each appended as name+value, base64-encoded.
type twilioValidator struct {
	authToken string
}

func newTwilioValidator(authToken string) *twilioValidator {
	return &twilioValidator{authToken: authToken}
}

func (v *twilioValidator) valid(requestURL string, form url.Values, signature string) bool {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mac := hmac.New(sha1.New, []byte(v.authToken))
	mac.Write([]byte(requestURL))
	for _, k := range keys {
		for _, val := range form[k] {
			mac.Write([]byte(k))
			mac.Write([]byte(val))
		}
	}

	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
