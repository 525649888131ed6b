package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxMediaBytes bounds downloaded attachments (voice notes, photos).
const maxMediaBytes = 16 << 20

// TwilioFetcher downloads message attachments from Twilio's media URLs,
// which require the account credentials as basic auth.
type TwilioFetcher struct {
	AccountSID string
	AuthToken  string

	httpClient *http.Client
}

func NewTwilioFetcher(accountSID, authToken string) *TwilioFetcher {
	return &TwilioFetcher{
		AccountSID: accountSID,
		AuthToken:  authToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Download fetches the media body and reports its content type.
func (f *TwilioFetcher) Download(ctx context.Context, mediaURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.SetBasicAuth(f.AccountSID, f.AuthToken)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("media download returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaBytes))
	if err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}
