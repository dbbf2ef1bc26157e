package passcheck

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultRangeURL = "https://api.pwnedpasswords.com/range/"
	prefixLength    = 5
)

// BreachResult is the verdict from the k-anonymity range query.
type BreachResult struct {
	Breached bool
	// Count is how many times the password appeared in known breaches.
	Count int64
}

// BreachClient queries a haveibeenpwned-compatible range API without ever
// sending the password or its full hash: only the first five hex characters
// of the SHA-1 leave the process, and the matching suffix is looked up
// locally in the response.
type BreachClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// BreachClientOption configures a BreachClient.
type BreachClientOption func(*BreachClient)

// WithHTTPClient overrides the HTTP client, e.g. to tune timeouts.
func WithHTTPClient(c *http.Client) BreachClientOption {
	return func(bc *BreachClient) {
		if c != nil {
			bc.httpClient = c
		}
	}
}

// WithBaseURL overrides the range API endpoint, for tests and mirrors.
func WithBaseURL(u string) BreachClientOption {
	return func(bc *BreachClient) {
		if u != "" {
			bc.baseURL = strings.TrimSuffix(u, "/") + "/"
		}
	}
}

// NewBreachClient creates a client for the public pwnedpasswords range API.
func NewBreachClient(opts ...BreachClientOption) *BreachClient {
	bc := &BreachClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultRangeURL,
		userAgent:  "guardkit-passcheck",
	}
	for _, opt := range opts {
		opt(bc)
	}
	return bc
}

// CheckBreached reports whether the password appears in known breach
// corpora. Outbound failures propagate; the caller decides whether a breach
// check outage blocks the operation or degrades to the heuristic signals
// alone.
func (bc *BreachClient) CheckBreached(ctx context.Context, password string) (BreachResult, error) {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := digest[:prefixLength], digest[prefixLength:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bc.baseURL+prefix, nil)
	if err != nil {
		return BreachResult{}, errors.Join(ErrBreachCheckFailed, err)
	}
	req.Header.Set("User-Agent", bc.userAgent)

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return BreachResult{}, errors.Join(ErrBreachCheckFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return BreachResult{}, fmt.Errorf("%w: unexpected status %d", ErrBreachCheckFailed, resp.StatusCode)
	}

	// Response lines are "SUFFIX:COUNT" for every hash sharing the prefix.
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		candidate, countStr, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if strings.EqualFold(candidate, suffix) {
			count, err := strconv.ParseInt(strings.TrimSpace(countStr), 10, 64)
			if err != nil {
				count = 1
			}
			return BreachResult{Breached: true, Count: count}, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return BreachResult{}, errors.Join(ErrBreachCheckFailed, err)
	}

	return BreachResult{}, nil
}
