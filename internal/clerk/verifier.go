package clerk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Svix transport headers carried on every webhook delivery.
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

const (
	secretPrefix = "whsec_"

	// Deliveries whose timestamp deviates more than this from the local
	// clock are rejected as stale or replayed.
	timestampTolerance = 5 * time.Minute
)

var (
	// ErrMissingSecret indicates the shared webhook secret was never configured.
	ErrMissingSecret = errors.New("webhook secret is not configured")
	// ErrMissingHeaders indicates at least one svix header is absent.
	ErrMissingHeaders = errors.New("missing svix headers")
	// ErrInvalidSignature indicates cryptographic verification failed,
	// covering tampering, a wrong secret and out-of-window timestamps.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Headers groups the transport values a delivery must carry.
type Headers struct {
	ID        string
	Timestamp string
	Signature string
}

// Verifier validates Svix-signed webhook payloads against a shared secret.
// The secret is injected at construction so verification never reads the
// process environment.
type Verifier struct {
	secret string
	now    func() time.Time
}

// NewVerifier builds a verifier for the given shared secret. An empty secret
// is permitted here; Verify reports it per request.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret, now: time.Now}
}

// Verify checks a delivery's authenticity and returns the decoded event
// envelope. The signed content is "id.timestamp.body"; the signature header
// holds space-separated "v1,<base64>" candidates, any one of which may match.
// Verification is pure: no state is read or written beyond the local clock.
func (v *Verifier) Verify(body []byte, h Headers) (Event, error) {
	if v.secret == "" {
		return Event{}, ErrMissingSecret
	}
	if h.ID == "" || h.Timestamp == "" || h.Signature == "" {
		return Event{}, ErrMissingHeaders
	}

	ts, err := strconv.ParseInt(h.Timestamp, 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("%w: unparsable timestamp", ErrInvalidSignature)
	}
	if drift := v.now().Sub(time.Unix(ts, 0)); drift > timestampTolerance || drift < -timestampTolerance {
		return Event{}, fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(v.secret, secretPrefix))
	if err != nil {
		return Event{}, fmt.Errorf("%w: malformed secret", ErrInvalidSignature)
	}

	expected := sign(key, h.ID, h.Timestamp, body)
	if !anySignatureMatches(h.Signature, expected) {
		return Event{}, ErrInvalidSignature
	}

	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return Event{}, fmt.Errorf("decode event envelope: %w", err)
	}
	return evt, nil
}

func sign(key []byte, id, timestamp string, body []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(id))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return mac.Sum(nil)
}

func anySignatureMatches(header string, expected []byte) bool {
	for _, candidate := range strings.Fields(header) {
		version, encoded, ok := strings.Cut(candidate, ",")
		if !ok || version != "v1" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return true
		}
	}
	return false
}
