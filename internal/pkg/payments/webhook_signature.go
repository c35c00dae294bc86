package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// signatureTolerance bounds the age of the timestamp inside the signature
// header, limiting replay of captured webhook deliveries.
const signatureTolerance = 5 * time.Minute

// VerifyStripeWebhookSignature checks a Stripe-Signature header against the
// shared signing secret. The header carries "t=<unix>,v1=<hex>,..."; the
// signed message is "<t>.<payload>" under HMAC-SHA256.
func VerifyStripeWebhookSignature(payload []byte, signatureHeader, webhookSecret string) bool {
	return verifyStripeSignatureAt(payload, signatureHeader, webhookSecret, time.Now())
}

func verifyStripeSignatureAt(payload []byte, signatureHeader, webhookSecret string, now time.Time) bool {
	header := strings.TrimSpace(signatureHeader)
	secret := strings.TrimSpace(webhookSecret)
	if header == "" || secret == "" {
		return false
	}

	var timestamp int64 = -1
	var candidates [][]byte
	for _, pair := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return false
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(v)
			if err != nil {
				continue
			}
			candidates = append(candidates, sig)
		}
	}
	if timestamp < 0 || len(candidates) == 0 {
		return false
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range candidates {
		if hmac.Equal(expected, sig) {
			return true
		}
	}
	return false
}
