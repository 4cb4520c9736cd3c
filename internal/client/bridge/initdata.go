package bridge

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/adearn/internal/client/models"
)

var (
	ErrEmptyInitData    = errors.New("init data is empty")
	ErrMissingHash      = errors.New("init data has no hash")
	ErrInvalidSignature = errors.New("init data signature mismatch")
)

// InitData is the parsed launch payload the host injects into a Mini App.
type InitData struct {
	Raw        string
	User       *models.BridgeUser
	StartParam string
	AuthDate   time.Time
	Hash       string

	values url.Values
}

// ParseInitData decodes the URL-encoded launch payload. The signature is not
// checked; see Verify.
func ParseInitData(raw string) (*InitData, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyInitData
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parse init data: %w", err)
	}

	d := &InitData{
		Raw:        raw,
		StartParam: values.Get("start_param"),
		Hash:       values.Get("hash"),
		values:     values,
	}

	if u := values.Get("user"); u != "" {
		var user models.BridgeUser
		if err := json.Unmarshal([]byte(u), &user); err != nil {
			return nil, fmt.Errorf("parse init data user: %w", err)
		}
		d.User = &user
	}

	if ts := values.Get("auth_date"); ts != "" {
		sec, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse init data auth_date: %w", err)
		}
		d.AuthDate = time.Unix(sec, 0).UTC()
	}

	return d, nil
}

// DataCheckString is the newline-joined, key-sorted "k=v" list of every field
// except hash.
func (d *InitData) DataCheckString() string {
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+d.values.Get(k))
	}
	return strings.Join(pairs, "\n")
}

// Sign computes the hex signature of the payload for botToken.
func (d *InitData) Sign(botToken string) string {
	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(d.DataCheckString()))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the payload hash against botToken.
func (d *InitData) Verify(botToken string) error {
	if d.Hash == "" {
		return ErrMissingHash
	}
	want, err := hex.DecodeString(d.Sign(botToken))
	if err != nil {
		return err
	}
	got, err := hex.DecodeString(d.Hash)
	if err != nil || !hmac.Equal(want, got) {
		return ErrInvalidSignature
	}
	return nil
}
