package pubsub_test

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/JerryMichels/bitpay-app/internal/infrastructure/pubsub"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

var testMessage = `{"event":"WALLET_ADDED","key_id":"k","wallet":{"id":"w","coin":"btc","chain":"btc","network":"livenet","account":0}}`

type receiver struct {
	lock     sync.Mutex
	received map[string][]string
	secrets  map[string]string
}

func TestPubSubService(t *testing.T) {
	rcv := &receiver{
		received: make(map[string][]string),
		secrets:  make(map[string]string),
	}
	server := newTestWebServer(t, rcv)
	t.Cleanup(server.Close)

	pubsubSvc, err := pubsub.NewService("", nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		//nolint
		pubsubSvc.Store().Close()
	})

	walletAddedEndpoint := server.URL + "/walletadded"
	allEventsEndpoint := server.URL + "/allevents"

	testSubs := []struct {
		topic    string
		endpoint string
		secret   string
	}{
		{ports.WalletAddedTopic, walletAddedEndpoint, randomSecret()},
		{ports.WalletAddedTopic, walletAddedEndpoint, ""},
		{ports.AnyTopic, allEventsEndpoint, ""},
	}
	for _, s := range testSubs {
		subID, err := pubsubSvc.Subscribe(s.topic, s.endpoint, s.secret)
		require.NoError(t, err)
		require.NotEmpty(t, subID)
		if s.secret != "" {
			rcv.secrets[subID] = s.secret
		}
	}

	_, err = pubsubSvc.Subscribe(ports.KeyCreatedTopic, "not an url", "")
	require.Error(t, err)

	subs := pubsubSvc.ListSubscriptionsForTopic(ports.WalletAddedTopic)
	require.Len(t, subs, len(testSubs))
	securedCount := 0
	for _, sub := range subs {
		require.NotEmpty(t, sub.Id())
		if sub.IsSecured() {
			securedCount++
		}
	}
	require.Equal(t, 1, securedCount)

	require.Len(t, pubsubSvc.ListSubscriptionsForTopic(ports.KeyCreatedTopic), 1)
	require.Len(t, pubsubSvc.ListSubscriptionsForTopic(ports.AnyTopic), 1)
	require.Len(t, pubsubSvc.ListSubscriptionsForTopic(ports.UnspecifiedTopic), 3)

	// Should invoke all hooks.
	err = pubsubSvc.Publish(ports.WalletAddedTopic, testMessage)
	require.NoError(t, err)

	rcv.lock.Lock()
	require.Len(t, rcv.received["/walletadded"], 2)
	require.Len(t, rcv.received["/allevents"], 1)
	require.Equal(t, testMessage, rcv.received["/allevents"][0])
	rcv.lock.Unlock()

	for i, s := range subs {
		err := pubsubSvc.Unsubscribe(s.Topic(), s.Id())
		require.NoError(t, err)

		subs := pubsubSvc.ListSubscriptionsForTopic(ports.UnspecifiedTopic)
		require.Len(t, subs, len(testSubs)-1-i)
	}

	err = pubsubSvc.Unsubscribe(ports.AnyTopic, "unknown")
	require.ErrorIs(t, err, pubsub.ErrSubscriptionNotFound)

	// Checks that it's all ok if there are no hooks to invoke.
	err = pubsubSvc.Publish(ports.KeyCreatedTopic, testMessage)
	require.NoError(t, err)
}

func TestPublishFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	))
	t.Cleanup(server.Close)

	pubsubSvc, err := pubsub.NewService("", nil)
	require.NoError(t, err)

	_, err = pubsubSvc.Subscribe(ports.AnyTopic, server.URL, "")
	require.NoError(t, err)

	err = pubsubSvc.Publish(ports.KeyCreatedTopic, testMessage)
	require.Error(t, err)
}

func newTestWebServer(t *testing.T, rcv *receiver) *httptest.Server {
	handleFn := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Bad method", http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Content-Type") == "" {
			http.Error(w, "Missing Content-Type header", http.StatusUnsupportedMediaType)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			tokenString := strings.TrimPrefix(auth, "Bearer ")
			_, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				rcv.lock.Lock()
				defer rcv.lock.Unlock()
				for _, secret := range rcv.secrets {
					return []byte(secret), nil
				}
				return nil, jwt.ErrInvalidKey
			})
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
		}

		defer r.Body.Close()
		payload, _ := io.ReadAll(r.Body)

		rcv.lock.Lock()
		rcv.received[r.URL.Path] = append(rcv.received[r.URL.Path], string(payload))
		rcv.lock.Unlock()

		t.Logf("received request on %s", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/walletadded", handleFn)
	mux.HandleFunc("/allevents", handleFn)
	return httptest.NewServer(mux)
}

func randomSecret() string {
	b := make([]byte, 32)
	//nolint
	rand.Read(b)
	return hex.EncodeToString(b)
}
