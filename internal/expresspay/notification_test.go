package expresspay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notificationBody = `{"CmdType":1,"AccountNo":"10","Amount":"100,5"}`

// The valid signature over notificationBody with the sandbox secret.
const notificationSignature = "36744FBD9A6D415EFD9B5E46645B6FFF21381501"

func newNotificationClient(t *testing.T, signingEnabled bool) *Client {
	t.Helper()
	secret := ""
	if signingEnabled {
		secret = testSecret
	}
	signer, err := NewSignatureProvider(false, "", signingEnabled, secret)
	require.NoError(t, err)
	return NewClient(signer, testToken, DefaultBaseURL, "1", "", "")
}

func TestReceiveNotification_Valid(t *testing.T) {
	client := newNotificationClient(t, true)

	notification, err := client.ReceiveNotification([]byte(notificationBody), notificationSignature)
	require.NoError(t, err)
	assert.Equal(t, NotificationNewPayment, notification.CmdType)
	assert.Equal(t, "10", notification.AccountNo)
	assert.Equal(t, "100,5", notification.Amount)
}

func TestReceiveNotification_Tampered(t *testing.T) {
	client := newNotificationClient(t, true)

	// Flip one nibble of the claimed signature.
	tampered := "A" + notificationSignature[1:]
	notification, err := client.ReceiveNotification([]byte(notificationBody), tampered)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.Nil(t, notification)
}

func TestReceiveNotification_TamperedBody(t *testing.T) {
	client := newNotificationClient(t, true)

	body := `{"CmdType":1,"AccountNo":"11","Amount":"100,5"}`
	notification, err := client.ReceiveNotification([]byte(body), notificationSignature)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.Nil(t, notification)
}

func TestReceiveNotification_SigningDisabled(t *testing.T) {
	client := newNotificationClient(t, false)

	// Any claimed signature is accepted when verification is off.
	notification, err := client.ReceiveNotification([]byte(notificationBody), "garbage")
	require.NoError(t, err)
	assert.Equal(t, NotificationNewPayment, notification.CmdType)
}

func TestReceiveNotification_MalformedBody(t *testing.T) {
	client := newNotificationClient(t, false)

	_, err := client.ReceiveNotification([]byte("not json"), "")
	var protoErr *ProtocolError
	assert.ErrorAs(t, err, &protoErr)
}
