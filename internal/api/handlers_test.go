package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itmedia/expresspay-payments/internal/billing"
	"github.com/itmedia/expresspay-payments/internal/expresspay"
)

const (
	testToken  = "a75b74cbcfe446509e8ee874f421bd66"
	testSecret = "sandbox.expresspay.by"
)

// newTestRouter wires a real client against a stub gateway that replies
// with the given body, so handler tests exercise the full path down to the
// wire format.
func newTestRouter(t *testing.T, gatewayBody string) http.Handler {
	t.Helper()

	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(gatewayBody))
	}))
	t.Cleanup(stub.Close)

	signer, err := expresspay.NewSignatureProvider(true, testSecret, true, testSecret)
	require.NoError(t, err)

	client := expresspay.NewClient(signer, testToken, stub.URL, "1", "https://shop.example/ok", "https://shop.example/fail")
	service := billing.NewService(client, zap.NewNop())
	handler := NewHandler(service, zap.NewNop())
	return SetupRouter(handler, zap.NewNop(), "test")
}

func TestCreateInvoiceEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := newTestRouter(t, `{"InvoiceNo":153}`)

		body := `{"account_no":"10","amount":100.5}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp CreateInvoiceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, int64(153), resp.InvoiceNo)
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		router := newTestRouter(t, `{}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(`{"amount":10}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GatewayError", func(t *testing.T) {
		router := newTestRouter(t, `{"Error":{"Msg":"Invalid token","MsgCode":3}}`)

		body := `{"account_no":"10","amount":100.5}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid token", resp.Error)
		assert.Equal(t, 3, resp.Code)
	})
}

func TestInvoiceStatusEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := newTestRouter(t, `{"Status":1}`)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/1/status", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"status":1}`, w.Body.String())
	})

	t.Run("BadNumber", func(t *testing.T) {
		router := newTestRouter(t, `{}`)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/abc/status", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNotificationEndpoint(t *testing.T) {
	notificationBody := `{"CmdType":1,"AccountNo":"10","Amount":"100,5"}`
	validSignature := "36744FBD9A6D415EFD9B5E46645B6FFF21381501"

	post := func(router http.Handler, data, signature string) *httptest.ResponseRecorder {
		form := url.Values{}
		if data != "" {
			form.Set("Data", data)
		}
		if signature != "" {
			form.Set("Signature", signature)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/notification", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Accepted", func(t *testing.T) {
		router := newTestRouter(t, `{}`)

		w := post(router, notificationBody, validSignature)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"cmd_type":1}`, w.Body.String())
	})

	t.Run("TamperedSignature", func(t *testing.T) {
		router := newTestRouter(t, `{}`)

		w := post(router, notificationBody, "A"+validSignature[1:])
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("MissingData", func(t *testing.T) {
		router := newTestRouter(t, `{}`)

		w := post(router, "", "whatever")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, `{}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "expresspay-payments")
}
