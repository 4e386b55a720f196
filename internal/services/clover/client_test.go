package clover

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloversync/internal/config"
	"cloversync/internal/logger"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-token", "M123", false, logger.New("error"))
	client.baseURL = server.URL
	return client
}

func TestCreateOrder_Success(t *testing.T) {
	var gotAuth string
	var gotBody Order

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/merchants/M123/orders", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(OrderResponse{ID: "CLV42", State: "open"})
	}))

	order := &Order{State: "open", Title: "WC Order #1001"}
	resp, err := client.CreateOrder(context.Background(), order)

	require.NoError(t, err)
	require.Equal(t, "CLV42", resp.ID)
	require.Equal(t, "Bearer test-token", gotAuth)
	require.Equal(t, "WC Order #1001", gotBody.Title)
}

func TestCreateOrder_TransportErrorOnBadStatus(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid order"}`, http.StatusUnprocessableEntity)
	}))

	_, err := client.CreateOrder(context.Background(), &Order{})

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, http.StatusUnprocessableEntity, transportErr.StatusCode)
	require.Contains(t, transportErr.Body, "invalid order")
}

func TestCreateOrder_SchemaErrorOnMissingID(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"state":"open"}`))
	}))

	_, err := client.CreateOrder(context.Background(), &Order{})

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "id", schemaErr.Field)
}

func TestPrintBill_SendsReceiptRequest(t *testing.T) {
	var gotBody PrintRequest

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/merchants/M123/orders/CLV42/print", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, client.PrintBill(context.Background(), "CLV42"))
	require.Equal(t, PrintRequest{
		PrinterID:     "default",
		Type:          "receipt",
		IncludeItems:  true,
		IncludeTotals: true,
	}, gotBody)
}

func TestGetPrinters(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/merchants/M123/printers", r.URL.Path)
		w.Write([]byte(`{"elements":[{"id":"P1","name":"Kitchen"}]}`))
	}))

	printers, err := client.GetPrinters(context.Background())
	require.NoError(t, err)
	require.Len(t, printers, 1)
	require.Equal(t, "Kitchen", printers[0].Name)
}

func TestGetPrinters_SchemaErrorOnMissingElements(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	_, err := client.GetPrinters(context.Background())

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "elements", schemaErr.Field)
}

func TestTestConnection(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/merchants/M123", r.URL.Path)
		w.Write([]byte(`{"id":"M123","name":"Corner Cafe"}`))
	}))

	merchant, err := client.TestConnection(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Corner Cafe", merchant.Name)
}

func TestExchangeCodeForToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client-1", r.PostForm.Get("client_id"))
		require.Equal(t, "secret-1", r.PostForm.Get("client_secret"))
		require.Equal(t, "authcode", r.PostForm.Get("code"))
		require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		w.Write([]byte(`{"access_token":"tok-9","merchant_id":"M123"}`))
	}))
	defer server.Close()

	svc := NewOAuthService(&config.Config{
		CloverClientID:     "client-1",
		CloverClientSecret: "secret-1",
	}, logger.New("error"))
	svc.base = server.URL

	tokenResp, err := svc.ExchangeCodeForToken(context.Background(), "authcode", "https://example.com/cb")
	require.NoError(t, err)
	require.Equal(t, "tok-9", tokenResp.AccessToken)
	require.Equal(t, "M123", tokenResp.MerchantID)
}

func TestExchangeCodeForToken_SchemaErrorOnMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"merchant_id":"M123"}`))
	}))
	defer server.Close()

	svc := NewOAuthService(&config.Config{}, logger.New("error"))
	svc.base = server.URL

	_, err := svc.ExchangeCodeForToken(context.Background(), "authcode", "")

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "access_token", schemaErr.Field)
}
