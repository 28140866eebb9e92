//go:build integration

package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/Gunvolt24/xacc_orders/internal/signing"
	"github.com/Gunvolt24/xacc_orders/internal/testutil"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/require"
)

type stack struct {
	edgeURL   string
	domainURL string
}

func startStack(t *testing.T, key testutil.Key) stack {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := testutil.Config()
	require.NoError(t, err)

	domainSrv, stopDomain, err := testutil.StartDomain(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(stopDomain)

	edgeSrv, stopEdge, err := testutil.StartEdge(ctx, cfg, domainSrv.URL, key)
	require.NoError(t, err)
	t.Cleanup(stopEdge)

	return stack{edgeURL: edgeSrv.URL, domainURL: domainSrv.URL}
}

func post(t *testing.T, url string, body []byte, sign *testutil.Key) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	if sign != nil {
		s, err := signing.NewSigner(credentials.NewStaticCredentialsProvider(sign.AccessKeyID, sign.Secret, ""), "eu-west-1", "")
		require.NoError(t, err)
		require.NoError(t, s.Sign(context.Background(), req, body))
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

// 1) edge → подпись → граница → domain → ответ возвращается без изменений
func TestStack_EdgeToDomain(t *testing.T) {
	s := startStack(t, testutil.ExternalKey)

	code, body := post(t, s.edgeURL+"/orders/", []byte(`{"ignored":true}`), nil)
	require.Equal(t, http.StatusCreated, code, body)

	var order map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &order))
	require.Len(t, order, 2)
	require.Equal(t, "OrderSubmitted Internal", order["status"])
	require.NotEmpty(t, order["id"])
}

// 2) ключ чужого аккаунта: граница отказывает, edge маскирует отказ
func TestStack_WrongAccount_Masked(t *testing.T) {
	s := startStack(t, testutil.OtherKey)

	code, body := post(t, s.edgeURL+"/orders/", nil, nil)
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, "An error occurred", body)
}

// 3) прямой неподписанный вызов внутреннего API
func TestStack_UnsignedDirectCall(t *testing.T) {
	s := startStack(t, testutil.ExternalKey)

	code, body := post(t, s.domainURL+"/prod/orders/", nil, nil)
	require.Equal(t, http.StatusForbidden, code)
	require.JSONEq(t, `{"message":"Missing Authentication Token"}`, body)
}

// 4) подписанный вызов не того маршрута и вызов чужим аккаунтом
func TestStack_SignedButNotAllowed(t *testing.T) {
	s := startStack(t, testutil.ExternalKey)

	code, body := post(t, s.domainURL+"/prod/admin/", nil, &testutil.ExternalKey)
	require.Equal(t, http.StatusForbidden, code)
	require.Contains(t, body, "execute-api:Invoke on resource: arn:aws:execute-api:eu-west-1:222222222222:dbu2yjalfg/prod/POST/admin/")

	other := testutil.OtherKey
	code, body = post(t, s.domainURL+"/prod/orders/", nil, &other)
	require.Equal(t, http.StatusForbidden, code)
	require.Contains(t, body, "User: arn:aws:iam::333333333333:")

	ext := testutil.ExternalKey
	code, _ = post(t, s.domainURL+"/prod/orders/", []byte(`{}`), &ext)
	require.Equal(t, http.StatusCreated, code)
}

// 5) уникальность идентификаторов на сквозном пути
func TestStack_UniqueIDs(t *testing.T) {
	s := startStack(t, testutil.ExternalKey)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, body := post(t, s.edgeURL+"/orders/", nil, nil)
		require.Equal(t, http.StatusCreated, code, body)

		var order map[string]string
		require.NoError(t, json.Unmarshal([]byte(body), &order))
		_, dup := seen[order["id"]]
		require.False(t, dup, "duplicate id %s", order["id"])
		seen[order["id"]] = struct{}{}
	}
}
