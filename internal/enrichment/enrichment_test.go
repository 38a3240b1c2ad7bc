package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"estoquerapido/internal/model"
)

func TestCNPJClient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("decodes a registry hit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/12345678000195", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"razao_social":"ACME LTDA","nome_fantasia":"ACME","municipio":"Sao Paulo","uf":"SP"}`))
		}))
		defer server.Close()

		reg, err := NewCNPJClient(server.URL, time.Second).Lookup(ctx, "12.345.678/0001-95")
		require.NoError(t, err)
		require.Equal(t, "ACME LTDA", reg.CorporateName)
		require.Equal(t, "ACME", reg.TradeName)
		require.Equal(t, "SP", reg.State)
	})

	t.Run("rejects a malformed CNPJ before calling out", func(t *testing.T) {
		_, err := NewCNPJClient("http://unused.invalid", time.Second).Lookup(ctx, "123")
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("maps upstream statuses to error kinds", func(t *testing.T) {
		cases := []struct {
			status int
			want   error
		}{
			{http.StatusNotFound, model.ErrNotFound},
			{http.StatusBadGateway, model.ErrTransient},
			{http.StatusTooManyRequests, model.ErrPermanent},
		}
		for _, tc := range cases {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			_, err := NewCNPJClient(server.URL, time.Second).Lookup(ctx, "12345678000195")
			require.ErrorIs(t, err, tc.want)
			server.Close()
		}
	})
}

func TestEANClient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("decodes a catalog hit and sends the token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/7891000100103.json", r.URL.Path)
			require.Equal(t, "secret", r.Header.Get("X-Cosmos-Token"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"description":"LEITE MOCA 395G","brand":{"name":"NESTLE"},"gtin":7891000100103}`))
		}))
		defer server.Close()

		info, err := NewEANClient(server.URL, "secret", time.Second).Lookup(ctx, "7891000100103")
		require.NoError(t, err)
		require.Equal(t, "LEITE MOCA 395G", info.Description)
		require.Equal(t, "NESTLE", info.Brand.Name)
	})

	t.Run("empty EAN is invalid input", func(t *testing.T) {
		_, err := NewEANClient("http://unused.invalid", "", time.Second).Lookup(ctx, "  ")
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})
}
