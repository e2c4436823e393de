package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"crowdfund/internal/contracts"
	"crowdfund/internal/domain"
	"crowdfund/internal/ledger"
	"crowdfund/internal/provider"
	"crowdfund/internal/services/campaign"
	"crowdfund/internal/web"
)

type stub struct {
	props domain.HomeProps
	err   error
}

func (s stub) Home(context.Context) (domain.HomeProps, error) { return s.props, s.err }

func (s stub) Summary(context.Context, domain.Address) (domain.CampaignSummary, error) {
	return domain.CampaignSummary{}, s.err
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHomeEmptyState(t *testing.T) {
	h := web.NewHandler(stub{props: domain.HomeProps{}}, nil)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), web.EmptyStateText)
	require.NotContains(t, rec.Body.String(), "undefined")

	rec = get(t, h, "/api/campaigns")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"campaigns":[]}`, rec.Body.String())
}

func TestHomeListsEveryCampaign(t *testing.T) {
	a := domain.BytesToAddress([]byte{0x01})
	b := domain.BytesToAddress([]byte{0x02})
	h := web.NewHandler(stub{props: domain.HomeProps{Campaigns: []domain.Address{a, b}}}, nil)

	body := get(t, h, "/").Body.String()
	require.Less(t, strings.Index(body, a.Hex()), strings.Index(body, b.Hex()))
	require.NotContains(t, body, web.EmptyStateText)
	require.Contains(t, body, `<a href="/campaigns/`+a.Hex()+`">`+a.Hex()+`</a>`)

	var payload struct {
		Campaigns []string `json:"campaigns"`
	}
	require.NoError(t, json.Unmarshal(get(t, h, "/api/campaigns").Body.Bytes(), &payload))
	require.Equal(t, []string{a.Hex(), b.Hex()}, payload.Campaigns)
}

func TestUpstreamFailure(t *testing.T) {
	h := web.NewHandler(stub{err: errors.New("connection refused")}, nil)
	require.Equal(t, http.StatusBadGateway, get(t, h, "/").Code)
	require.Equal(t, http.StatusBadGateway, get(t, h, "/api/campaigns").Code)
	require.Equal(t, http.StatusNotFound, get(t, h, "/nope").Code)
	require.Equal(t, http.StatusBadRequest, get(t, h, "/campaigns/0x12").Code)
}

func TestAgainstDevChain(t *testing.T) {
	ctx := context.Background()
	chain, err := ledger.NewDevChain(ledger.DefaultDevConfig(filepath.Join(t.TempDir(), "chain.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = chain.Close() })

	p := provider.New(chain, nil, provider.Options{})
	accounts, err := p.Accounts(ctx)
	require.NoError(t, err)
	f, _, err := contracts.DeployFactory(ctx, p, contracts.TransactOpts{From: accounts[0]})
	require.NoError(t, err)

	svc := campaign.New(p, f.Address(), domain.Address{}, 0)
	h := web.NewHandler(svc, nil)
	require.Contains(t, get(t, h, "/").Body.String(), web.EmptyStateText)

	addr, err := svc.CreateCampaign(ctx, big.NewInt(100))
	require.NoError(t, err)

	body := get(t, h, "/").Body.String()
	require.Contains(t, body, addr.Hex())

	rec := get(t, h, "/campaigns/"+addr.Hex())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), accounts[0].Hex())

	require.Equal(t, http.StatusNotFound, get(t, h, "/campaigns/"+accounts[3].Hex()).Code)
}
