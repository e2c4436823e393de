package types_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"crowdfund/internal/domain/types"
)

func TestAddressChecksum(t *testing.T) {
	vectors := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	}
	for _, v := range vectors {
		a, err := types.ParseAddress(strings.ToLower(v))
		require.NoError(t, err)
		require.Equal(t, v, a.Hex())

		again, err := types.ParseAddress(v)
		require.NoError(t, err)
		require.Equal(t, a, again)
	}
}

func TestParseAddress_BadChecksum(t *testing.T) {
	_, err := types.ParseAddress("0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.ErrorContains(t, err, "bad checksum")
}

func TestParseAddress_WrongLength(t *testing.T) {
	_, err := types.ParseAddress("0x1234")
	require.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	a, err := types.ParseAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)

	b, err := json.Marshal(map[string]types.Address{"owner": a})
	require.NoError(t, err)
	require.JSONEq(t, `{"owner":"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"}`, string(b))

	var out map[string]types.Address
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, a, out["owner"])
}

func TestToWei(t *testing.T) {
	cases := []struct {
		amount, unit, want string
	}{
		{"10", "ether", "10000000000000000000"},
		{"0.5", "ether", "500000000000000000"},
		{"1.25", "gwei", "1250000000"},
		{"100", "wei", "100"},
		{".1", "finney", "100000000000000"},
	}
	for _, tc := range cases {
		got, err := types.ToWei(tc.amount, tc.unit)
		require.NoError(t, err, tc.amount)
		require.Equal(t, tc.want, got.String())
	}

	_, err := types.ToWei("0.1", "wei")
	require.Error(t, err)
	_, err = types.ToWei("1", "lumens")
	require.Error(t, err)
}

func TestFromWei(t *testing.T) {
	w, err := types.ParseWei("10000000000000000000")
	require.NoError(t, err)
	s, err := types.FromWei(w, "ether")
	require.NoError(t, err)
	require.Equal(t, "10", s)

	w, err = types.ParseWei("1500000000000000")
	require.NoError(t, err)
	s, err = types.FromWei(w, "ether")
	require.NoError(t, err)
	require.Equal(t, "0.0015", s)
}

func TestVMErrorMessages(t *testing.T) {
	require.Equal(t,
		"VM Exception while processing transaction: revert Please make sure to send at least the minimum contribution.",
		types.Revert("Please make sure to send at least the minimum contribution.").Error())
	require.Equal(t, "VM Exception while processing transaction: revert", types.Revert("").Error())
	require.ErrorIs(t, types.Revert("anything"), types.ErrRevert)
	require.NotErrorIs(t, types.ErrInvalidOpcode, types.ErrRevert)
}
