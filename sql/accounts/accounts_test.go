package accounts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/multisig"
	"github.com/spacemeshos/go-multisig/sql"
)

func genKey(i byte) types.PublicKey {
	return types.BytesToPublicKey([]byte{i, i, i})
}

func genAccount(tb testing.TB, seed byte) *multisig.Account {
	tb.Helper()
	reg, err := multisig.NewRegistry(3,
		multisig.Signer{PublicKey: genKey(seed), Weight: 2},
		multisig.Signer{PublicKey: genKey(seed + 1), Weight: 1},
		multisig.Signer{PublicKey: genKey(seed + 2), Weight: 1},
	)
	require.NoError(tb, err)
	return &multisig.Account{
		Address:  multisig.ComputeAddress(reg, uint64(seed)),
		Balance:  1000,
		Registry: reg,
	}
}

func TestCreateGet(t *testing.T) {
	db := sql.InMemory()
	account := genAccount(t, 1)

	has, err := Has(db, account.Address)
	require.NoError(t, err)
	require.False(t, has)

	require.NoError(t, Create(db, account, time.Now()))
	require.ErrorIs(t, Create(db, account, time.Now()), sql.ErrObjectExists)

	has, err = Has(db, account.Address)
	require.NoError(t, err)
	require.True(t, has)

	got, err := Get(db, account.Address)
	require.NoError(t, err)
	require.Equal(t, account, got)
	require.NoError(t, got.Registry.Validate())

	_, err = Get(db, genAccount(t, 10).Address)
	require.ErrorIs(t, err, sql.ErrNotFound)
}

func TestSignerWeight(t *testing.T) {
	db := sql.InMemory()
	account := genAccount(t, 1)
	require.NoError(t, Create(db, account, time.Now()))

	weight, err := SignerWeight(db, account.Address, genKey(1))
	require.NoError(t, err)
	require.EqualValues(t, 2, weight)

	_, err = SignerWeight(db, account.Address, genKey(9))
	require.ErrorIs(t, err, sql.ErrNotFound)
}

func TestUpdateKeepsOrder(t *testing.T) {
	db := sql.InMemory()
	account := genAccount(t, 1)
	require.NoError(t, Create(db, account, time.Now()))

	next, err := account.Registry.Apply(&multisig.Action{Body: &multisig.RemoveSigner{PublicKey: genKey(2)}})
	require.NoError(t, err)
	next, err = next.Apply(&multisig.Action{Body: &multisig.AddSigner{
		Signer: multisig.Signer{PublicKey: genKey(7), Weight: 5},
	}})
	require.NoError(t, err)
	updated := &multisig.Account{Address: account.Address, Nonce: 2, Balance: 10, Registry: next}
	require.NoError(t, Update(db, updated))

	got, err := Get(db, account.Address)
	require.NoError(t, err)
	require.Equal(t, updated, got)
	require.Equal(t, []types.PublicKey{genKey(1), genKey(3), genKey(7)}, []types.PublicKey{
		got.Registry.Signers[0].PublicKey,
		got.Registry.Signers[1].PublicKey,
		got.Registry.Signers[2].PublicKey,
	})

	require.ErrorIs(t, Update(db, genAccount(t, 20)), sql.ErrNotFound)
}

func TestCredit(t *testing.T) {
	db := sql.InMemory()
	account := genAccount(t, 1)
	require.NoError(t, Create(db, account, time.Now()))

	exists, err := Credit(db, account.Address, 50)
	require.NoError(t, err)
	require.True(t, exists)
	got, err := Get(db, account.Address)
	require.NoError(t, err)
	require.EqualValues(t, 1050, got.Balance)

	exists, err = Credit(db, genAccount(t, 30).Address, 50)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestAll(t *testing.T) {
	db := sql.InMemory()
	now := time.Now()
	var expected []types.Address
	for i := byte(0); i < 3; i++ {
		account := genAccount(t, i*10)
		require.NoError(t, Create(db, account, now.Add(time.Duration(i)*time.Second)))
		expected = append(expected, account.Address)
	}
	all, err := All(db)
	require.NoError(t, err)
	require.Equal(t, expected, all)
}

func TestHistory(t *testing.T) {
	db := sql.InMemory()
	account := genAccount(t, 1)
	require.NoError(t, Create(db, account, time.Now()))

	at := time.Unix(1700000000, 0)
	results := []multisig.CommitResult{
		{Address: account.Address, Nonce: 0, Digest: types.Hash32{1}, Kind: multisig.KindSpend, Collected: 3},
		{Address: account.Address, Nonce: 1, Digest: types.Hash32{2}, Kind: multisig.KindAddSigner, Collected: 4, Discarded: 1},
	}
	for _, result := range results {
		require.NoError(t, AddExecuted(db, result, at))
	}
	require.ErrorIs(t, AddExecuted(db, results[0], at), sql.ErrObjectExists)

	history, err := History(db, account.Address)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for i, record := range history {
		require.Equal(t, results[i], record.CommitResult)
		require.True(t, at.Equal(record.Time))
	}
}
