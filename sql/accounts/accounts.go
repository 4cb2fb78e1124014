package accounts

import (
	"fmt"
	"time"

	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/multisig"
	"github.com/spacemeshos/go-multisig/sql"
)

// Create inserts an account with its registry.
// sql.ErrObjectExists is returned if the address is already taken.
func Create(db sql.Executor, account *multisig.Account, created time.Time) error {
	_, err := db.Exec(`insert into accounts (address, nonce, balance, threshold, total_weight, created)
		values (?1, ?2, ?3, ?4, ?5, ?6);`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, account.Address.Bytes())
			stmt.BindInt64(2, int64(account.Nonce))
			stmt.BindInt64(3, int64(account.Balance))
			stmt.BindInt64(4, int64(account.Registry.Threshold))
			stmt.BindInt64(5, int64(account.Registry.TotalWeight))
			stmt.BindInt64(6, created.Unix())
		}, nil)
	if err != nil {
		return fmt.Errorf("insert account %s: %w", account.Address, err)
	}
	return insertSigners(db, account.Address, account.Registry.Signers)
}

func insertSigners(db sql.Executor, address types.Address, signers []multisig.Signer) error {
	for i, signer := range signers {
		if _, err := db.Exec(`insert into signers (address, position, public_key, weight)
			values (?1, ?2, ?3, ?4);`,
			func(stmt *sql.Statement) {
				stmt.BindBytes(1, address.Bytes())
				stmt.BindInt64(2, int64(i))
				stmt.BindBytes(3, signer.PublicKey.Bytes())
				stmt.BindInt64(4, int64(signer.Weight))
			}, nil); err != nil {
			return fmt.Errorf("insert signer %s for %s: %w", signer.PublicKey.ShortString(), address, err)
		}
	}
	return nil
}

// Has the account in the database.
func Has(db sql.Executor, address types.Address) (bool, error) {
	rows, err := db.Exec("select 1 from accounts where address = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
		}, nil,
	)
	if err != nil {
		return false, fmt.Errorf("has address %s: %w", address, err)
	}
	return rows > 0, nil
}

// Get loads account state with its registry.
func Get(db sql.Executor, address types.Address) (*multisig.Account, error) {
	account := &multisig.Account{Address: address, Registry: &multisig.Registry{}}
	rows, err := db.Exec(`select nonce, balance, threshold, total_weight from accounts where address = ?1;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
		}, func(stmt *sql.Statement) bool {
			account.Nonce = uint64(stmt.ColumnInt64(0))
			account.Balance = uint64(stmt.ColumnInt64(1))
			account.Registry.Threshold = uint32(stmt.ColumnInt64(2))
			account.Registry.TotalWeight = uint32(stmt.ColumnInt64(3))
			return false
		})
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", address, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: account %s", sql.ErrNotFound, address)
	}
	account.Registry.Signers, err = Signers(db, address)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Signers of the account in registry order.
func Signers(db sql.Executor, address types.Address) ([]multisig.Signer, error) {
	var signers []multisig.Signer
	_, err := db.Exec(`select public_key, weight from signers where address = ?1 order by position;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
		}, func(stmt *sql.Statement) bool {
			var signer multisig.Signer
			stmt.ColumnBytes(0, signer.PublicKey[:])
			signer.Weight = uint32(stmt.ColumnInt64(1))
			signers = append(signers, signer)
			return true
		})
	if err != nil {
		return nil, fmt.Errorf("signers of %s: %w", address, err)
	}
	return signers, nil
}

// SignerWeight returns weight of the signer. sql.ErrNotFound if pk is not registered.
func SignerWeight(db sql.Executor, address types.Address, pk types.PublicKey) (uint32, error) {
	var weight uint32
	rows, err := db.Exec(`select weight from signers where address = ?1 and public_key = ?2;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
			stmt.BindBytes(2, pk.Bytes())
		}, func(stmt *sql.Statement) bool {
			weight = uint32(stmt.ColumnInt64(0))
			return false
		})
	if err != nil {
		return 0, fmt.Errorf("signer weight %s: %w", address, err)
	}
	if rows == 0 {
		return 0, fmt.Errorf("%w: signer %s of %s", sql.ErrNotFound, pk.ShortString(), address)
	}
	return weight, nil
}

// Update persists nonce, balance and registry of the account.
func Update(db sql.Executor, account *multisig.Account) error {
	rows, err := db.Exec(`update accounts set nonce = ?2, balance = ?3, threshold = ?4, total_weight = ?5
		where address = ?1 returning address;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, account.Address.Bytes())
			stmt.BindInt64(2, int64(account.Nonce))
			stmt.BindInt64(3, int64(account.Balance))
			stmt.BindInt64(4, int64(account.Registry.Threshold))
			stmt.BindInt64(5, int64(account.Registry.TotalWeight))
		}, nil)
	if err != nil {
		return fmt.Errorf("update account %s: %w", account.Address, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: account %s", sql.ErrNotFound, account.Address)
	}
	if _, err := db.Exec(`delete from signers where address = ?1;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, account.Address.Bytes())
		}, nil); err != nil {
		return fmt.Errorf("delete signers of %s: %w", account.Address, err)
	}
	return insertSigners(db, account.Address, account.Registry.Signers)
}

// Credit increases balance of the account. Returns false if the account doesn't exist.
func Credit(db sql.Executor, address types.Address, amount uint64) (bool, error) {
	rows, err := db.Exec(`update accounts set balance = balance + ?2 where address = ?1 returning address;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
			stmt.BindInt64(2, int64(amount))
		}, nil)
	if err != nil {
		return false, fmt.Errorf("credit %s: %w", address, err)
	}
	return rows > 0, nil
}

// All returns addresses of all accounts.
func All(db sql.Executor) ([]types.Address, error) {
	var addresses []types.Address
	_, err := db.Exec("select address from accounts order by created, address;", nil,
		func(stmt *sql.Statement) bool {
			var addr types.Address
			stmt.ColumnBytes(0, addr[:])
			addresses = append(addresses, addr)
			return true
		})
	if err != nil {
		return nil, fmt.Errorf("all accounts: %w", err)
	}
	return addresses, nil
}
