package accounts

import (
	"fmt"
	"time"

	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/multisig"
	"github.com/spacemeshos/go-multisig/sql"
)

// Executed is a record of an action committed by the account.
type Executed struct {
	multisig.CommitResult
	Time time.Time
}

// AddExecuted records a committed action.
func AddExecuted(db sql.Executor, result multisig.CommitResult, at time.Time) error {
	if _, err := db.Exec(`insert into executed (address, nonce, digest, kind, collected, discarded, executed)
		values (?1, ?2, ?3, ?4, ?5, ?6, ?7);`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, result.Address.Bytes())
			stmt.BindInt64(2, int64(result.Nonce))
			stmt.BindBytes(3, result.Digest.Bytes())
			stmt.BindInt64(4, int64(result.Kind))
			stmt.BindInt64(5, int64(result.Collected))
			stmt.BindInt64(6, int64(result.Discarded))
			stmt.BindInt64(7, at.Unix())
		}, nil); err != nil {
		return fmt.Errorf("insert executed %s/%d: %w", result.Address, result.Nonce, err)
	}
	return nil
}

// History returns committed actions of the account ordered by nonce.
func History(db sql.Executor, address types.Address) ([]Executed, error) {
	var rst []Executed
	_, err := db.Exec(`select nonce, digest, kind, collected, discarded, executed from executed
		where address = ?1 order by nonce;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
		}, func(stmt *sql.Statement) bool {
			record := Executed{CommitResult: multisig.CommitResult{Address: address}}
			record.Nonce = uint64(stmt.ColumnInt64(0))
			stmt.ColumnBytes(1, record.Digest[:])
			record.Kind = multisig.Kind(stmt.ColumnInt64(2))
			record.Collected = uint64(stmt.ColumnInt64(3))
			record.Discarded = stmt.ColumnInt(4)
			record.Time = time.Unix(stmt.ColumnInt64(5), 0)
			rst = append(rst, record)
			return true
		})
	if err != nil {
		return nil, fmt.Errorf("history of %s: %w", address, err)
	}
	return rst, nil
}
